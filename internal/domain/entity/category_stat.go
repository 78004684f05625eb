package entity

import "insurance_desk/internal/domain/value"

type CategoryStat struct {
	Category value.Category
	Count    int
}
