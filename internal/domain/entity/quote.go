package entity

// Recommendation is a ranked catalog entry with the reasons it was picked.
type Recommendation struct {
	Policy  Policy
	Premium int64
	Score   float64
	Reason  string
	Summary string
	Matched []string
}

type Quote struct {
	Recommended []Recommendation
	Disclaimer  string
}
