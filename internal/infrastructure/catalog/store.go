// Package catalog loads the scraped policy records into an immutable
// in-memory store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/value"
	"insurance_desk/pkg/logx"
)

var ErrEmptyCatalog = errors.New("no policies loaded")

// Store is read-only after Load and safe for concurrent use without locks.
type Store struct {
	policies []entity.Policy
	byID     map[string]int
	stats    []entity.CategoryStat
}

// NewStore indexes already decoded policies.
func NewStore(policies []entity.Policy) *Store {
	s := &Store{
		policies: policies,
		byID:     make(map[string]int, len(policies)),
	}

	counts := make(map[value.Category]int)

	for i, p := range policies {
		s.byID[p.ID] = i
		counts[p.Category]++
	}

	for _, c := range value.Categories() {
		if counts[c] > 0 || c != value.CategoryMotor {
			s.stats = append(s.stats, entity.CategoryStat{Category: c, Count: counts[c]})
		}
	}

	return s
}

// Load reads every category file in dir. When none of them yields a record
// it falls back to the complete catalog file. The returned store is never nil:
// on error it is empty and the caller decides whether to serve it.
func Load(ctx context.Context, dir, fallbackFile string) (*Store, error) {
	var policies []entity.Policy

	for _, f := range categoryFiles {
		path := filepath.Join(dir, f.Name)
		log := logger(ctx).With(slog.String(logx.FieldFile, path))

		raw, found, err := readRecords(path)
		if err != nil {
			log.Error("catalog file skipped", logx.Error(err))

			continue
		}

		if !found {
			log.Debug("catalog file missing")

			continue
		}

		loaded := decodeCategory(ctx, f.Category, raw)
		policies = append(policies, loaded...)

		log.Info(
			"catalog file loaded",
			slog.String(logx.FieldCategory, f.Category.String()),
			slog.Int(logx.FieldCount, len(loaded)),
		)
	}

	if len(policies) == 0 && fallbackFile != "" {
		path := filepath.Join(dir, fallbackFile)

		raw, err := readFallback(path)
		if err != nil {
			return NewStore(nil), fmt.Errorf("%w: fallback %s: %w", ErrEmptyCatalog, path, err)
		}

		policies = decodeFallback(ctx, raw)

		logger(ctx).Info(
			"fallback catalog loaded",
			slog.String(logx.FieldFile, path),
			slog.Int(logx.FieldCount, len(policies)),
		)
	}

	if len(policies) == 0 {
		return NewStore(nil), fmt.Errorf("%w from %s", ErrEmptyCatalog, dir)
	}

	return NewStore(policies), nil
}

// decodeCategory assigns category and the 1-based policy id. A record that
// does not decode is skipped and its number is not reused.
func decodeCategory(ctx context.Context, category value.Category, raw []jsoniter.RawMessage) []entity.Policy {
	policies := make([]entity.Policy, 0, len(raw))

	for i, r := range raw {
		var p entity.Policy
		if err := json.Unmarshal(r, &p); err != nil {
			logger(ctx).Warn(
				"catalog record skipped",
				slog.String(logx.FieldCategory, category.String()),
				slog.Int("index", i),
				logx.Error(err),
			)

			continue
		}

		p.Category = category
		p.ID = policyID(category, i+1)

		if p.Type == "" {
			p.Type = category.Label()
		}

		policies = append(policies, p)
	}

	return policies
}

// decodeFallback keeps ids present in the complete file and numbers the rest
// per category in file order.
func decodeFallback(ctx context.Context, raw []jsoniter.RawMessage) []entity.Policy {
	policies := make([]entity.Policy, 0, len(raw))
	numbers := make(map[value.Category]int)

	for i, r := range raw {
		var p entity.Policy
		if err := json.Unmarshal(r, &p); err != nil {
			logger(ctx).Warn("fallback record skipped", slog.Int("index", i), logx.Error(err))

			continue
		}

		category, err := value.ParseCategory(string(p.Category))
		if err != nil {
			category, err = value.ParseCategory(p.Type)
		}

		if err != nil {
			logger(ctx).Warn("fallback record without category", slog.Int("index", i), logx.Error(err))

			continue
		}

		numbers[category]++

		p.Category = category

		if p.ID == "" {
			p.ID = policyID(category, numbers[category])
		}

		if p.Type == "" {
			p.Type = category.Label()
		}

		policies = append(policies, p)
	}

	return policies
}

func policyID(category value.Category, n int) string {
	return fmt.Sprintf("%s_%d", category, n)
}

// List returns every policy in load order.
func (s *Store) List() []entity.Policy {
	return append(make([]entity.Policy, 0, len(s.policies)), s.policies...)
}

func (s *Store) Get(id string) (entity.Policy, bool) {
	i, ok := s.byID[id]
	if !ok {
		return entity.Policy{}, false
	}

	return s.policies[i], true
}

// Filter returns the policies of one category in load order.
func (s *Store) Filter(category value.Category) []entity.Policy {
	filtered := make([]entity.Policy, 0)

	for _, p := range s.policies {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// Stats counts policies per category. Motor is listed only when present.
func (s *Store) Stats() []entity.CategoryStat {
	return slices.Clone(s.stats)
}

func (s *Store) Len() int {
	return len(s.policies)
}
