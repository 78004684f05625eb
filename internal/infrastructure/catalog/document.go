package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/value"
)

// Document is one category file opened for rewriting. Fields the domain model
// does not know about are kept as they are.
type Document struct {
	Path     string
	Category value.Category
	Policies []entity.Policy

	raw []map[string]any
	// index maps Policies onto raw records, skipped records have no entry.
	index []int
}

// OpenDocuments opens every category file present in dir.
func OpenDocuments(ctx context.Context, dir string) ([]*Document, error) {
	docs := make([]*Document, 0, len(categoryFiles))

	for _, f := range categoryFiles {
		path := filepath.Join(dir, f.Name)

		records, found, err := readRecords(path)
		if err != nil {
			return nil, fmt.Errorf("readRecords(%s): %w", path, err)
		}

		if !found {
			continue
		}

		doc := &Document{Path: path, Category: f.Category}

		for i, r := range records {
			var fields map[string]any
			if err = json.Unmarshal(r, &fields); err != nil {
				return nil, fmt.Errorf("%s record %d: %w", path, i, err)
			}

			doc.raw = append(doc.raw, fields)

			if fields == nil {
				continue
			}

			decoded := decodeCategory(ctx, f.Category, []jsoniter.RawMessage{r})
			if len(decoded) == 0 {
				continue
			}

			p := decoded[0]
			p.ID = policyID(f.Category, i+1)

			doc.Policies = append(doc.Policies, p)
			doc.index = append(doc.index, i)
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// Apply copies the enrichment of each policy into the raw record. The
// policies must be the document's Policies in the same order.
func (d *Document) Apply(policies []entity.Policy) error {
	if len(policies) != len(d.index) {
		return fmt.Errorf("%s: got %d policies, document has %d", d.Path, len(policies), len(d.index))
	}

	for i, p := range policies {
		if p.AIEnrichment == nil {
			continue
		}

		d.raw[d.index[i]]["ai_enrichment"] = p.AIEnrichment
	}

	d.Policies = policies

	return nil
}

func (d *Document) Save() error {
	if err := writeJSONFile(d.Path, d.raw); err != nil {
		return fmt.Errorf("writeJSONFile: %w", err)
	}

	return nil
}
