// Package archive provides full-text search over collected interactions.
//
// Completed text contributions (replies, initial prompts) are indexed in
// Bleve so collected corpora can be inspected without scanning the work
// package store. Indexing failures are reported to the caller but never
// affect the lifecycle itself.
package archive

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/google/uuid"
)

// Document is one indexed interaction.
type Document struct {
	ID            string    `json:"id"`
	WorkPackageID string    `json:"work_package_id"`
	TaskKind      string    `json:"task_kind"`
	Kind          string    `json:"kind"`
	Text          string    `json:"text"`
	RequesterID   string    `json:"requester_id"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// Archive is a Bleve-backed index of collected interactions.
type Archive struct {
	mu    sync.RWMutex
	index bleve.Index
}

// Config configures the archive.
type Config struct {
	// Path is the on-disk index location. Empty means an in-memory
	// index, useful for tests and ephemeral deployments.
	Path string
}

// New opens or creates the archive index.
func New(cfg Config) (*Archive, error) {
	var index bleve.Index
	var err error

	switch {
	case cfg.Path == "":
		index, err = bleve.NewMemOnly(buildIndexMapping())
	default:
		if _, statErr := os.Stat(cfg.Path); os.IsNotExist(statErr) {
			index, err = bleve.New(cfg.Path, buildIndexMapping())
		} else {
			index, err = bleve.Open(cfg.Path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open archive index: %w", err)
	}

	return &Archive{index: index}, nil
}

// buildIndexMapping indexes interaction text for scoring and keeps the
// identifying fields as exact keywords.
func buildIndexMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	dateField := bleve.NewDateTimeFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("text", textField)
	doc.AddFieldMappingsAt("work_package_id", keywordField)
	doc.AddFieldMappingsAt("task_kind", keywordField)
	doc.AddFieldMappingsAt("kind", keywordField)
	doc.AddFieldMappingsAt("requester_id", keywordField)
	doc.AddFieldMappingsAt("recorded_at", dateField)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Add indexes one document. A missing id is generated.
func (a *Archive) Add(doc Document) error {
	if doc.Text == "" {
		return fmt.Errorf("archive document has no text")
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index.Index(doc.ID, doc)
}

// Search runs a match query over interaction text and returns up to
// limit documents, best first.
func (a *Archive) Search(query string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 10
	}

	q := bleve.NewMatchQuery(query)
	q.SetField("text")
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"*"}

	a.mu.RLock()
	defer a.mu.RUnlock()

	res, err := a.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("archive search: %w", err)
	}

	docs := make([]Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc := Document{ID: hit.ID}
		if v, ok := hit.Fields["work_package_id"].(string); ok {
			doc.WorkPackageID = v
		}
		if v, ok := hit.Fields["task_kind"].(string); ok {
			doc.TaskKind = v
		}
		if v, ok := hit.Fields["kind"].(string); ok {
			doc.Kind = v
		}
		if v, ok := hit.Fields["text"].(string); ok {
			doc.Text = v
		}
		if v, ok := hit.Fields["requester_id"].(string); ok {
			doc.RequesterID = v
		}
		if v, ok := hit.Fields["recorded_at"].(string); ok {
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				doc.RecordedAt = ts
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Count returns the number of indexed documents.
func (a *Archive) Count() (uint64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.index.DocCount()
}

// Close releases the index.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index.Close()
}
