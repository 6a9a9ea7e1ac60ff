package archive

import (
	"testing"
	"time"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := New(Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAddAndSearch(t *testing.T) {
	a := newTestArchive(t)

	docs := []Document{
		{
			ID:            "doc-1",
			WorkPackageID: "wp-1",
			TaskKind:      "initial_prompt",
			Kind:          "text_reply",
			Text:          "Write a poem about the northern lights.",
			RequesterID:   "worker-1",
			RecordedAt:    time.Now().UTC(),
		},
		{
			ID:            "doc-2",
			WorkPackageID: "wp-2",
			TaskKind:      "assistant_reply",
			Kind:          "text_reply",
			Text:          "The capital of France is Paris.",
			RequesterID:   "worker-2",
			RecordedAt:    time.Now().UTC(),
		},
	}
	for _, doc := range docs {
		if err := a.Add(doc); err != nil {
			t.Fatalf("Add(%s) failed: %v", doc.ID, err)
		}
	}

	count, err := a.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 documents, got %d", count)
	}

	hits, err := a.Search("northern lights", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if hits[0].ID != "doc-1" {
		t.Errorf("expected doc-1 first, got %s", hits[0].ID)
	}
	if hits[0].WorkPackageID != "wp-1" {
		t.Errorf("expected work package wp-1, got %s", hits[0].WorkPackageID)
	}
	if hits[0].TaskKind != "initial_prompt" {
		t.Errorf("expected task kind initial_prompt, got %s", hits[0].TaskKind)
	}
}

func TestAddGeneratesID(t *testing.T) {
	a := newTestArchive(t)

	if err := a.Add(Document{Text: "hello world", WorkPackageID: "wp-3"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	hits, err := a.Search("hello", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].ID == "" {
		t.Error("expected a generated document id")
	}
}

func TestAddRejectsEmptyText(t *testing.T) {
	a := newTestArchive(t)

	if err := a.Add(Document{WorkPackageID: "wp-4"}); err == nil {
		t.Error("expected error for document without text")
	}
}

func TestDiskIndex(t *testing.T) {
	path := t.TempDir() + "/index.bleve"

	a, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.Add(Document{ID: "d1", Text: "persistent entry"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 document after reopen, got %d", count)
	}
}
