package colbertdb

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromSourceDocuments(t *testing.T) {
	origMeta := map[string]any{"author": "ann"}
	src := []SourceDocument{
		fakeSource{id: "a.txt", text: "alpha", meta: origMeta},
		fakeSource{id: "b.txt", text: "beta"},
	}

	got := FromSourceDocuments(src)
	want := []Document{
		{Content: "alpha", Metadata: map[string]any{"author": "ann", "source": "a.txt"}},
		{Content: "beta", Metadata: map[string]any{"source": "b.txt"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
	if _, ok := origMeta[SourceMetadataKey]; ok {
		t.Error("source metadata map must not be modified")
	}
}

func TestFromSourceDocuments_Empty(t *testing.T) {
	got := FromSourceDocuments(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty slice", got)
	}
}

func TestLoadDocuments(t *testing.T) {
	in := `[{"content":"one"},{"content":"two","metadata":{"page":2}}]`
	got, err := LoadDocuments(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}
	want := []Document{
		{Content: "one"},
		{Content: "two", Metadata: map[string]any{"page": float64(2)}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDocuments_Errors(t *testing.T) {
	if _, err := LoadDocuments(strings.NewReader("[]")); !errors.Is(err, ErrValidation) {
		t.Errorf("empty array: err = %v, want ErrValidation", err)
	}
	if _, err := LoadDocuments(strings.NewReader("{")); err == nil {
		t.Error("expected decode error")
	}
}
