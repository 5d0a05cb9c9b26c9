package tool

import (
	"context"
	"sync"
	"testing"
)

func newNamedTool(name string) GenericTool {
	return NewTool(name, func(ctx context.Context, input calcInput) (string, error) {
		return name, nil
	})
}

func TestNewCatalog_Empty(t *testing.T) {
	catalog := NewCatalog()
	if catalog.Size() != 0 {
		t.Errorf("expected empty catalog, got size %d", catalog.Size())
	}
	if len(catalog.List()) != 0 {
		t.Errorf("expected no tools, got %d", len(catalog.List()))
	}
}

func TestCatalog_GetCaseInsensitive(t *testing.T) {
	catalog := NewCatalogWithTools(newNamedTool("Ask_More"))

	got, ok := catalog.Get("ask_more")
	if !ok {
		t.Fatal("expected tool to be found")
	}
	if got.ToolInfo().Name != "Ask_More" {
		t.Errorf("expected original name preserved, got %q", got.ToolInfo().Name)
	}
	if !catalog.Has("ASK_MORE") {
		t.Error("expected Has to be case-insensitive")
	}
}

func TestCatalog_Missing(t *testing.T) {
	catalog := NewCatalog()
	if _, ok := catalog.Get("search"); ok {
		t.Error("expected missing tool")
	}
	if catalog.Remove("search") {
		t.Error("expected Remove to report false for missing tool")
	}
}

func TestCatalog_AddReplacesSameName(t *testing.T) {
	catalog := NewCatalogWithTools(newNamedTool("search"), newNamedTool("SEARCH"))

	if catalog.Size() != 1 {
		t.Fatalf("expected size 1, got %d", catalog.Size())
	}
	got, _ := catalog.Get("search")
	if got.ToolInfo().Name != "SEARCH" {
		t.Errorf("expected later tool to win, got %q", got.ToolInfo().Name)
	}
}

func TestCatalog_Remove(t *testing.T) {
	catalog := NewCatalogWithTools(newNamedTool("search"), newNamedTool("ask"))

	if !catalog.Remove("Search") {
		t.Fatal("expected Remove to succeed")
	}
	if catalog.Has("search") {
		t.Error("expected tool to be gone")
	}
	if catalog.Size() != 1 {
		t.Errorf("expected size 1, got %d", catalog.Size())
	}
}

func TestCatalog_ListSorted(t *testing.T) {
	catalog := NewCatalogWithTools(newNamedTool("search"), newNamedTool("ask_more"), newNamedTool("ask"))

	var names []string
	for _, tool := range catalog.List() {
		names = append(names, tool.ToolInfo().Name)
	}
	want := []string{"ask", "ask_more", "search"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	catalog := NewCatalog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			catalog.AddTools(newNamedTool("search"))
		}()
		go func() {
			defer wg.Done()
			catalog.Has("search")
			catalog.List()
		}()
	}
	wg.Wait()

	if catalog.Size() != 1 {
		t.Errorf("expected size 1, got %d", catalog.Size())
	}
}
