package store_test

import (
	"testing"

	"github.com/hgweller/gopatmat/internal/store"
)

func open(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveThenLoad(t *testing.T) {
	s := open(t)

	unchanged, err := s.Save("greeting", `Str("Hello") & Char(' ') & Str("World")`, "anchor")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if unchanged {
		t.Fatalf("first Save should not report unchanged")
	}

	p, err := s.Load("greeting")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "greeting" || p.Flags != "anchor" {
		t.Fatalf("loaded pattern mismatch: %+v", p)
	}
	if p.FormatVersion != store.FormatVersion {
		t.Fatalf("FormatVersion = %q, want %q", p.FormatVersion, store.FormatVersion)
	}
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	s := open(t)
	if _, err := s.Load("nope"); err != store.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveIdenticalSourceIsNoop(t *testing.T) {
	s := open(t)
	src := `Char('a')`

	if _, err := s.Save("p", src, ""); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	unchanged, err := s.Save("p", src, "")
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if !unchanged {
		t.Fatalf("re-saving identical source should report unchanged")
	}
}

func TestSaveDifferentSourceUnderSameNameFails(t *testing.T) {
	s := open(t)

	if _, err := s.Save("p", `Char('a')`, ""); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if _, err := s.Save("p", `Char('b')`, ""); err == nil {
		t.Fatalf("expected an error saving different source under the same name")
	}
}

func TestDeleteThenLoadNotFound(t *testing.T) {
	s := open(t)
	if _, err := s.Save("p", `Char('a')`, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("p"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("p"); err != store.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound after Delete", err)
	}
}

func TestListOrdersByName(t *testing.T) {
	s := open(t)
	for _, name := range []string{"zebra", "apple", "mango"} {
		if _, err := s.Save(name, `Char('x')`, ""); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}
	got, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 || got[0].Name != "apple" || got[1].Name != "mango" || got[2].Name != "zebra" {
		t.Fatalf("List order = %v, want apple, mango, zebra", got)
	}
}

func TestContentHashIsDeterministic(t *testing.T) {
	a := store.ContentHash("Str(\"hi\")")
	b := store.ContentHash("Str(\"hi\")")
	c := store.ContentHash("Str(\"bye\")")
	if a != b {
		t.Fatalf("ContentHash not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Fatalf("ContentHash collision between distinct sources")
	}
}
