package grammar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/combinator"
	"github.com/nlpstack/ccgparse/pkg/grammar"
)

func writePackFiles(t *testing.T, dir string, extra map[string]string) {
	t.Helper()
	files := map[string]string{
		"categories.txt":  "NP/N\nN\nNP\n",
		"seen_rules.txt":  "NP/N N\n",
		"cat_dict.txt":    "",
		"unary_rules.txt": "",
	}
	for name, body := range extra {
		files[name] = body
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}
}

func mustCat(t *testing.T, s string) category.Category {
	t.Helper()
	c, err := category.Parse(s)
	if err != nil {
		t.Fatalf("category.Parse(%q): %v", s, err)
	}
	return c
}

func TestLoadParsesAllFourFiles(t *testing.T) {
	dir := t.TempDir()
	writePackFiles(t, dir, map[string]string{
		"cat_dict.txt":    "the\t0\ncat\t1\n",
		"unary_rules.txt": "N NP\n",
	})

	np := mustCat(t, "NP")
	pack, err := grammar.Load(dir, "en", combinator.EnglishDefaultBinaryRules(), []category.Category{np})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pack.Categories) != 3 {
		t.Fatalf("len(Categories) = %d, want 3", len(pack.Categories))
	}
	if idx := pack.AllowedCategoryIndices("the"); len(idx) != 1 || idx[0] != 0 {
		t.Fatalf("AllowedCategoryIndices(the) = %v, want [0]", idx)
	}
	n := mustCat(t, "N")
	parents := pack.UnaryParents(n)
	if len(parents) != 1 || parents[0].String() != "NP" {
		t.Fatalf("UnaryParents(N) = %v, want [NP]", parents)
	}
	npOverN := mustCat(t, "NP/N")
	if !pack.Seen(npOverN, n) {
		t.Fatal("(NP/N, N) should be marked seen")
	}
}

func TestLoadMissingOptionalFilesDefaultEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "categories.txt"), []byte("NP\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// seen_rules.txt, cat_dict.txt, unary_rules.txt all absent.
	pack, err := grammar.Load(dir, "en", combinator.EnglishDefaultBinaryRules(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pack.SeenRules) != 0 || len(pack.CategoryDictionary) != 0 || len(pack.UnaryRules) != 0 {
		t.Fatal("absent optional files should load as empty maps, not errors")
	}
}

func TestLoadRejectsMalformedCategory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "categories.txt"), []byte("NP/\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := grammar.Load(dir, "en", combinator.EnglishDefaultBinaryRules(), nil); err == nil {
		t.Fatal("expected an error for a malformed category line")
	}
}

func TestPackIsRootAdmissible(t *testing.T) {
	dir := t.TempDir()
	writePackFiles(t, dir, nil)
	np := mustCat(t, "NP")
	pack, err := grammar.Load(dir, "en", combinator.EnglishDefaultBinaryRules(), []category.Category{np})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !pack.IsRootAdmissible(np) {
		t.Fatal("NP should be root-admissible")
	}
	n := mustCat(t, "N")
	if pack.IsRootAdmissible(n) {
		t.Fatal("N should not be root-admissible")
	}
}

func TestCategoryIndexReturnsMinusOneWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	writePackFiles(t, dir, nil)
	pack, err := grammar.Load(dir, "en", combinator.EnglishDefaultBinaryRules(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pp := mustCat(t, "PP")
	if idx := pack.CategoryIndex(pp); idx != -1 {
		t.Fatalf("CategoryIndex(PP) = %d, want -1", idx)
	}
}
