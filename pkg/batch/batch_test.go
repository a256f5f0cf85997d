package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nlpstack/ccgparse/pkg/astar"
	"github.com/nlpstack/ccgparse/pkg/batch"
	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/combinator"
	"github.com/nlpstack/ccgparse/pkg/grammar"
	"github.com/nlpstack/ccgparse/pkg/scorer"
	"github.com/nlpstack/ccgparse/pkg/token"
)

func mustCat(t *testing.T, s string) category.Category {
	t.Helper()
	c, err := category.Parse(s)
	if err != nil {
		t.Fatalf("category.Parse(%q): %v", s, err)
	}
	return c
}

func twoWordPack(t *testing.T) *grammar.Pack {
	t.Helper()
	np := mustCat(t, "NP")
	svp := mustCat(t, "S\\NP")
	s := mustCat(t, "S")
	seen := map[[2]string]bool{{np.String(), svp.String()}: true}
	return grammar.New("test", []category.Category{np, svp}, nil, seen, nil,
		[]category.Category{s}, combinator.EnglishDefaultBinaryRules())
}

// fixedScorer always returns the same tensors regardless of input words,
// strongly favoring NP then S\NP, sufficient to parse any two-word
// sentence in twoWordPack's inventory.
type fixedScorer struct {
	fail bool
}

func (f fixedScorer) Score(ctx context.Context, words []string) (scorer.Tensors, error) {
	if f.fail {
		return scorer.Tensors{}, errors.New("scorer unavailable")
	}
	n := len(words)
	tag := make([][]float64, n)
	dep := make([][]float64, n)
	for i := range words {
		if i%2 == 0 {
			tag[i] = []float64{-0.01, -5}
		} else {
			tag[i] = []float64{-5, -0.01}
		}
		row := make([]float64, n+1)
		for j := range row {
			row[j] = -5
		}
		if i > 0 {
			row[i-1] = -0.01
		} else {
			row[n] = -0.01
		}
		dep[i] = row
	}
	return scorer.Tensors{TagLogProb: tag, DepLogProb: dep}, nil
}

func sentence(words ...string) []token.Token {
	out := make([]token.Token, len(words))
	for i, w := range words {
		out[i] = token.Token{Surface: w}
	}
	return out
}

func TestRunPreservesOrder(t *testing.T) {
	pack := twoWordPack(t)
	cfg := astar.DefaultConfig()
	cfg.UseCategoryDict = false

	jobs := []batch.Job{
		{Sentence: sentence("they", "sleep")},
		{Sentence: sentence("we", "sleep")},
		{Sentence: sentence("they", "run")},
	}

	items, err := batch.Run(context.Background(), pack, fixedScorer{}, cfg, jobs, batch.Options{Workers: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(items) != len(jobs) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(jobs))
	}
	for i, it := range items {
		if it.Index != i {
			t.Fatalf("items[%d].Index = %d, want %d", i, it.Index, i)
		}
		if it.Err != nil {
			t.Fatalf("items[%d].Err = %v", i, it.Err)
		}
		if len(it.Result.NBest) != 1 {
			t.Fatalf("items[%d].Result.NBest = %d, want 1", i, len(it.Result.NBest))
		}
	}
}

func TestRunContinuesPastPerSentenceFailures(t *testing.T) {
	pack := twoWordPack(t)
	cfg := astar.DefaultConfig()
	cfg.UseCategoryDict = false
	cfg.MaxLength = 2

	jobs := []batch.Job{
		{Sentence: sentence("they", "sleep")},
		{Sentence: sentence("a", "b", "c")}, // exceeds MaxLength
		{Sentence: sentence("we", "sleep")},
	}

	items, err := batch.Run(context.Background(), pack, fixedScorer{}, cfg, jobs, batch.Options{})
	if err != nil {
		t.Fatalf("Run returned a batch-level error for a per-sentence failure: %v", err)
	}
	if items[1].Err != astar.ErrSentenceTooLong {
		t.Fatalf("items[1].Err = %v, want ErrSentenceTooLong", items[1].Err)
	}
	if items[0].Err != nil || items[2].Err != nil {
		t.Fatalf("sibling jobs should still succeed: %v, %v", items[0].Err, items[2].Err)
	}
}

// shapeMismatchScorer behaves like fixedScorer for every sentence except
// badWords, for which it returns tensors with one fewer row than the
// sentence has words, triggering scorer.Tensors.Validate's shape check
// inside astar.Parse.
type shapeMismatchScorer struct {
	badWords []string
}

func (s shapeMismatchScorer) Score(ctx context.Context, words []string) (scorer.Tensors, error) {
	if !wordsEqual(words, s.badWords) {
		return fixedScorer{}.Score(ctx, words)
	}
	n := len(words) - 1
	tag := make([][]float64, n)
	dep := make([][]float64, n)
	for i := 0; i < n; i++ {
		tag[i] = []float64{-0.1, -0.1}
		dep[i] = []float64{-0.1, -0.1, -0.1}
	}
	return scorer.Tensors{TagLogProb: tag, DepLogProb: dep}, nil
}

func wordsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunInvalidTensorShapeDoesNotAbortBatch(t *testing.T) {
	pack := twoWordPack(t)
	cfg := astar.DefaultConfig()
	cfg.UseCategoryDict = false

	jobs := []batch.Job{
		{Sentence: sentence("they", "sleep")},
		{Sentence: sentence("a", "b")}, // shapeMismatchScorer malforms this one
		{Sentence: sentence("we", "sleep")},
	}

	scr := shapeMismatchScorer{badWords: []string{"a", "b"}}
	items, err := batch.Run(context.Background(), pack, scr, cfg, jobs, batch.Options{})
	if err != nil {
		t.Fatalf("Run returned a batch-level error for a per-sentence invalid-input failure: %v", err)
	}
	if items[1].Err == nil || !errors.Is(items[1].Err, astar.ErrInvalidInput) {
		t.Fatalf("items[1].Err = %v, want errors.Is(err, astar.ErrInvalidInput)", items[1].Err)
	}
	if items[0].Err != nil || items[2].Err != nil {
		t.Fatalf("sibling jobs should still succeed: %v, %v", items[0].Err, items[2].Err)
	}
}

func TestRunSurfacesScorerFailure(t *testing.T) {
	pack := twoWordPack(t)
	cfg := astar.DefaultConfig()

	jobs := []batch.Job{{Sentence: sentence("they", "sleep")}}
	items, err := batch.Run(context.Background(), pack, fixedScorer{fail: true}, cfg, jobs, batch.Options{})
	if err == nil {
		t.Fatal("expected a batch-level error when the scorer itself fails")
	}
	if items[0].Err == nil {
		t.Fatal("expected items[0].Err to be set")
	}
}

func TestRunEmptyJobs(t *testing.T) {
	pack := twoWordPack(t)
	cfg := astar.DefaultConfig()
	items, err := batch.Run(context.Background(), pack, fixedScorer{}, cfg, nil, batch.Options{})
	if err != nil || items != nil {
		t.Fatalf("Run(nil) = %v, %v, want nil, nil", items, err)
	}
}
