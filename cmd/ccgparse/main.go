// Command ccgparse loads a grammar pack directory and a JSON file of
// precomputed score tensors, parses each sentence, and prints the
// resulting derivations in a minimal bracketed debug format. It takes no
// dependency on a real neural supertagger/dependency model — score
// tensors are supplied already computed, exactly as the A* core expects
// them at its scorer.Scorer boundary.
//
// Flag-based, not cobra-based: plain flag.String/flag.Bool, no subcommand
// framework. This module deliberately carries no CLI-framework
// dependency.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nlpstack/ccgparse/pkg/astar"
	"github.com/nlpstack/ccgparse/pkg/batch"
	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/combinator"
	"github.com/nlpstack/ccgparse/pkg/config"
	"github.com/nlpstack/ccgparse/pkg/grammar"
	"github.com/nlpstack/ccgparse/pkg/metrics"
	"github.com/nlpstack/ccgparse/pkg/nbest"
	"github.com/nlpstack/ccgparse/pkg/obslog"
	"github.com/nlpstack/ccgparse/pkg/scorer"
	"github.com/nlpstack/ccgparse/pkg/token"
)

func main() {
	var (
		packDir    = flag.String("pack", "", "grammar pack directory (categories.txt, seen_rules.txt, cat_dict.txt, unary_rules.txt)")
		tensorFile = flag.String("tensors", "", "JSON file of precomputed score tensors, one entry per sentence")
		configFile = flag.String("config", "", "optional TOML config file (defaults applied for anything absent)")
		rootCat    = flag.String("root", "S", "comma-separated list of admissible root categories")
		workers    = flag.Int("workers", 0, "batch worker count (0 = GOMAXPROCS)")
		logLevel   = flag.String("log-level", "info", "obslog level: debug, info, warn, error")
	)
	flag.Parse()

	if *packDir == "" || *tensorFile == "" {
		fmt.Fprintln(os.Stderr, "usage: ccgparse -pack DIR -tensors FILE.json [-config FILE.toml]")
		os.Exit(2)
	}

	logger, err := obslog.New(obslog.Config{Level: *logLevel})
	if err != nil {
		log.Fatalf("obslog.New: %v", err)
	}
	defer logger.Sync()

	roots, err := parseRootCats(*rootCat)
	if err != nil {
		log.Fatalf("parsing -root: %v", err)
	}

	pack, err := grammar.Load(*packDir, "cli", combinator.EnglishDefaultBinaryRules(), roots)
	if err != nil {
		log.Fatalf("loading pack: %v", err)
	}
	logger.PackLoaded(pack.Name, *packDir, len(pack.Categories))

	cfg := astar.DefaultConfig()
	if *configFile != "" {
		f, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = f.Astar()
	}

	entries, err := loadSentences(*tensorFile)
	if err != nil {
		log.Fatalf("loading tensors: %v", err)
	}

	jobs := make([]batch.Job, len(entries))
	for i, e := range entries {
		jobs[i] = batch.Job{Sentence: tokensFromWords(e.Tokens)}
	}
	scr := precomputedScorer{byWords: indexByWords(entries)}

	m := metrics.New()
	items, err := batch.Run(context.Background(), pack, scr, cfg, jobs, batch.Options{
		Workers: *workers, Log: logger, Metrics: m,
	})
	if err != nil {
		log.Fatalf("batch run: %v", err)
	}

	for _, it := range items {
		words := entries[it.Index].Tokens
		fmt.Printf("# sentence %d: %s\n", it.Index, strings.Join(words, " "))
		if it.Err != nil {
			fmt.Printf("  error: %v\n", it.Err)
			continue
		}
		if len(it.Result.NBest) == 0 {
			fmt.Println("  (no parse)")
			continue
		}
		for rank, d := range it.Result.NBest {
			fmt.Printf("  [%d] score=%.4f %s\n", rank, d.Score, render(d.Root))
		}
	}
}

func parseRootCats(csv string) ([]category.Category, error) {
	var out []category.Category
	for _, s := range strings.Split(csv, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		c, err := category.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// sentenceEntry is one JSON record in the -tensors file.
type sentenceEntry struct {
	Tokens     []string    `json:"tokens"`
	TagLogProb [][]float64 `json:"tag_log_prob"`
	DepLogProb [][]float64 `json:"dep_log_prob"`
}

func loadSentences(path string) ([]sentenceEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []sentenceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return entries, nil
}

func tokensFromWords(words []string) []token.Token {
	out := make([]token.Token, len(words))
	for i, w := range words {
		out[i] = token.Token{Surface: w}
	}
	return out
}

// precomputedScorer implements scorer.Scorer by looking up the tensors
// matching the exact word sequence supplied at load time. A real
// deployment would replace this with a Scorer backed by an actual model;
// the A* core is indifferent to which it gets, per its scorer.Scorer
// boundary.
type precomputedScorer struct {
	byWords map[string]scorer.Tensors
}

func indexByWords(entries []sentenceEntry) map[string]scorer.Tensors {
	out := make(map[string]scorer.Tensors, len(entries))
	for _, e := range entries {
		out[strings.Join(e.Tokens, " ")] = scorer.Tensors{TagLogProb: e.TagLogProb, DepLogProb: e.DepLogProb}
	}
	return out
}

func (s precomputedScorer) Score(_ context.Context, words []string) (scorer.Tensors, error) {
	t, ok := s.byWords[strings.Join(words, " ")]
	if !ok {
		return scorer.Tensors{}, fmt.Errorf("ccgparse: no precomputed tensors for sentence %q", strings.Join(words, " "))
	}
	return t, nil
}

func render(n *nbest.Node) string {
	if len(n.Children) == 0 {
		return fmt.Sprintf("(%s %s)", n.Category.String(), n.Word)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = render(c)
	}
	return fmt.Sprintf("(%s<%s> %s)", n.Category.String(), n.Rule, strings.Join(parts, " "))
}
