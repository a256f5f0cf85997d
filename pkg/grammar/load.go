package grammar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/combinator"
)

// Load reads the four flat-file grammar-pack formats from dir
// (categories.txt, seen_rules.txt, cat_dict.txt, unary_rules.txt) and
// assembles a Pack using binaryRules as the combinator catalogue (the
// file format does not encode combinators — those are Go-level catalogue
// selections, e.g. combinator.EnglishDefaultBinaryRules).
func Load(dir, name string, binaryRules []combinator.Rule, roots []category.Category) (*Pack, error) {
	cats, err := loadCategories(filepath.Join(dir, "categories.txt"))
	if err != nil {
		return nil, fmt.Errorf("grammar: load categories: %w", err)
	}
	byString := make(map[string]int, len(cats))
	for i, c := range cats {
		byString[c.String()] = i
	}

	seen, err := loadSeenRules(filepath.Join(dir, "seen_rules.txt"))
	if err != nil {
		return nil, fmt.Errorf("grammar: load seen_rules: %w", err)
	}

	catDict, err := loadCategoryDictionary(filepath.Join(dir, "cat_dict.txt"), byString)
	if err != nil {
		return nil, fmt.Errorf("grammar: load cat_dict: %w", err)
	}

	unary, err := loadUnaryRules(filepath.Join(dir, "unary_rules.txt"))
	if err != nil {
		return nil, fmt.Errorf("grammar: load unary_rules: %w", err)
	}

	pack := New(name, cats, unary, seen, catDict, roots, binaryRules)
	if err := pack.Validate(); err != nil {
		return nil, err
	}
	return pack, nil
}

func loadCategories(path string) ([]category.Category, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	out := make([]category.Category, 0, len(lines))
	for lineNo, line := range lines {
		cat, err := category.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo+1, err)
		}
		out = append(out, cat)
	}
	return out, nil
}

func loadSeenRules(path string) (map[[2]string]bool, error) {
	lines, err := readLines(path)
	if os.IsNotExist(err) {
		return map[[2]string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[[2]string]bool, len(lines))
	for lineNo, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected 'LEFT_CAT RIGHT_CAT'", path, lineNo+1)
		}
		left, err := category.Parse(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo+1, err)
		}
		right, err := category.Parse(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo+1, err)
		}
		out[[2]string{left.String(), right.String()}] = true
	}
	return out, nil
}

func loadCategoryDictionary(path string, byString map[string]int) (map[string][]int, error) {
	lines, err := readLines(path)
	if os.IsNotExist(err) {
		return map[string][]int{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[string][]int, len(lines))
	for lineNo, line := range lines {
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected 'WORD\\tCAT_INDEX_CSV'", path, lineNo+1)
		}
		word := fields[0]
		var indices []int
		for _, tok := range strings.Split(fields[1], ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			idx, err := strconv.Atoi(tok)
			if err != nil {
				// Also accept literal category strings resolved
				// against the inventory, for hand-authored packs.
				if i, ok := byString[tok]; ok {
					idx = i
				} else {
					return nil, fmt.Errorf("%s:%d: bad category index %q", path, lineNo+1, tok)
				}
			}
			indices = append(indices, idx)
		}
		out[word] = indices
	}
	return out, nil
}

func loadUnaryRules(path string) (map[string][]category.Category, error) {
	lines, err := readLines(path)
	if os.IsNotExist(err) {
		return map[string][]category.Category{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[string][]category.Category, len(lines))
	for lineNo, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected 'CHILD_CAT PARENT_CAT'", path, lineNo+1)
		}
		child, err := category.Parse(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo+1, err)
		}
		parent, err := category.Parse(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo+1, err)
		}
		out[child.String()] = append(out[child.String()], parent)
	}
	return out, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, err
	}
	return lines, nil
}
