package classifier

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FallbackCategory is the category assigned when no keyword match clears
// the confidence floor. Its keyword list is empty.
const FallbackCategory = "Other"

//go:embed categories.yaml
var categoriesYAML []byte

// CategoryKeywords maps one category name to its keyword list.
// Table order is significant: ties between category scores keep the
// first-encountered category.
type CategoryKeywords struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type keywordTable struct {
	Categories []CategoryKeywords `yaml:"categories"`
}

// table is loaded once at init and never mutated afterwards.
var table []CategoryKeywords

func init() {
	var err error
	table, err = parseTable(categoriesYAML)
	if err != nil {
		panic(fmt.Sprintf("classifier: embedded category table: %v", err))
	}
}

func parseTable(raw []byte) ([]CategoryKeywords, error) {
	var t keywordTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse categories yaml: %w", err)
	}
	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("category table is empty")
	}
	hasFallback := false
	for _, c := range t.Categories {
		if c.Name == FallbackCategory {
			hasFallback = true
			if len(c.Keywords) != 0 {
				return nil, fmt.Errorf("fallback category %q must have no keywords", FallbackCategory)
			}
		}
	}
	if !hasFallback {
		return nil, fmt.Errorf("category table is missing fallback %q", FallbackCategory)
	}
	return t.Categories, nil
}

// Categories returns the fixed category vocabulary in table order.
func Categories() []string {
	names := make([]string, 0, len(table))
	for _, c := range table {
		names = append(names, c.Name)
	}
	return names
}
