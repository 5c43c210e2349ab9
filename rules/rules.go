// Package rules decides which regulation sections apply to an operator
// profile. The rule table is data (catalog.yaml): each part owns an ordered
// list of predicate/section pairs and every pair is evaluated independently.
package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"compliance/types"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Predicate is a pure condition over a profile.
type Predicate func(types.OperatorProfile) bool

// Rule yields Section when Predicate matches.
type Rule struct {
	Predicate Predicate
	Section   types.Section
}

// Filter evaluates a fixed rule table. It is safe for concurrent use.
type Filter struct {
	table map[types.Part][]Rule
}

type catalogFile struct {
	Parts map[string][]ruleSpec `yaml:"parts"`
}

type ruleSpec struct {
	Section sectionSpec   `yaml:"section"`
	When    conditionSpec `yaml:"when"`
}

type sectionSpec struct {
	ID            string `yaml:"id"`
	Heading       string `yaml:"heading"`
	Applicability string `yaml:"applicability"`
}

type conditionSpec struct {
	Always  bool     `yaml:"always"`
	Field   string   `yaml:"field"`
	Equals  *string  `yaml:"equals"`
	Present bool     `yaml:"present"`
	Except  []string `yaml:"except"`
}

// Default returns the filter built from the embedded catalog.
func Default() *Filter {
	f, err := Load(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("rules: embedded catalog: %v", err))
	}
	return f
}

// Load compiles a YAML rule catalog.
func Load(catalog []byte) (*Filter, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalog, &file); err != nil {
		return nil, fmt.Errorf("error decoding rule catalog: %w", err)
	}
	if len(file.Parts) == 0 {
		return nil, errors.New("rule catalog has no parts")
	}

	table := make(map[types.Part][]Rule, len(file.Parts))
	for part, specs := range file.Parts {
		rules := make([]Rule, 0, len(specs))
		for i, spec := range specs {
			rule, err := spec.compile()
			if err != nil {
				return nil, fmt.Errorf("part %s rule %d: %w", part, i+1, err)
			}
			rules = append(rules, rule)
		}
		table[types.Part(part)] = rules
	}
	return &Filter{table: table}, nil
}

// New builds a filter from compiled rules.
func New(table map[types.Part][]Rule) *Filter {
	return &Filter{table: table}
}

// GetApplicableSections returns, for each part in order, the sections whose
// rule matches profile. Unknown parts yield an empty list.
func (f *Filter) GetApplicableSections(parts []types.Part, profile types.OperatorProfile) []types.ApplicabilityResult {
	results := make([]types.ApplicabilityResult, 0, len(parts))
	for _, part := range parts {
		sections := []types.Section{}
		for _, rule := range f.table[part] {
			if rule.Predicate(profile) {
				section := rule.Section
				section.Applicability = expand(section.Applicability, profile)
				sections = append(sections, section)
			}
		}
		results = append(results, types.ApplicabilityResult{Part: part, Sections: sections})
	}
	return results
}

// Parts lists the parts that have rules.
func (f *Filter) Parts() []types.Part {
	parts := make([]types.Part, 0, len(f.table))
	for p := range f.table {
		parts = append(parts, p)
	}
	slices.Sort(parts)
	return parts
}

func (s ruleSpec) compile() (Rule, error) {
	if s.Section.ID == "" || s.Section.Heading == "" {
		return Rule{}, errors.New("section id and heading are required")
	}
	pred, err := s.When.compile()
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Predicate: pred,
		Section: types.Section{
			ID:            s.Section.ID,
			Heading:       s.Section.Heading,
			Applicability: s.Section.Applicability,
		},
	}, nil
}

func (c conditionSpec) compile() (Predicate, error) {
	kinds := 0
	for _, set := range []bool{c.Always, c.Equals != nil, c.Present} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, errors.New("condition needs exactly one of always, equals, present")
	}

	switch {
	case c.Always:
		return Always(), nil
	case c.Field == "":
		return nil, errors.New("condition field is required")
	case c.Equals != nil:
		return Equals(c.Field, *c.Equals), nil
	default:
		return Present(c.Field, c.Except...), nil
	}
}

func Always() Predicate {
	return func(types.OperatorProfile) bool { return true }
}

// Equals matches when field holds exactly value as a string.
func Equals(field, value string) Predicate {
	return func(p types.OperatorProfile) bool {
		v, ok := p.String(field)
		return ok && v == value
	}
}

// Present matches when field is set to a non-empty value not in except.
func Present(field string, except ...string) Predicate {
	return func(p types.OperatorProfile) bool {
		if !p.Truthy(field) {
			return false
		}
		v, _ := p.Value(field)
		return !slices.Contains(except, v)
	}
}

func expand(text string, profile types.OperatorProfile) string {
	return os.Expand(text, func(key string) string {
		v, _ := profile.Value(key)
		return v
	})
}
