package lox

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Fixture is one golden end-to-end scenario: a Lox source snippet and
// the expected printed output (or expected diagnostic substrings, for
// error scenarios), loaded from testdata/fixtures/*.yaml so fixture
// scenarios can be added without touching Go source.
type Fixture struct {
	Name        string   `yaml:"name"`
	Source      string   `yaml:"source"`
	WantOutput  string   `yaml:"want_output"`
	WantDiagKind string  `yaml:"want_diag_kind"`
	WantDiagSub []string `yaml:"want_diag_contains"`
}

// LoadFixtures parses a YAML document containing a top-level "cases"
// list of Fixture entries.
func LoadFixtures(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Cases []Fixture `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Cases, nil
}
