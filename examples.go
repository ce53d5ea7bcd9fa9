package smizip

import (
	"embed"
	"fmt"
	"sort"
)

// examplesFS embeds the built-in example dictionaries shipped with the
// module. "minimal" is a syntactically complete but untrained fixture: its
// 256 tokens are single chars plus mechanically generated two-char
// placeholders, not the product of running Learn against a real corpus
// (see DESIGN.md). It exists so LoadDictionary and the CLI have something
// to exercise without a multi-gigabyte SMILES corpus on hand.
//
//go:embed examples/*.json
var examplesFS embed.FS

// LoadExample loads one of the built-in dictionaries by name (without the
// ".json" suffix).
func LoadExample(name string) (*Dictionary, error) {
	data, err := examplesFS.ReadFile("examples/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("smizip: unknown example %q", name)
	}
	return UnmarshalDictionary(data)
}

// ExampleNames lists the built-in dictionaries available to LoadExample.
func ExampleNames() []string {
	entries, err := examplesFS.ReadDir("examples")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		names = append(names, name[:len(name)-len(".json")])
	}
	sort.Strings(names)
	return names
}
