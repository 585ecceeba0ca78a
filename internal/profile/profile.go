// Package profile reads and writes saved visibility sets as YAML:
//
//	folders:
//	  3d-objects: hide
//	  desktop: show
//
// Folders that are not listed are shown.
package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"thispc/internal/folders"
	"thispc/internal/policy"
)

type document struct {
	Folders yaml.Node `yaml:"folders"`
}

func Parse(b []byte) (policy.FlagSet, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	flags := policy.AllShown()
	node := doc.Folders
	if node.Kind == 0 {
		return flags, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse profile: line %d: folders must be a mapping", node.Line)
	}
	seen := map[string]bool{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		it, ok := folders.Lookup(k.Value)
		if !ok {
			return nil, fmt.Errorf("parse profile: line %d: unknown folder %q", k.Line, k.Value)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("parse profile: line %d: %s listed twice", k.Line, it.Alias)
		}
		seen[it.ID] = true
		visible, err := parseVisibility(v.Value)
		if err != nil {
			return nil, fmt.Errorf("parse profile: line %d: %s: %w", v.Line, k.Value, err)
		}
		flags[it.ID] = visible
	}
	return flags, nil
}

func parseVisibility(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "show", "shown", "visible":
		return true, nil
	case "hide", "hidden":
		return false, nil
	}
	return false, fmt.Errorf("want show or hide, got %q", s)
}

// Marshal emits every managed folder by alias in registry order.
func Marshal(flags policy.FlagSet) ([]byte, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, it := range folders.List() {
		v := "show"
		if shown, ok := flags[it.ID]; ok && !shown {
			v = "hide"
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: it.Alias},
			&yaml.Node{Kind: yaml.ScalarNode, Value: v},
		)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]*yaml.Node{"folders": m}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Read(path string) (policy.FlagSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	flags, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return flags, nil
}

func Write(path string, flags policy.FlagSet) error {
	b, err := Marshal(flags)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
