// Package scenario reads YAML scripts describing a sequence
// of emplace operations over a map of int64 values:
//
//	entries:
//	  foo: 9
//	operations:
//	  - key: foo
//	    insert: 7
//	    update: mul 3
//
// Both insert and update are optional. Leaving out insert makes
// an operation on an absent key fail, leaving out update turns an
// operation on a present key into a plain read.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Scenario is a parsed scenario file.
type Scenario struct {
	// Entries are the initial map contents in file order.
	Entries    []Entry
	Operations []Operation
}

type Entry struct {
	Key   string
	Value int64
}

type Operation struct {
	Key string

	// Insert is nil if the operation has no insert handler.
	Insert *int64

	// Update is nil if the operation has no update handler.
	Update *Update
}

type file struct {
	Entries    yaml.Node    `yaml:"entries"`
	Operations *[]operation `yaml:"operations"`
}

type operation struct {
	Key    *string   `yaml:"key"`
	Insert yaml.Node `yaml:"insert"`
	Update *string   `yaml:"update"`
}

// ReadFile reads the scenario at filePath in filesystem.
func ReadFile(filesystem fs.FS, filePath string) (*Scenario, error) {
	f, err := filesystem.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()
	return Read(f, filePath)
}

// Read reads a scenario from r.
// filePath is only used in error messages.
func Read(r io.Reader, filePath string) (*Scenario, error) {
	var f file
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ErrorMissing{FilePath: filePath}
		}
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}

	s := &Scenario{}

	entries, err := readEntries(&f.Entries, filePath)
	if err != nil {
		return nil, err
	}
	s.Entries = entries

	if f.Operations == nil {
		return nil, &ErrorMissing{
			FilePath: filePath,
			Feature:  "operations",
		}
	}
	s.Operations = make([]Operation, len(*f.Operations))
	for i, o := range *f.Operations {
		if o.Key == nil {
			return nil, &ErrorMissing{
				FilePath: filePath,
				Feature:  fmt.Sprintf("operations[%d].key", i),
			}
		}
		s.Operations[i] = Operation{Key: *o.Key}
		if o.Insert.Kind != 0 && o.Insert.ShortTag() != "!!null" {
			v, err := decodeInt(&o.Insert)
			if err != nil {
				return nil, &ErrorIllegal{
					FilePath: filePath,
					Feature:  fmt.Sprintf("operations[%d].insert", i),
					Message:  err.Error(),
				}
			}
			s.Operations[i].Insert = &v
		}
		if o.Update != nil {
			u, err := ParseUpdate(*o.Update)
			if err != nil {
				return nil, &ErrorIllegal{
					FilePath: filePath,
					Feature:  fmt.Sprintf("operations[%d].update", i),
					Message:  err.Error(),
				}
			}
			s.Operations[i].Update = &u
		}
	}

	return s, nil
}

func readEntries(n *yaml.Node, filePath string) ([]Entry, error) {
	switch {
	case n.Kind == 0:
		// Not defined
		return nil, nil
	case n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null":
		return nil, nil
	case n.Kind != yaml.MappingNode:
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Feature:  "entries",
			Message:  "expected a mapping",
		}
	}

	entries := make([]Entry, 0, len(n.Content)/2)
	index := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, &ErrorIllegal{
				FilePath: filePath,
				Feature:  fmt.Sprintf("entries key at line %d", k.Line),
				Message:  "expected a scalar",
			}
		}
		if _, ok := index[k.Value]; ok {
			return nil, &ErrorIllegal{
				FilePath: filePath,
				Feature:  "entries." + k.Value,
				Message:  "duplicate key",
			}
		}
		index[k.Value] = struct{}{}

		value, err := decodeInt(v)
		if err != nil {
			return nil, &ErrorIllegal{
				FilePath: filePath,
				Feature:  "entries." + k.Value,
				Message:  err.Error(),
			}
		}
		entries = append(entries, Entry{Key: k.Value, Value: value})
	}
	return entries, nil
}

// decodeInt decodes n only if it's an integer scalar,
// yaml.v3 would otherwise truncate floats.
func decodeInt(n *yaml.Node) (int64, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" {
		return 0, fmt.Errorf("line %d: expected an integer, got %q", n.Line, n.Value)
	}
	var v int64
	if err := n.Decode(&v); err != nil {
		return 0, err
	}
	return v, nil
}

type ErrorMissing struct {
	FilePath string
	Feature  string
}

func (e ErrorMissing) Error() string {
	var b strings.Builder
	if e.Feature == "" {
		b.Grow(len("missing ") + len(e.FilePath))
		b.WriteString("missing ")
		b.WriteString(e.FilePath)
		return b.String()
	}
	b.Grow(len("missing ") + len(e.Feature) + len(" in ") + len(e.FilePath))
	b.WriteString("missing ")
	b.WriteString(e.Feature)
	b.WriteString(" in ")
	b.WriteString(e.FilePath)
	return b.String()
}

type ErrorIllegal struct {
	FilePath string
	Feature  string
	Message  string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	b.WriteString("illegal ")
	if e.Feature != "" {
		b.WriteString(e.Feature)
		b.WriteString(" in ")
	}
	b.WriteString(e.FilePath)
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
