// Package gsn reads GSN argument modules from YAML.
//
// A module file is a single YAML mapping. The optional key "module" holds
// the module information; every other key is the id of an element:
//
//	module:
//	  name: main
//	  brief: Top-level safety argument
//
//	G1:
//	  text: The system is acceptably safe
//	  supportedBy: [S1]
//	  inContextOf: [C1]
//
//	S1:
//	  text: Argument over all hazards
//	  supportedBy: [Sn1]
//
// Element keys keep their file order, which becomes the insertion order of
// the diagram graph. Duplicate keys at any level are rejected.
package gsn

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/errors"
)

// Element is one argument element of a module.
type Element struct {
	ID            string
	Kind          diagram.Kind
	Text          string
	SupportedBy   []string
	InContextOf   []string
	Undeveloped   bool
	URL           string
	Classes       []string
	RankIncrement int

	// Layers holds every additional scalar key, e.g. "level: SIL3".
	Layers map[string]string

	// Line is the 1-based line of the element key in the source file.
	Line int
}

// Module is a parsed module file.
type Module struct {
	Name     string
	Brief    string
	File     string
	Elements []*Element

	index map[string]*Element
}

// Element returns the element with the given id, or nil.
func (m *Module) Element(id string) *Element {
	return m.index[id]
}

// Has reports whether the module defines id.
func (m *Module) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Parse reads one module from data. name is used as module name unless the
// document sets module.name.
func Parse(name string, data []byte) (*Module, error) {
	m := &Module{Name: name, index: map[string]*Element{}}
	if err := yaml.Unmarshal(data, m); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: invalid YAML", name)
	}
	if err := errors.ValidateModuleName(m.Name); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads and parses the module file at path. The module name defaults
// to the file name without extension.
func Load(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	m.File = path
	return m, nil
}

// UnmarshalYAML implements yaml.Unmarshaler for the module document.
func (m *Module) UnmarshalYAML(value *yaml.Node) error {
	if err := checkDuplicateKeys(m.Name, value); err != nil {
		return err
	}
	if value.Kind != yaml.MappingNode {
		return errors.New(errors.ErrCodeInvalidInput, "%s: line %d: module must be a YAML mapping", m.Name, value.Line)
	}
	if m.index == nil {
		m.index = map[string]*Element{}
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Value == "module" {
			if err := m.decodeInfo(val); err != nil {
				return err
			}
			continue
		}

		e := &Element{ID: key.Value, Line: key.Line}
		if err := errors.ValidateElementID(e.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: line %d", m.Name, key.Line)
		}
		if err := val.Decode(e); err != nil {
			if errors.GetCode(err) != "" {
				return err
			}
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: element %s", m.Name, e.ID)
		}
		m.Elements = append(m.Elements, e)
		m.index[e.ID] = e
	}
	return nil
}

func (m *Module) decodeInfo(val *yaml.Node) error {
	var info struct {
		Name  string `yaml:"name"`
		Brief string `yaml:"brief"`
	}
	if err := val.Decode(&info); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: module information", m.Name)
	}
	if info.Name != "" {
		m.Name = info.Name
	}
	m.Brief = info.Brief
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for one element. e.ID must be
// set by the caller.
func (e *Element) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.New(errors.ErrCodeInvalidInput, "element %s: line %d: expected a mapping", e.ID, value.Line)
	}

	var nodeType string
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var err error
		switch key.Value {
		case "text":
			err = val.Decode(&e.Text)
		case "nodeType":
			err = val.Decode(&nodeType)
		case "supportedBy":
			e.SupportedBy, err = stringList(val)
		case "inContextOf":
			e.InContextOf, err = stringList(val)
		case "undeveloped":
			err = val.Decode(&e.Undeveloped)
		case "url":
			err = val.Decode(&e.URL)
		case "classes":
			e.Classes, err = stringList(val)
		case "rankIncrement":
			err = val.Decode(&e.RankIncrement)
		default:
			if val.Kind != yaml.ScalarNode {
				return errors.New(errors.ErrCodeInvalidInput, "element %s: line %d: unknown field %q", e.ID, key.Line, key.Value)
			}
			if e.Layers == nil {
				e.Layers = map[string]string{}
			}
			e.Layers[key.Value] = val.Value
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "element %s: field %s", e.ID, key.Value)
		}
	}

	kind, err := InferKind(e.ID, nodeType)
	if err != nil {
		return err
	}
	e.Kind = kind
	if e.RankIncrement < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "element %s: rankIncrement must not be negative", e.ID)
	}
	return nil
}

// stringList accepts a sequence of scalars or a single scalar. A single
// scalar is split on whitespace, so "classes: a b" equals "classes: [a, b]".
func stringList(val *yaml.Node) ([]string, error) {
	switch val.Kind {
	case yaml.ScalarNode:
		return strings.Fields(val.Value), nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(val.Content))
		for _, item := range val.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: expected a string", item.Line)
			}
			out = append(out, item.Value)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: expected a list of strings", val.Line)
}

// checkDuplicateKeys walks every mapping below n and rejects repeated keys.
func checkDuplicateKeys(file string, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			if err := checkDuplicateKeys(file, c); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		seen := make(map[string]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if first, ok := seen[key.Value]; ok {
				return errors.New(errors.ErrCodeDuplicateKey,
					"%s: line %d: duplicate key %q (first defined on line %d)", file, key.Line, key.Value, first)
			}
			seen[key.Value] = key.Line
			if err := checkDuplicateKeys(file, n.Content[i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}

var nodeTypes = map[string]diagram.Kind{
	"goal":          diagram.KindGoal,
	"strategy":      diagram.KindStrategy,
	"solution":      diagram.KindSolution,
	"context":       diagram.KindContext,
	"assumption":    diagram.KindAssumption,
	"justification": diagram.KindJustification,
}

// idPrefixes are tried in order; "Sn" must precede "S".
var idPrefixes = []struct {
	prefix string
	kind   diagram.Kind
}{
	{"Sn", diagram.KindSolution},
	{"G", diagram.KindGoal},
	{"S", diagram.KindStrategy},
	{"C", diagram.KindContext},
	{"A", diagram.KindAssumption},
	{"J", diagram.KindJustification},
}

// InferKind returns the element kind from an explicit nodeType, or from the
// id prefix when nodeType is empty.
func InferKind(id, nodeType string) (diagram.Kind, error) {
	if nodeType != "" {
		if k, ok := nodeTypes[strings.ToLower(nodeType)]; ok {
			return k, nil
		}
		return 0, errors.New(errors.ErrCodeInvalidInput, "element %s: unknown nodeType %q", id, nodeType)
	}
	for _, p := range idPrefixes {
		if strings.HasPrefix(id, p.prefix) {
			return p.kind, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput,
		"element %s: cannot infer kind from id; use a G, S, Sn, C, A or J prefix or set nodeType", id)
}
