package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/treekit/internal/mmfile"
	"github.com/joshuapare/treekit/pkg/types"
)

// docNode is one node of a loaded document. desc counts every node below it.
type docNode struct {
	value    string
	children []*docNode
	desc     int
}

// document is a parsed input file: one tree, or a forest when the top level
// is a sequence.
type document struct {
	roots  []*docNode
	forest bool
}

// size returns the forest-style size of the top level: {roots, all nodes}.
func (d *document) size() (degree, nodes int) {
	for _, r := range d.roots {
		nodes += 1 + r.desc
	}
	return len(d.roots), nodes
}

func loadDocument(path string, limits types.Limits) (*document, error) {
	m, err := mmfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer m.Close()

	doc, err := readDocument(bytes.NewReader(m.Bytes()), limits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// readDocument decodes a YAML or JSON document. UTF-16 input is accepted when
// it starts with a byte order mark; anything else is read as UTF-8. The node
// limit applies while aliases are expanded.
func readDocument(r io.Reader, limits types.Limits) (*document, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	utf8Reader := transform.NewReader(r, decoder)

	var root yaml.Node
	if err := yaml.NewDecoder(utf8Reader).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("empty document")
	}

	top := root.Content[0]
	doc := &document{}
	items := []*yaml.Node{top}
	if top.Kind == yaml.SequenceNode {
		doc.forest = true
		items = top.Content
	}
	total := 0
	for _, item := range items {
		n, err := convert(item, limits, &total)
		if err != nil {
			return nil, err
		}
		doc.roots = append(doc.roots, n)
	}
	return doc, nil
}

// pathLink is one YAML node on the path from a top-level item down to the
// node being converted.
type pathLink struct {
	y  *yaml.Node
	up *pathLink
}

func (p *pathLink) contains(y *yaml.Node) bool {
	for ; p != nil; p = p.up {
		if p.y == y {
			return true
		}
	}
	return false
}

// convert turns one YAML node into a docNode tree without recursion, then
// fills in descendant counts bottom-up. total counts nodes across the whole
// document and is checked against limits.
func convert(top *yaml.Node, limits types.Limits, total *int) (*docNode, error) {
	type pending struct {
		y    *yaml.Node
		d    *docNode
		path *pathLink
	}
	root := &docNode{}
	order := []*docNode{}
	stack := []pending{{top, root, nil}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, p.d)

		*total++
		if err := types.LimitViolation(limits.CheckNodes(*total)); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.y.Line, err)
		}

		y := p.y
		if y.Kind == yaml.AliasNode {
			if p.path.contains(y.Alias) {
				return nil, fmt.Errorf("line %d: alias *%s contains itself", y.Line, y.Alias.Anchor)
			}
			y = y.Alias
		}
		children, err := fillNode(y, p.d)
		if err != nil {
			return nil, err
		}
		path := &pathLink{y: y, up: p.path}
		p.d.children = make([]*docNode, len(children))
		for i, c := range children {
			p.d.children[i] = &docNode{}
			stack = append(stack, pending{c, p.d.children[i], path})
		}
	}
	// every node precedes its children in order
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		for _, c := range n.children {
			n.desc += 1 + c.desc
		}
	}
	return root, nil
}

// fillNode reads the payload of y into d and returns y's child nodes.
func fillNode(y *yaml.Node, d *docNode) ([]*yaml.Node, error) {
	switch y.Kind {
	case yaml.ScalarNode:
		d.value = y.Value
		return nil, nil
	case yaml.MappingNode:
		var children []*yaml.Node
		seenValue := false
		for i := 0; i+1 < len(y.Content); i += 2 {
			key, val := y.Content[i], y.Content[i+1]
			switch key.Value {
			case "value":
				if val.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("line %d: value must be a scalar", val.Line)
				}
				d.value = val.Value
				seenValue = true
			case "children":
				if val.Kind != yaml.SequenceNode {
					return nil, fmt.Errorf("line %d: children must be a list", val.Line)
				}
				children = val.Content
			default:
				return nil, fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
			}
		}
		if !seenValue {
			return nil, fmt.Errorf("line %d: node has no value", y.Line)
		}
		return children, nil
	default:
		return nil, fmt.Errorf("line %d: a node must be a scalar or a mapping", y.Line)
	}
}
