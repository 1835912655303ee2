package main

import (
	"fmt"
	"iter"

	"github.com/joshuapare/treekit/pkg/types"
	"github.com/joshuapare/treekit/trees"
)

// loaded holds a document built into treekit storage; exactly one field is set.
type loaded struct {
	tree   *trees.Tree[string]
	forest *trees.Forest[string]
}

func (l *loaded) String() string {
	if l.forest != nil {
		return l.forest.String()
	}
	return l.tree.String()
}

func (l *loaded) Stats() trees.Stats {
	if l.forest != nil {
		return l.forest.Stats()
	}
	return l.tree.Stats()
}

func (l *loaded) Check() error {
	if l.forest != nil {
		return l.forest.Check()
	}
	return l.tree.Check()
}

func (l *loaded) Strategy() trees.Strategy {
	if l.forest != nil {
		return l.forest.Strategy()
	}
	return l.tree.Strategy()
}

func (l *loaded) Drop() {
	if l.forest != nil {
		l.forest.Drop()
		return
	}
	l.tree.Drop()
}

// load reads path and builds it with the global --piled and --limits flags.
func load(path string) (*loaded, error) {
	limits, err := parseLimits(limitsName)
	if err != nil {
		return nil, err
	}
	printVerbose("Loading document: %s\n", path)
	doc, err := loadDocument(path, limits)
	if err != nil {
		return nil, err
	}
	l, err := buildDocument(doc, piled, limits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	printVerbose("Built %s storage\n", l.Strategy())
	return l, nil
}

// buildDocument builds doc either node by node on the heap or, with piled,
// into one arena from its preorder shape.
func buildDocument(doc *document, piled bool, limits types.Limits) (*loaded, error) {
	opts := trees.BuildOptions{Limits: limits}
	if doc.forest {
		if !piled {
			f := trees.NewForest[string]()
			for _, r := range doc.roots {
				f.PushBack(buildScattered(r))
			}
			return &loaded{forest: f}, nil
		}
		degree, nodes := doc.size()
		size := trees.Size{Degree: degree, Descendants: nodes}
		f, err := trees.BuildForest(size, docShapes(doc.roots), opts)
		if err != nil {
			return nil, err
		}
		return &loaded{forest: f}, nil
	}

	if !piled {
		return &loaded{tree: buildScattered(doc.roots[0])}, nil
	}
	t, err := trees.BuildTree(docShapes(doc.roots[:1]), opts)
	if err != nil {
		return nil, err
	}
	return &loaded{tree: t}, nil
}

// buildScattered grows a heap tree one PushBack at a time.
func buildScattered(root *docNode) *trees.Tree[string] {
	type pending struct {
		d *docNode
		n *trees.Node[string]
	}
	t := trees.New(root.value)
	stack := []pending{{root, t.Root()}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range p.d.children {
			child := trees.New(c.value)
			n := child.Root()
			p.n.PushBack(child)
			stack = append(stack, pending{c, n})
		}
	}
	return t
}

// docShapes emits the preorder shape events of roots, one tree after another.
func docShapes(roots []*docNode) iter.Seq[trees.Shape[string]] {
	return func(yield func(trees.Shape[string]) bool) {
		type frame struct {
			nodes []*docNode
			i     int
		}
		stack := []frame{{nodes: roots}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.i == len(top.nodes) {
				stack = stack[:len(stack)-1]
				if len(stack) > 0 && !yield(trees.Frame[string]()) {
					return
				}
				continue
			}
			n := top.nodes[top.i]
			top.i++
			if len(n.children) == 0 {
				if !yield(trees.Leaf(n.value)) {
					return
				}
				continue
			}
			size := trees.Size{Degree: len(n.children), Descendants: n.desc}
			if !yield(trees.Branch(n.value, size)) {
				return
			}
			stack = append(stack, frame{nodes: n.children})
		}
	}
}

// docSibs walks a run of document siblings for level-order linearization.
type docSibs struct {
	nodes []*docNode
}

func (s *docSibs) Next() (*docNode, bool) {
	if len(s.nodes) == 0 {
		return nil, false
	}
	n := s.nodes[0]
	s.nodes = s.nodes[1:]
	return n, true
}

func (s *docSibs) Len() int { return len(s.nodes) }

func splitDoc(n *docNode) (string, trees.Sibs[*docNode], int) {
	return n.value, &docSibs{nodes: n.children}, n.desc
}

// docVisits linearizes roots in level order straight from the document.
func docVisits(roots []*docNode) *trees.Splitted[*docNode, string] {
	return trees.NewSplitted[*docNode, string](&docSibs{nodes: roots}, splitDoc)
}
