package trees

import (
	"fmt"
	"iter"

	"github.com/joshuapare/treekit/internal/logger"
	"github.com/joshuapare/treekit/pkg/types"
)

// ShapeKind marks one event of a preorder shape stream.
type ShapeKind uint8

const (
	// ShapeBranch opens a node with children; a ShapeFrame closes it.
	ShapeBranch ShapeKind = iota + 1
	// ShapeLeaf is a node without children.
	ShapeLeaf
	// ShapeFrame closes the most recent open branch.
	ShapeFrame
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBranch:
		return "branch"
	case ShapeLeaf:
		return "leaf"
	case ShapeFrame:
		return "frame"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Shape is one preorder construction event. Size is meaningful for branches
// only; leaves are always {0, 0}.
type Shape[T any] struct {
	Kind ShapeKind
	Data T
	Size Size
}

// Branch opens a node that has children.
func Branch[T any](data T, size Size) Shape[T] {
	return Shape[T]{Kind: ShapeBranch, Data: data, Size: size}
}

// Leaf adds a childless node.
func Leaf[T any](data T) Shape[T] { return Shape[T]{Kind: ShapeLeaf, Data: data} }

// Frame closes the innermost open branch.
func Frame[T any]() Shape[T] { return Shape[T]{Kind: ShapeFrame} }

// builder lays nodes out in event order. open holds the slots of branches
// still receiving children; its top is the current parent.
type builder[T any] struct {
	a    *arena[T]
	opts BuildOptions
	next int
	open []int
	base int // entries of open that no Frame may close
}

func (b *builder[T]) push(ev Shape[T]) error {
	switch ev.Kind {
	case ShapeFrame:
		if len(b.open) <= b.base {
			return streamError(types.ErrUnbalancedShape, "frame at event for slot %d closes nothing", b.next)
		}
		b.open = b.open[:len(b.open)-1]
		return nil
	case ShapeBranch, ShapeLeaf:
	default:
		return streamError(types.ErrUnbalancedShape, "unknown event %v", ev.Kind)
	}

	if len(b.open) == 0 {
		return streamError(types.ErrUnbalancedShape, "node after the root closed")
	}
	if b.next >= len(b.a.slots) {
		return streamError(types.ErrStreamOverflow, "node %d of %d", b.next, len(b.a.slots))
	}
	size := Size{}
	if ev.Kind == ShapeBranch {
		size = ev.Size
		if err := b.checkBranch(size); err != nil {
			return err
		}
	}
	if err := types.LimitViolation(b.opts.Limits.CheckDepth(len(b.open) - b.base + 1)); err != nil {
		return err
	}

	b.a.appendChild(b.open[len(b.open)-1], b.next, ev.Data, size)
	if ev.Kind == ShapeBranch {
		b.open = append(b.open, b.next)
	}
	b.next++
	return nil
}

func (b *builder[T]) checkBranch(size Size) error {
	if size.Degree < 0 || size.Descendants < size.Degree {
		return streamError(types.ErrSizeMismatch, "branch %d claims %+v", b.next, size)
	}
	return types.LimitViolation(b.opts.Limits.CheckDegree(size.Degree))
}

func (b *builder[T]) finish() error {
	if len(b.open) != b.base {
		return streamError(types.ErrUnbalancedShape, "%d branch(es) left open", len(b.open)-b.base)
	}
	if b.next < len(b.a.slots) {
		return streamError(types.ErrStreamUnderflow, "%d of %d nodes", b.next, len(b.a.slots))
	}
	if b.opts.Trust {
		return nil
	}
	return checkClaims(b.a, recount(b.a, b.next))
}

// BuildTree builds a piled tree from preorder shape events. The first event
// is the root; a root branch's Size fixes the arena size and its Frame must be
// the last event.
func BuildTree[T any](events iter.Seq[Shape[T]], opts BuildOptions) (*Tree[T], error) {
	var (
		b   *builder[T]
		err error
	)
	for ev := range events {
		if b == nil {
			b, err = newTreeBuilder(ev, opts)
		} else {
			err = b.push(ev)
		}
		if err != nil {
			break
		}
	}
	if err == nil && b == nil {
		err = types.ErrEmptyStream
	}
	if err == nil {
		err = b.finish()
	}
	if err != nil {
		if b != nil {
			b.a.discard()
		}
		logger.Debug("tree build rejected", "err", err)
		return nil, fmt.Errorf("build tree: %w", err)
	}
	return &Tree[T]{root: b.a.node(0)}, nil
}

func newTreeBuilder[T any](root Shape[T], opts BuildOptions) (*builder[T], error) {
	b := &builder[T]{opts: opts, next: 1}
	var size Size
	switch root.Kind {
	case ShapeBranch:
		size = root.Size
		if err := b.checkBranch(size); err != nil {
			return nil, err
		}
	case ShapeLeaf:
	default:
		return nil, streamError(types.ErrUnbalancedShape, "stream starts with %v", root.Kind)
	}
	if err := checkCount[T](opts.Limits, size.Descendants, true); err != nil {
		return nil, err
	}
	if err := types.LimitViolation(opts.Limits.CheckDepth(1)); err != nil {
		return nil, err
	}
	b.a = newArena[T](size.Descendants + 1)
	b.a.fill(0, nil, root.Data, size)
	if root.Kind == ShapeBranch {
		b.open = append(b.open, 0)
	}
	return b, nil
}

// BuildForest builds a piled forest of the given size from preorder shape
// events of its trees, one after another.
func BuildForest[T any](size Size, events iter.Seq[Shape[T]], opts BuildOptions) (*Forest[T], error) {
	var err error
	if size.Degree < 0 || size.Descendants < size.Degree {
		err = streamError(types.ErrSizeMismatch, "forest claims %+v", size)
	} else {
		err = checkCount[T](opts.Limits, size.Descendants, false)
	}
	if err != nil {
		return nil, fmt.Errorf("build forest: %w", err)
	}

	b := &builder[T]{a: newArena[T](size.Descendants + 1), opts: opts, next: 1, open: []int{0}, base: 1}
	b.a.fillSentinel(0, size)
	for ev := range events {
		if err = b.push(ev); err != nil {
			break
		}
	}
	if err == nil {
		err = b.finish()
	}
	if err != nil {
		b.a.discard()
		logger.Debug("forest build rejected", "err", err)
		return nil, fmt.Errorf("build forest: %w", err)
	}
	return &Forest[T]{root: b.a.node(0)}, nil
}

// PreorderShape returns the shape events that rebuild the subtree rooted at n.
func PreorderShape[T any](n *Node[T]) iter.Seq[Shape[T]] {
	return func(yield func(Shape[T]) bool) {
		var w walk[T]
		w.onNode(n)
		shapeEvents(&w, yield)
	}
}

// PreorderShapeForest returns the shape events of every tree in f, in order.
func PreorderShapeForest[T any](f *Forest[T]) iter.Seq[Shape[T]] {
	return func(yield func(Shape[T]) bool) {
		var w walk[T]
		w.onForest(f.node().head)
		shapeEvents(&w, yield)
	}
}

func shapeEvents[T any](w *walk[T], yield func(Shape[T]) bool) {
	for v, ok := w.get(); ok; v, ok = w.next() {
		var ev Shape[T]
		switch v.Kind {
		case VisitBegin:
			ev = Branch(v.Node.value, v.Node.size)
		case VisitLeaf:
			ev = Leaf(v.Node.value)
		case VisitEnd:
			ev = Frame[T]()
		}
		if !yield(ev) {
			return
		}
	}
}
