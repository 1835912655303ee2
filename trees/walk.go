package trees

import (
	"iter"

	"github.com/joshuapare/treekit/pkg/types"
)

// VisitKind classifies the node under a Walk cursor.
type VisitKind uint8

const (
	// VisitNone means the cursor is not on a node: the traversal is complete,
	// or a navigation step just failed.
	VisitNone VisitKind = iota
	// VisitBegin is entry into a node that has children.
	VisitBegin
	// VisitEnd is exit from a node that has children, after all of them.
	VisitEnd
	// VisitLeaf is the single visit of a childless node.
	VisitLeaf
)

func (k VisitKind) String() string {
	switch k {
	case VisitBegin:
		return "Begin"
	case VisitEnd:
		return "End"
	case VisitLeaf:
		return "Leaf"
	default:
		return "None"
	}
}

// WalkVisit is the cursor's current event. The same node is reported by its
// Begin and its End, so preorder callers react to Begin and postorder callers
// to End.
type WalkVisit[T any] struct {
	Kind VisitKind
	Node *Node[T]
}

// direction selects what the next forward step tries.
type direction uint8

const (
	dirDown  direction = iota // into the first child of the current node
	dirUp                     // the current sibling run is done; back to its parent
	dirRight                  // on to the next sibling
)

// frame is a run of siblings being visited. sentinel is one past the last
// sibling to visit; nil means run to the end of the list.
type frame[T any] struct {
	node     *Node[T]
	sentinel *Node[T]
}

// walk is the depth-first automaton shared by TreeWalk and ForestWalk. path
// holds the current node and all of its ancestors, so depth never touches the
// call stack.
type walk[T any] struct {
	path   []frame[T]
	dir    direction
	kind   VisitKind
	origin frame[T] // restored by revisit
}

func classify[T any](n *Node[T]) VisitKind {
	if n.HasNoChild() {
		return VisitLeaf
	}
	return VisitBegin
}

func (w *walk[T]) reset() {
	w.path = w.path[:0]
	w.dir = dirDown
	w.kind = VisitNone
}

func (w *walk[T]) start(f frame[T]) {
	w.reset()
	w.origin = f
	if f.node == nil {
		return
	}
	w.path = append(w.path, f)
	w.kind = classify(f.node)
}

// onNode walks n and its subtree only.
func (w *walk[T]) onNode(n *Node[T]) { w.start(frame[T]{node: n, sentinel: n.next}) }

// onForest walks head and every following sibling.
func (w *walk[T]) onForest(head *Node[T]) { w.start(frame[T]{node: head}) }

func (w *walk[T]) top() *frame[T] {
	if len(w.path) == 0 {
		return nil
	}
	return &w.path[len(w.path)-1]
}

func (w *walk[T]) get() (WalkVisit[T], bool) {
	if w.kind == VisitNone || len(w.path) == 0 {
		return WalkVisit[T]{}, false
	}
	return WalkVisit[T]{Kind: w.kind, Node: w.top().node}, true
}

func (w *walk[T]) forward() {
	for {
		switch w.dir {
		case dirUp:
			w.path = w.path[:len(w.path)-1]
			if len(w.path) > 0 {
				w.dir = dirRight
				w.kind = VisitEnd
			} else {
				w.dir = dirDown
				w.kind = VisitNone
			}
			return

		case dirDown:
			f := w.top()
			if f == nil {
				return
			}
			if f.node.HasNoChild() {
				w.dir = dirRight
				continue
			}
			head := f.node.head
			w.path = append(w.path, frame[T]{node: head})
			w.kind = classify(head)
			return

		case dirRight:
			f := w.top()
			if f == nil {
				return
			}
			f.node = f.node.next
			if f.node == f.sentinel {
				w.dir = dirUp
				continue
			}
			w.kind = classify(f.node)
			if w.kind == VisitBegin {
				w.dir = dirDown
			}
			return
		}
	}
}

func (w *walk[T]) next() (WalkVisit[T], bool) {
	w.forward()
	return w.get()
}

func (w *walk[T]) toParent() (WalkVisit[T], bool) {
	if len(w.path) > 0 {
		w.path = w.path[:len(w.path)-1]
		if len(w.path) > 0 {
			w.dir = dirRight
			w.kind = VisitEnd
			return w.get()
		}
	}
	w.dir = dirDown
	w.kind = VisitNone
	return WalkVisit[T]{}, false
}

func (w *walk[T]) getParent() *Node[T] {
	if len(w.path) < 2 {
		return nil
	}
	return w.path[len(w.path)-2].node
}

// toSib moves n siblings forward. Passing the end of the run leaves the
// cursor with no visit and direction up, so forward resumes at the parent's End.
func (w *walk[T]) toSib(n int) (WalkVisit[T], bool) {
	f := w.top()
	if f == nil || w.kind == VisitNone {
		return WalkVisit[T]{}, false
	}
	for range n {
		f.node = f.node.next
		if f.node == f.sentinel {
			w.dir = dirUp
			w.kind = VisitNone
			return WalkVisit[T]{}, false
		}
	}
	w.kind = classify(f.node)
	if w.kind == VisitBegin {
		w.dir = dirDown
	}
	return w.get()
}

// toChild moves to the n-th child of the current node, 0 being the first.
func (w *walk[T]) toChild(n int) (WalkVisit[T], bool) {
	f := w.top()
	if f == nil || w.kind == VisitNone {
		return WalkVisit[T]{}, false
	}
	if f.node.HasNoChild() {
		w.dir = dirRight
		return WalkVisit[T]{}, false
	}
	head := f.node.head
	w.path = append(w.path, frame[T]{node: head})
	w.kind = classify(head)
	return w.toSib(n)
}

// revisit re-enters the current node from its Begin. On a finished cursor it
// restarts from the origin. After a failed toSib the dead run is dropped and
// its parent is re-entered.
func (w *walk[T]) revisit() {
	if w.origin.node == nil {
		return
	}
	if w.kind == VisitNone {
		if f := w.top(); f != nil && f.node == f.sentinel {
			w.path = w.path[:len(w.path)-1]
		}
		if len(w.path) == 0 {
			w.path = append(w.path, w.origin)
		}
	}
	w.dir = dirDown
	w.kind = classify(w.top().node)
}

func (w *walk[T]) all() iter.Seq[WalkVisit[T]] {
	return func(yield func(WalkVisit[T]) bool) {
		for v, ok := w.get(); ok; v, ok = w.next() {
			if !yield(v) {
				return
			}
		}
	}
}

// ============================================================================
// TreeWalk / ForestWalk
// ============================================================================

// TreeWalk is a depth-first cursor that holds a tree for the length of a
// session. Finish ends the session and hands the tree back.
type TreeWalk[T any] struct {
	tree *Tree[T]
	w    walk[T]
}

// NewTreeWalk starts a walk at the root of tree, consuming it until Finish.
func NewTreeWalk[T any](tree *Tree[T]) *TreeWalk[T] {
	tw := &TreeWalk[T]{tree: &Tree[T]{root: tree.take()}}
	tw.w.onNode(tw.tree.root)
	return tw
}

func (tw *TreeWalk[T]) cursor() *walk[T] {
	if tw.tree == nil {
		panic(types.ErrReleased)
	}
	return &tw.w
}

// Get returns the current visit; false once the traversal is complete.
func (tw *TreeWalk[T]) Get() (WalkVisit[T], bool) { return tw.cursor().get() }

// Forward advances the cursor one step in depth-first order.
func (tw *TreeWalk[T]) Forward() { tw.cursor().forward() }

// Next advances the cursor and returns the new visit. The first visit is only
// reachable through Get.
func (tw *TreeWalk[T]) Next() (WalkVisit[T], bool) { return tw.cursor().next() }

// ToParent moves to the End of the current node's parent.
func (tw *TreeWalk[T]) ToParent() (WalkVisit[T], bool) { return tw.cursor().toParent() }

// GetParent returns the parent of the current node without moving, or nil.
func (tw *TreeWalk[T]) GetParent() *Node[T] { return tw.cursor().getParent() }

// ToChild moves to the n-th child of the current node.
func (tw *TreeWalk[T]) ToChild(n int) (WalkVisit[T], bool) { return tw.cursor().toChild(n) }

// ToSib moves n siblings forward; ToSib(0) re-reports the current node.
func (tw *TreeWalk[T]) ToSib(n int) (WalkVisit[T], bool) { return tw.cursor().toSib(n) }

// Revisit re-enters the current node from its Begin, or restarts the
// traversal once it has completed.
func (tw *TreeWalk[T]) Revisit() { tw.cursor().revisit() }

// All yields the current visit and every later one.
func (tw *TreeWalk[T]) All() iter.Seq[WalkVisit[T]] { return tw.cursor().all() }

// Depth returns the number of frames on the cursor's stack.
func (tw *TreeWalk[T]) Depth() int { return len(tw.cursor().path) }

// Finish ends the session and returns the tree.
func (tw *TreeWalk[T]) Finish() *Tree[T] {
	t := tw.tree
	tw.cursor().reset()
	tw.tree = nil
	return t
}

// ForestWalk is a depth-first cursor over every tree of a forest.
type ForestWalk[T any] struct {
	forest *Forest[T]
	w      walk[T]
}

// NewForestWalk starts a walk at the first tree of forest, consuming it until Finish.
func NewForestWalk[T any](forest *Forest[T]) *ForestWalk[T] {
	fw := &ForestWalk[T]{forest: &Forest[T]{root: forest.take()}}
	fw.w.onForest(fw.forest.root.head)
	return fw
}

func (fw *ForestWalk[T]) cursor() *walk[T] {
	if fw.forest == nil {
		panic(types.ErrReleased)
	}
	return &fw.w
}

// Get returns the current visit; false once the traversal is complete.
func (fw *ForestWalk[T]) Get() (WalkVisit[T], bool) { return fw.cursor().get() }

// Forward advances the cursor one step in depth-first order.
func (fw *ForestWalk[T]) Forward() { fw.cursor().forward() }

// Next advances the cursor and returns the new visit.
func (fw *ForestWalk[T]) Next() (WalkVisit[T], bool) { return fw.cursor().next() }

// ToParent moves to the End of the current node's parent.
func (fw *ForestWalk[T]) ToParent() (WalkVisit[T], bool) { return fw.cursor().toParent() }

// GetParent returns the parent of the current node without moving, or nil
// for a top-level tree.
func (fw *ForestWalk[T]) GetParent() *Node[T] { return fw.cursor().getParent() }

// ToChild moves to the n-th child of the current node.
func (fw *ForestWalk[T]) ToChild(n int) (WalkVisit[T], bool) { return fw.cursor().toChild(n) }

// ToSib moves n siblings forward.
func (fw *ForestWalk[T]) ToSib(n int) (WalkVisit[T], bool) { return fw.cursor().toSib(n) }

// Revisit re-enters the current node from its Begin, or restarts the
// traversal once it has completed.
func (fw *ForestWalk[T]) Revisit() { fw.cursor().revisit() }

// All yields the current visit and every later one.
func (fw *ForestWalk[T]) All() iter.Seq[WalkVisit[T]] { return fw.cursor().all() }

// Depth returns the number of frames on the cursor's stack.
func (fw *ForestWalk[T]) Depth() int { return len(fw.cursor().path) }

// Finish ends the session and returns the forest.
func (fw *ForestWalk[T]) Finish() *Forest[T] {
	f := fw.forest
	fw.cursor().reset()
	fw.forest = nil
	return f
}
