package trees

import (
	"fmt"

	"github.com/joshuapare/treekit/internal/logger"
	"github.com/joshuapare/treekit/pkg/types"
)

// streamError wraps a sentinel with the position it was detected at.
func streamError(sentinel *types.Error, format string, args ...any) error {
	return &types.Error{Kind: sentinel.Kind, Msg: sentinel.Msg, Err: fmt.Errorf(format, args...)}
}

// TreeFromBFS rebuilds a tree with default options.
func TreeFromBFS[T any](b BFSTree[T]) (*Tree[T], error) {
	return DecodeTree(b, DecodeOptions{})
}

// ForestFromBFS rebuilds a forest with default options.
func ForestFromBFS[T any](b BFSForest[T]) (*Forest[T], error) {
	return DecodeForest(b, DecodeOptions{})
}

// DecodeTree rebuilds a tree in piled storage from its level-order visits.
// The first visit is the root; its descendant count sizes the arena.
func DecodeTree[T any](b BFSTree[T], opts DecodeOptions) (*Tree[T], error) {
	var (
		d    *decoder[T]
		err  error
		seen bool
	)
	for v := range b.Visits {
		if !seen {
			seen = true
			d, err = newTreeDecoder(v, opts)
		} else {
			err = d.push(v)
		}
		if err != nil {
			break
		}
	}
	if err == nil && !seen {
		err = types.ErrEmptyStream
	}
	if err == nil {
		err = d.finish()
	}
	if err != nil {
		if d != nil {
			d.a.discard()
		}
		logger.Debug("tree decode rejected", "err", err)
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return &Tree[T]{root: d.a.node(0)}, nil
}

// DecodeForest rebuilds a forest in piled storage. Slot 0 of the arena holds
// the forest sentinel, sized from b.Size.
func DecodeForest[T any](b BFSForest[T], opts DecodeOptions) (*Forest[T], error) {
	d, err := newForestDecoder[T](b.Size, opts)
	if err == nil {
		for v := range b.Visits {
			if err = d.push(v); err != nil {
				break
			}
		}
	}
	if err == nil {
		err = d.finish()
	}
	if err != nil {
		if d != nil {
			d.a.discard()
		}
		logger.Debug("forest decode rejected", "err", err)
		return nil, fmt.Errorf("decode forest: %w", err)
	}
	return &Forest[T]{root: d.a.node(0)}, nil
}

// decoder fills an arena from level-order visits in one pass.
//
// parent is the slot currently receiving children, child the next free slot,
// and remains the number of children parent still expects. Level order puts
// the children of consecutive nodes in consecutive runs, so parent only ever
// moves forward.
type decoder[T any] struct {
	a       *arena[T]
	opts    DecodeOptions
	parent  int
	child   int
	remains int
	depth   []int // per slot, only when a depth limit is set
}

// checkCount validates a claim of descendants nodes below slot 0 of an arena
// that is yet to be allocated. rooted reports whether slot 0 is a real node
// rather than a forest sentinel.
func checkCount[T any](l types.Limits, descendants int, rooted bool) error {
	if descendants < 0 {
		return streamError(types.ErrSizeMismatch, "negative node count %d", descendants)
	}
	if capacity := arenaCapacity[T](); descendants >= capacity {
		return streamError(types.ErrSizeMismatch, "claimed %d nodes, arena holds at most %d", descendants, capacity-1)
	}
	nodes := descendants
	if rooted {
		nodes++
	}
	return types.LimitViolation(l.CheckNodes(nodes))
}

func newTreeDecoder[T any](root Visit[T], opts DecodeOptions) (*decoder[T], error) {
	if root.Size.Degree < 0 || root.Size.Descendants < root.Size.Degree {
		return nil, streamError(types.ErrSizeMismatch, "root claims %+v", root.Size)
	}
	if err := checkCount[T](opts.Limits, root.Size.Descendants, true); err != nil {
		return nil, err
	}
	count := root.Size.Descendants + 1
	if err := types.LimitViolation(opts.Limits.CheckDegree(root.Size.Degree)); err != nil {
		return nil, err
	}
	d := &decoder[T]{a: newArena[T](count), opts: opts, child: 1, remains: root.Size.Degree}
	d.a.fill(0, nil, root.Data, root.Size)
	if opts.Limits.MaxDepth > 0 {
		d.depth = make([]int, count)
		d.depth[0] = 1
	}
	d.settle()
	return d, nil
}

func newForestDecoder[T any](size Size, opts DecodeOptions) (*decoder[T], error) {
	if size.Degree < 0 || size.Descendants < size.Degree {
		return nil, streamError(types.ErrSizeMismatch, "forest claims %+v", size)
	}
	if err := checkCount[T](opts.Limits, size.Descendants, false); err != nil {
		return nil, err
	}
	count := size.Descendants + 1
	d := &decoder[T]{a: newArena[T](count), opts: opts, child: 1, remains: size.Degree}
	d.a.fillSentinel(0, size)
	if opts.Limits.MaxDepth > 0 {
		d.depth = make([]int, count)
	}
	d.settle()
	return d, nil
}

// settle moves parent forward past every node whose children are complete,
// stopping at the first slot not yet filled.
func (d *decoder[T]) settle() {
	for d.remains == 0 {
		d.parent++
		if d.parent >= d.child {
			return
		}
		d.remains = d.a.node(d.parent).size.Degree
	}
}

func (d *decoder[T]) push(v Visit[T]) error {
	if d.child >= len(d.a.slots) {
		return streamError(types.ErrStreamOverflow, "visit %d of %d", d.child, len(d.a.slots))
	}
	if d.remains == 0 {
		return streamError(types.ErrOrphanVisit, "visit %d", d.child)
	}
	if v.Size.Degree < 0 || v.Size.Descendants < v.Size.Degree {
		return streamError(types.ErrSizeMismatch, "visit %d claims %+v", d.child, v.Size)
	}
	if err := types.LimitViolation(d.opts.Limits.CheckDegree(v.Size.Degree)); err != nil {
		return err
	}
	if d.depth != nil {
		d.depth[d.child] = d.depth[d.parent] + 1
		if err := types.LimitViolation(d.opts.Limits.CheckDepth(d.depth[d.child])); err != nil {
			return err
		}
	}

	d.a.appendChild(d.parent, d.child, v.Data, v.Size)
	d.remains--
	d.child++
	d.settle()
	return nil
}

// finish checks the stream against what was built.
func (d *decoder[T]) finish() error {
	n := len(d.a.slots)
	if d.opts.Trust {
		if d.child < n {
			truncateArena(d.a, d.child)
		}
		return nil
	}
	if d.child < n || d.remains > 0 {
		return streamError(types.ErrStreamUnderflow, "%d of %d nodes", d.child, n)
	}
	return checkClaims(d.a, recount(d.a, n))
}

// recount recomputes the sizes of the first n slots from their links. Both
// level order and preorder place every child after its parent, so one
// reverse pass sees all children of a slot before the slot itself.
func recount[T any](a *arena[T], n int) []Size {
	actual := make([]Size, n)
	for i := n - 1; i >= 1; i-- {
		p := a.node(i).up.home.(*slot[T]).index
		actual[p].Degree++
		actual[p].Descendants += 1 + actual[i].Descendants
	}
	return actual
}

// checkClaims compares the size each slot was built with against actual.
func checkClaims[T any](a *arena[T], actual []Size) error {
	for i, want := range actual {
		if got := a.node(i).size; got != want {
			return streamError(types.ErrSizeMismatch, "slot %d claims %+v, holds %+v", i, got, want)
		}
	}
	return nil
}

// truncateArena makes a structure that stopped after n slots internally
// consistent: sizes are recomputed and unfilled slots give their share back.
func truncateArena[T any](a *arena[T], n int) {
	for i, size := range recount(a, n) {
		a.node(i).size = size
	}
	for i := n; i < len(a.slots); i++ {
		a.slots[i].release()
	}
}
