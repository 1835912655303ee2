package trees

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/joshuapare/treekit/internal/logger"
	"github.com/joshuapare/treekit/pkg/types"
)

// dataKind tags the payload slot of a node together with its storage strategy.
type dataKind uint8

const (
	dataNone          dataKind = iota // released, or an arena slot not yet filled
	dataScatteredNone                 // forest sentinel in its own heap cell
	dataScattered                     // payload in its own heap cell
	dataPiledNone                     // forest sentinel in an arena slot
	dataPiled                         // payload in an arena slot
)

// Strategy reports how a node's memory is held.
type Strategy uint8

const (
	// Released marks a node whose storage has already been given back.
	Released Strategy = iota
	// Scattered nodes each live in their own heap cell.
	Scattered
	// Piled nodes share one arena with the rest of the structure they were built with.
	Piled
)

func (s Strategy) String() string {
	switch s {
	case Scattered:
		return "scattered"
	case Piled:
		return "piled"
	default:
		return "released"
	}
}

// storage is the home of one node: a heap cell or an arena slot.
//
// Counting contract, identical for both:
//   - strong starts at 1 and the parent (or the owning Tree/Forest) holds that share.
//   - retain/release move the strong count; at zero the payload is cleared.
//   - retainWeak/releaseWeak track weak handles without keeping the payload alive.
//
// For arena slots every strong and weak share is also counted by the arena's
// live counter, and the arena is let go when that counter reaches zero.
type storage[T any] interface {
	node() *Node[T]
	retain()
	release()
	retainWeak()
	releaseWeak()
	strongCount() int
	weakCount() int
	borrows() *borrowFlag
	strategy() Strategy
}

type counts struct {
	strong int
	weak   int
	flag   borrowFlag
}

func (c *counts) incStrong() {
	if c.strong <= 0 {
		panic(types.ErrReleased)
	}
	c.strong++
}

// decStrong drops one strong share and reports whether it was the last.
func (c *counts) decStrong() bool {
	if c.strong <= 0 {
		panic(types.ErrReleased)
	}
	c.strong--
	return c.strong == 0
}

func (c *counts) decWeak() {
	if c.weak <= 0 {
		panic(types.ErrReleased)
	}
	c.weak--
}

// ============================================================================
// Scattered storage
// ============================================================================

// heapCell holds one scattered node; the node is colocated with its counts so
// promotion to a shared handle reuses the same address.
type heapCell[T any] struct {
	n Node[T]
	counts
}

func newHeapNode[T any](value T) *Node[T] {
	c := &heapCell[T]{counts: counts{strong: 1}}
	c.n.kind = dataScattered
	c.n.value = value
	c.n.home = c
	return &c.n
}

func newHeapSentinel[T any]() *Node[T] {
	c := &heapCell[T]{counts: counts{strong: 1}}
	c.n.kind = dataScatteredNone
	c.n.home = c
	return &c.n
}

func (c *heapCell[T]) node() *Node[T]       { return &c.n }
func (c *heapCell[T]) retain()              { c.incStrong() }
func (c *heapCell[T]) retainWeak()          { c.weak++ }
func (c *heapCell[T]) releaseWeak()         { c.decWeak() }
func (c *heapCell[T]) strongCount() int     { return c.strong }
func (c *heapCell[T]) weakCount() int       { return c.weak }
func (c *heapCell[T]) borrows() *borrowFlag { return &c.flag }
func (c *heapCell[T]) strategy() Strategy {
	if c.strong == 0 {
		return Released
	}
	return Scattered
}

func (c *heapCell[T]) release() {
	if c.decStrong() {
		c.n.clearPayload()
	}
}

// ============================================================================
// Piled storage
// ============================================================================

var arenaSeq atomic.Uint64

// arena is the contiguous backing buffer of one piled structure.
type arena[T any] struct {
	id    uint64
	slots []slot[T]
	live  int // strong plus weak interest across all slots
}

// slot is one node position inside an arena.
type slot[T any] struct {
	n Node[T]
	counts
	owner *arena[T]
	index int
}

// maxArenaBytes bounds one arena allocation, well under what the runtime
// will hand out for a single slice.
const maxArenaBytes = 1 << 40

// arenaCapacity is the largest slot count newArena accepts for T.
func arenaCapacity[T any]() int {
	limit := uint64(math.MaxInt)
	if limit > maxArenaBytes {
		limit = maxArenaBytes
	}
	return int(limit / uint64(unsafe.Sizeof(slot[T]{})))
}

// newArena allocates n slots, each holding one strong share.
func newArena[T any](n int) *arena[T] {
	a := &arena[T]{
		id:    arenaSeq.Add(1),
		slots: make([]slot[T], n),
		live:  n,
	}
	for i := range a.slots {
		s := &a.slots[i]
		s.owner = a
		s.index = i
		s.strong = 1
		s.n.home = s
	}
	logger.Debug("arena allocated", "arena", a.id, "slots", n)
	return a
}

func (a *arena[T]) node(index int) *Node[T] { return &a.slots[index].n }

// fill places a payload into slot index.
func (a *arena[T]) fill(index int, parent *Node[T], value T, size Size) *Node[T] {
	n := a.node(index)
	n.up = parent
	n.size = size
	n.kind = dataPiled
	n.value = value
	return n
}

// fillSentinel turns slot index into a forest sentinel.
func (a *arena[T]) fillSentinel(index int, size Size) *Node[T] {
	n := a.node(index)
	n.size = size
	n.kind = dataPiledNone
	return n
}

// appendChild fills slot child and links it as the last child of slot parent.
// Sizes are taken as given; callers validate them separately.
func (a *arena[T]) appendChild(parent, child int, value T, size Size) *Node[T] {
	p := a.node(parent)
	c := a.fill(child, p, value, size)
	if p.tail == nil {
		p.head = c
	} else {
		p.tail.connectNext(c)
	}
	p.tail = c
	return c
}

func (a *arena[T]) decLive() {
	if a.live <= 0 {
		panic(types.ErrReleased)
	}
	a.live--
	if a.live == 0 {
		logger.Debug("arena freed", "arena", a.id, "slots", len(a.slots))
		a.slots = nil
	}
}

// discard gives back an arena that never escaped its builder.
func (a *arena[T]) discard() {
	for i := range a.slots {
		a.slots[i].strong = 0
		a.slots[i].n.clearPayload()
	}
	logger.Debug("arena discarded", "arena", a.id, "slots", len(a.slots))
	a.live = 0
	a.slots = nil
}

func (s *slot[T]) node() *Node[T]       { return &s.n }
func (s *slot[T]) strongCount() int     { return s.strong }
func (s *slot[T]) weakCount() int       { return s.weak }
func (s *slot[T]) borrows() *borrowFlag { return &s.flag }
func (s *slot[T]) strategy() Strategy {
	if s.strong == 0 {
		return Released
	}
	return Piled
}

func (s *slot[T]) retain() {
	s.incStrong()
	s.owner.live++
}

func (s *slot[T]) release() {
	if s.decStrong() {
		s.n.clearPayload()
	}
	s.owner.decLive()
}

func (s *slot[T]) retainWeak() {
	s.weak++
	s.owner.live++
}

func (s *slot[T]) releaseWeak() {
	s.decWeak()
	s.owner.decLive()
}
