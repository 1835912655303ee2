package types

import "fmt"

// ============================================================================
// Limit Constants
// ============================================================================
// These bound the shape of structures accepted from untrusted streams. The
// engine itself has no intrinsic limits; they exist so a decoder can refuse a
// stream that would allocate an absurd arena before reading the whole stream.

const (
	// DefaultMaxNodes is the standard maximum node count of one structure.
	DefaultMaxNodes = 1 << 24 // 16,777,216 nodes

	// RelaxedMaxNodes allows very large structures.
	RelaxedMaxNodes = 1 << 28

	// StrictMaxNodes is a conservative maximum for constrained environments.
	StrictMaxNodes = 1 << 16

	// DefaultMaxDegree is the standard maximum number of children per node.
	DefaultMaxDegree = 1 << 20

	// RelaxedMaxDegree allows extremely wide nodes.
	RelaxedMaxDegree = 1 << 26

	// StrictMaxDegree is a conservative per-node child limit.
	StrictMaxDegree = 1 << 12

	// DefaultMaxDepth is the practical depth limit. Traversals are iterative,
	// so depth is bounded only to keep printed forms and stacks reasonable.
	DefaultMaxDepth = 1 << 16

	// RelaxedMaxDepth allows degenerate list-shaped trees.
	RelaxedMaxDepth = 1 << 24

	// StrictMaxDepth is a conservative depth limit.
	StrictMaxDepth = 512
)

// Limits defines constraints on structures built from external input.
// A zero field means "no limit" for that dimension.
type Limits struct {
	// MaxNodes is the maximum number of real nodes in one tree or forest.
	MaxNodes int

	// MaxDegree is the maximum number of direct children of any node.
	MaxDegree int

	// MaxDepth is the maximum depth, counting a tree root as depth 1.
	MaxDepth int
}

// DefaultLimits returns the standard limits.
func DefaultLimits() Limits {
	return Limits{
		MaxNodes:  DefaultMaxNodes,
		MaxDegree: DefaultMaxDegree,
		MaxDepth:  DefaultMaxDepth,
	}
}

// RelaxedLimits returns more permissive limits for very large inputs.
func RelaxedLimits() Limits {
	return Limits{
		MaxNodes:  RelaxedMaxNodes,
		MaxDegree: RelaxedMaxDegree,
		MaxDepth:  RelaxedMaxDepth,
	}
}

// StrictLimits returns conservative limits for untrusted input.
func StrictLimits() Limits {
	return Limits{
		MaxNodes:  StrictMaxNodes,
		MaxDegree: StrictMaxDegree,
		MaxDepth:  StrictMaxDepth,
	}
}

// Unlimited returns limits that accept any shape.
func Unlimited() Limits { return Limits{} }

// LimitError represents a limit validation failure.
type LimitError struct {
	Limit   string // Name of the limit that was exceeded
	Current int64  // Current value
	Maximum int64  // Maximum allowed value
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("limit exceeded: %s is %d (max %d)", e.Limit, e.Current, e.Maximum)
}

// CheckNodes validates a node count.
func (l Limits) CheckNodes(n int) error {
	if l.MaxNodes > 0 && n > l.MaxNodes {
		return &LimitError{Limit: "MaxNodes", Current: int64(n), Maximum: int64(l.MaxNodes)}
	}
	return nil
}

// CheckDegree validates a per-node child count.
func (l Limits) CheckDegree(n int) error {
	if l.MaxDegree > 0 && n > l.MaxDegree {
		return &LimitError{Limit: "MaxDegree", Current: int64(n), Maximum: int64(l.MaxDegree)}
	}
	return nil
}

// CheckDepth validates a depth.
func (l Limits) CheckDepth(n int) error {
	if l.MaxDepth > 0 && n > l.MaxDepth {
		return &LimitError{Limit: "MaxDepth", Current: int64(n), Maximum: int64(l.MaxDepth)}
	}
	return nil
}

// LimitViolation wraps a *LimitError into an *Error of kind ErrKindLimit.
// Other errors are returned unchanged.
func LimitViolation(err error) error {
	le, ok := err.(*LimitError)
	if !ok {
		return err
	}
	return &Error{Kind: ErrKindLimit, Msg: le.Error(), Err: le}
}
