package types

import "errors"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindStream  ErrKind = iota // malformed visit or shape stream handed to a builder
	ErrKindLimit                  // input exceeded a configured Limits bound
	ErrKindCorrupt                // size bookkeeping or link structure is inconsistent
	ErrKindBorrow                 // incompatible dynamic borrow on a shared handle
	ErrKindState                  // invalid operation for current state (released handle, no parent)
)

// String returns a short lowercase label for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindStream:
		return "stream"
	case ErrKindLimit:
		return "limit"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindBorrow:
		return "borrow"
	case ErrKindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind with the same
// message, so wrapped sentinels match with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Sentinels commonly returned (or panicked) by implementations.
var (
	// ErrEmptyStream indicates a tree stream carried no root visit.
	ErrEmptyStream = &Error{Kind: ErrKindStream, Msg: "visit stream has no root"}
	// ErrStreamOverflow indicates more visits than the declared node count.
	ErrStreamOverflow = &Error{Kind: ErrKindStream, Msg: "visit stream exceeds declared node count"}
	// ErrStreamUnderflow indicates the stream ended before every declared child arrived.
	ErrStreamUnderflow = &Error{Kind: ErrKindStream, Msg: "visit stream ended early"}
	// ErrOrphanVisit indicates a visit arrived while no node owed children.
	ErrOrphanVisit = &Error{Kind: ErrKindStream, Msg: "visit has no parent owing children"}
	// ErrSizeMismatch indicates a claimed descendant count disagrees with the stream.
	ErrSizeMismatch = &Error{Kind: ErrKindStream, Msg: "claimed size disagrees with stream shape"}
	// ErrUnbalancedShape indicates Frame markers that do not match Branch markers.
	ErrUnbalancedShape = &Error{Kind: ErrKindStream, Msg: "unbalanced branch/frame markers"}
	// ErrCorrupt indicates non-recoverable structural inconsistency.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt tree structure"}
	// ErrAlreadyBorrowed indicates an incompatible borrow is outstanding.
	ErrAlreadyBorrowed = &Error{Kind: ErrKindBorrow, Msg: "node data already borrowed"}
	// ErrReleased indicates use of a dropped tree, forest, or handle.
	ErrReleased = &Error{Kind: ErrKindState, Msg: "use of released handle"}
	// ErrNoParent indicates a sibling operation on a parentless node.
	ErrNoParent = &Error{Kind: ErrKindState, Msg: "node has no parent"}
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}
