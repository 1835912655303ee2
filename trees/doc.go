// Package trees implements n-ary trees and forests with two storage
// strategies, incremental size bookkeeping, breadth-first linearization and
// reconstruction, a depth-first Walk cursor, and reference-counted shared
// handles.
//
// # Storage
//
// Nodes built one at a time ([New], [NewForest], pushes of single-node trees)
// are "scattered": each node lives in its own heap cell. Structures built in one
// call ([BuildTree], [BuildForest], [DecodeTree], [DecodeForest], deep clones)
// are "piled": every node of the structure sits in one arena sized exactly to
// the node count. Both strategies share one counting contract, so scattered and
// piled subtrees can be grafted onto each other freely.
//
// # Ownership
//
// A [Tree] or [Forest] exclusively owns its nodes. Passing a tree or forest to a
// mutator (PushBack, Append, InsertNextSib, ...) consumes it: the argument is
// emptied and must not be used again. Call Drop to release a structure; release
// is iterative and never recurses, regardless of depth.
//
// [RcNode] and [WeakNode] give shared access to a node. The parent of a node
// counts as one strong reference, so a handle obtained with [Node.Rc] keeps its
// subtree alive after the node is popped and its tree is dropped. Payload access
// through a handle is checked at run time; aliasing violations panic with a
// *types.Error of kind types.ErrKindBorrow.
//
// # Concurrency
//
// Counts and borrow flags are plain integers. A structure, and every handle
// into it, must be used from one goroutine at a time. Callers that share a
// structure across goroutines must serialize access themselves.
//
// # Traversal
//
// [Splitted] linearizes any sized sibling iterator into level-order [Visit]
// values; [DecodeTree] and [DecodeForest] rebuild piled storage from them in a
// single pass. [TreeWalk] and [ForestWalk] are explicit-stack depth-first
// cursors reporting Begin/End/Leaf events.
package trees
