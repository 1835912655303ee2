package trees

import (
	"fmt"

	"github.com/joshuapare/treekit/pkg/types"
)

// borrowFlag tracks outstanding borrows of one node: a positive value counts
// readers, -1 marks a single writer.
type borrowFlag int

const writing borrowFlag = -1

func (f *borrowFlag) acquire() {
	if *f == writing {
		panic(&types.Error{Kind: types.ErrKindBorrow, Msg: types.ErrAlreadyBorrowed.Msg, Err: fmt.Errorf("shared borrow while mutably borrowed")})
	}
	*f++
}

func (f *borrowFlag) acquireMut() {
	if *f != 0 {
		panic(&types.Error{Kind: types.ErrKindBorrow, Msg: types.ErrAlreadyBorrowed.Msg, Err: fmt.Errorf("mutable borrow while %d borrow(s) outstanding", *f)})
	}
	*f = writing
}

func (f *borrowFlag) release()    { *f-- }
func (f *borrowFlag) releaseMut() { *f = 0 }

// Ref is a shared borrow of a node's payload. Release must be called once
// the caller is done reading.
type Ref[T any] struct {
	value *T
	flag  *borrowFlag
}

// Get returns the borrowed payload.
func (r *Ref[T]) Get() T {
	if r.flag == nil {
		panic(types.ErrReleased)
	}
	return *r.value
}

// Release ends the borrow. Releasing twice panics.
func (r *Ref[T]) Release() {
	if r.flag == nil {
		panic(types.ErrReleased)
	}
	r.flag.release()
	r.flag = nil
	r.value = nil
}

// RefMut is an exclusive borrow of a node's payload.
type RefMut[T any] struct {
	value *T
	flag  *borrowFlag
}

// Get returns a pointer to the payload, valid until Release.
func (r *RefMut[T]) Get() *T {
	if r.flag == nil {
		panic(types.ErrReleased)
	}
	return r.value
}

// Set replaces the payload.
func (r *RefMut[T]) Set(v T) { *r.Get() = v }

// Release ends the borrow. Releasing twice panics.
func (r *RefMut[T]) Release() {
	if r.flag == nil {
		panic(types.ErrReleased)
	}
	r.flag.releaseMut()
	r.flag = nil
	r.value = nil
}
