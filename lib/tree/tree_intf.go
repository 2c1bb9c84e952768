package tree

import "github.com/benz9527/rbsteps/lib/infra"

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

func (dir RBDirection) opposite() RBDirection {
	return -dir
}

//go:generate stringer -type=RBOp -linecomment
type RBOp uint8

const (
	OpInsert RBOp = iota // insert
	OpSearch             // search
	OpDelete             // delete
)

// Outcome reports how a request ended. None of them is an error,
// a duplicate insert or a missing key leaves the tree unchanged.
//
//go:generate stringer -type=Outcome -linecomment
type Outcome uint8

const (
	Created   Outcome = iota // created
	Duplicate                // duplicate
	Found                    // found
	NotFound                 // not-found
	Removed                  // removed
)

// RBNode is a read-only view of a tree vertex. Every relational query
// returns nil when the relative does not exist, and a nil node is
// treated as black.
type RBNode[K infra.OrderedKey] interface {
	Key() K
	Color() RBColor
	Left() RBNode[K]
	Right() RBNode[K]
	Parent() RBNode[K]
	Grandparent() RBNode[K]
	Uncle() RBNode[K]
	Sibling() RBNode[K]
	IsRed() bool
	IsBlack() bool
}

type KeyColor[K infra.OrderedKey] struct {
	Key   K
	Color RBColor
}

type RBTree[K infra.OrderedKey] interface {
	Len() int64
	Count() int64
	Height() int
	BlackHeight() int
	IsEmpty() bool
	Root() RBNode[K]
	Min() (RBNode[K], bool)
	Max() (RBNode[K], bool)

	Insert(key K) Outcome
	Search(key K) (RBNode[K], Outcome)
	Delete(key K) Outcome
	// Steps returns the step log of the latest Insert, Search or Delete.
	Steps() []Step[K]

	InOrder() []KeyColor[K]
	PreOrder() []KeyColor[K]
	PostOrder() []KeyColor[K]
	Foreach(action func(idx int64, color RBColor, key K) bool)

	Verify() VerifyResult
	Clear()
}
