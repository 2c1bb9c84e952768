package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benz9527/rbsteps/lib/infra"
)

type StepKind string

const (
	StepCreate      StepKind = "create"
	StepColorBlack  StepKind = "color-black"
	StepCompare     StepKind = "compare"
	StepDuplicate   StepKind = "duplicate"
	StepInsertLeft  StepKind = "insert-left"
	StepInsertRight StepKind = "insert-right"
	StepCase1       StepKind = "case1"
	StepCase2       StepKind = "case2"
	StepCase3       StepKind = "case3"
	StepRootBlack   StepKind = "root-black"

	StepSearch      StepKind = "search"
	StepSearchLeft  StepKind = "search-left"
	StepSearchRight StepKind = "search-right"
	StepFound       StepKind = "found"
	StepNotFound    StepKind = "not-found"

	StepDeleteStart    StepKind = "delete-start"
	StepDelete         StepKind = "delete"
	StepFixDeleteCase1 StepKind = "fix-delete-case1"
	StepFixDeleteCase2 StepKind = "fix-delete-case2"
	StepFixDeleteCase3 StepKind = "fix-delete-case3"
	StepFixDeleteCase4 StepKind = "fix-delete-case4"

	StepRotateLeft  StepKind = "rotate-left"
	StepRotateRight StepKind = "rotate-right"
)

func (kind StepKind) String() string {
	return string(kind)
}

// Step is one structurally meaningful moment of a request.
// Key is only meaningful if HasKey is true.
type Step[K infra.OrderedKey] struct {
	Kind     StepKind
	Key      K
	HasKey   bool
	Message  string
	Snapshot *Snapshot[K]
}

// Snapshot is a detached copy of the tree shape and colors. It never
// shares memory with the live nodes, so it may be kept and rendered
// after the tree has moved on.
type Snapshot[K infra.OrderedKey] struct {
	Key   K
	Color RBColor
	Left  *Snapshot[K]
	Right *Snapshot[K]
}

func snapshotOf[K infra.OrderedKey](node *rbNode[K]) *Snapshot[K] {
	if node == nil {
		return nil
	}
	return &Snapshot[K]{
		Key:   node.key,
		Color: node.color,
		Left:  snapshotOf(node.left),
		Right: snapshotOf(node.right),
	}
}

// Height is -1 for an empty snapshot.
func (s *Snapshot[K]) Height() int {
	if s == nil {
		return -1
	}
	return 1 + max(s.Left.Height(), s.Right.Height())
}

func (s *Snapshot[K]) Count() int {
	if s == nil {
		return 0
	}
	return 1 + s.Left.Count() + s.Right.Count()
}

// String renders the snapshot in pre-order as key+color(left,right).
// Leaves omit the parentheses and an absent child is written as "-".
//
//	50B(25R,75R)
//	10B(-,20R)
func (s *Snapshot[K]) String() string {
	if s == nil {
		return "nil"
	}
	builder := &strings.Builder{}
	s.writeTo(builder)
	return builder.String()
}

func (s *Snapshot[K]) writeTo(builder *strings.Builder) {
	if s == nil {
		builder.WriteString("-")
		return
	}
	builder.WriteString(formatKey(s.Key))
	if s.Color == Red {
		builder.WriteString("R")
	} else {
		builder.WriteString("B")
	}
	if s.Left == nil && s.Right == nil {
		return
	}
	builder.WriteString("(")
	s.Left.writeTo(builder)
	builder.WriteString(",")
	s.Right.writeTo(builder)
	builder.WriteString(")")
}

func formatKey[K infra.OrderedKey](key K) string {
	if k, ok := any(key).(string); ok {
		return strconv.Quote(k)
	}
	return fmt.Sprint(key)
}

// StepSink observes the requests issued to a tree. Begin and End
// bracket every Insert, Search and Delete, Record is called in order
// for each step in between.
type StepSink[K infra.OrderedKey] interface {
	Begin(op RBOp, key K)
	Record(step Step[K])
	End(op RBOp, key K, outcome Outcome)
}

var _ StepSink[int] = (*stepLog[int])(nil)

// stepLog keeps the steps of the latest request only.
type stepLog[K infra.OrderedKey] struct {
	steps []Step[K]
}

func (log *stepLog[K]) Begin(RBOp, K) {
	log.reset()
}

func (log *stepLog[K]) Record(step Step[K]) {
	log.steps = append(log.steps, step)
}

func (log *stepLog[K]) End(RBOp, K, Outcome) {}

func (log *stepLog[K]) reset() {
	clear(log.steps)
	log.steps = log.steps[:0]
}

func (log *stepLog[K]) list() []Step[K] {
	if len(log.steps) == 0 {
		return nil
	}
	res := make([]Step[K], len(log.steps))
	copy(res, log.steps)
	return res
}
