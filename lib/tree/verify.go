package tree

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/benz9527/rbsteps/lib/infra"
)

// VerifyResult lists the broken rules in the order they were found.
type VerifyResult struct {
	Valid      bool
	Violations []string
}

// Err is nil for a valid tree, otherwise one error per violation
// combined into an infra.ErrorStack.
func (res VerifyResult) Err() error {
	if res.Valid || len(res.Violations) == 0 {
		return nil
	}
	return infra.WrapErrorStack(lo.Map(res.Violations, func(v string, _ int) error {
		return errors.New(v)
	})...)
}

// Verify re-derives p2, p4 and p5 from the live nodes. It never
// mutates the tree and is not called by Insert or Delete.
func (tree *rbTree[K]) Verify() VerifyResult {
	violations := make([]string, 0, 4)
	if /* p2 */ tree.root.isRed() {
		violations = append(violations, "root is red, it must be black")
	}

	expected := -1
	var walk func(node, parent *rbNode[K], blacks int)
	walk = func(node, parent *rbNode[K], blacks int) {
		if node == nil {
			if expected < 0 {
				expected = blacks
			} else if /* p5 */ blacks != expected {
				violations = append(violations, fmt.Sprintf(
					"path ending below node %v has %d black nodes, expected %d",
					parent.key, blacks, expected,
				))
			}
			return
		}

		if node.isRed() {
			if /* p4 */ node.left.isRed() || node.right.isRed() {
				violations = append(violations, fmt.Sprintf("red node %v has a red child", node.key))
			}
		} else {
			blacks++
		}
		walk(node.left, node, blacks)
		walk(node.right, node, blacks)
	}
	walk(tree.root, nil, 0)

	return VerifyResult{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}

// rbtree rule validation utilities working on the public node views.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func isRedView[K infra.OrderedKey](node RBNode[K]) bool {
	return node != nil && node.IsRed()
}

func isBlackView[K infra.OrderedKey](node RBNode[K]) bool {
	return node == nil || node.IsBlack()
}

// Inorder traversal to validate the rbtree red rule.
func RedViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	aux := tree.Root()
	if aux == nil {
		return nil
	}
	if aux.IsRed() {
		return infra.NewErrorStack("rbtree red root violation")
	}

	stack := make([]RBNode[K], 0, tree.Len()>>1+1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; isRedView(aux) {
			if isRedView(aux.Left()) || isRedView(aux.Right()) {
				return infra.NewErrorStack(fmt.Sprintf("rbtree red violation at %v", aux.Key()))
			}
		}

		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes with at least one nil child.
func bfsLeaves[K infra.OrderedKey](tree RBTree[K]) []RBNode[K] {
	aux := tree.Root()
	if aux == nil {
		return nil
	}

	leaves := make([]RBNode[K], 0, tree.Len()>>1+1)
	queue := make([]RBNode[K], 0, tree.Len()>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

func blackDepth[K infra.OrderedKey](node RBNode[K]) int {
	depth := 0
	for aux := node; aux != nil; aux = aux.Parent() {
		if isBlackView(aux) {
			depth++
		}
	}
	return depth
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	leaves := bfsLeaves(tree)
	if leaves == nil {
		return nil
	}

	depth := blackDepth(leaves[0])
	for i := 1; i < len(leaves); i++ {
		if d := blackDepth(leaves[i]); d != depth {
			return infra.NewErrorStack(fmt.Sprintf(
				"rbtree black violation at %v, black depth %d != %d",
				leaves[i].Key(), d, depth,
			))
		}
	}
	return nil
}

// LinkViolationValidate checks that every child points back to its
// parent and that the root has no parent.
func LinkViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.Parent() != nil {
		return infra.NewErrorStack("rbtree root has a parent")
	}

	stack := []RBNode[K]{root}
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range []RBNode[K]{aux.Left(), aux.Right()} {
			if child == nil {
				continue
			}
			if child.Parent() != aux {
				return infra.NewErrorStack(fmt.Sprintf(
					"rbtree link violation, node %v does not point back to %v",
					child.Key(), aux.Key(),
				))
			}
			stack = append(stack, child)
		}
	}
	return nil
}
