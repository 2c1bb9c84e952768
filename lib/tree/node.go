package tree

import (
	"github.com/benz9527/rbsteps/lib/infra"
)

var _ RBNode[int] = (*rbNode[int])(nil)

// rbNode owns its left and right subtrees. The parent pointer is only
// used to walk upward during fix-up.
type rbNode[K infra.OrderedKey] struct {
	parent *rbNode[K]
	left   *rbNode[K]
	right  *rbNode[K]
	key    K
	color  RBColor
}

func (node *rbNode[K]) Key() K {
	return node.key
}

func (node *rbNode[K]) Color() RBColor {
	if node == nil {
		return Black
	}
	return node.color
}

// The typed nil pointer must not leak into the interface.
func (node *rbNode[K]) view() RBNode[K] {
	if node == nil {
		return nil
	}
	return node
}

func (node *rbNode[K]) Left() RBNode[K] {
	if node == nil {
		return nil
	}
	return node.left.view()
}

func (node *rbNode[K]) Right() RBNode[K] {
	if node == nil {
		return nil
	}
	return node.right.view()
}

func (node *rbNode[K]) Parent() RBNode[K] {
	if node == nil {
		return nil
	}
	return node.parent.view()
}

func (node *rbNode[K]) Grandparent() RBNode[K] {
	return node.grandpa().view()
}

func (node *rbNode[K]) Uncle() RBNode[K] {
	return node.uncle().view()
}

func (node *rbNode[K]) Sibling() RBNode[K] {
	return node.sibling().view()
}

func (node *rbNode[K]) IsRed() bool {
	return node.isRed()
}

func (node *rbNode[K]) IsBlack() bool {
	return node.isBlack()
}

func (node *rbNode[K]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *rbNode[K]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *rbNode[K]) Direction() RBDirection {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K]) child(dir RBDirection) *rbNode[K] {
	switch dir {
	case Left:
		return node.left
	case Right:
		return node.right
	default:
	}
	// impossible run to here
	panic( /* debug assertion */ "[rbtree] child direction must be left or right")
}

func (node *rbNode[K]) setChild(dir RBDirection, child *rbNode[K]) {
	switch dir {
	case Left:
		node.left = child
	case Right:
		node.right = child
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] child direction must be left or right")
	}
	if child != nil {
		child.parent = node
	}
}

func (node *rbNode[K]) sibling() *rbNode[K] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent.child(node.Direction().opposite())
}

func (node *rbNode[K]) grandpa() *rbNode[K] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent.parent
}

// The uncle is the sibling of the parent.
func (node *rbNode[K]) uncle() *rbNode[K] {
	if node.grandpa() == nil {
		return nil
	}
	return node.parent.sibling()
}

func (node *rbNode[K]) minimum() *rbNode[K] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K]) maximum() *rbNode[K] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}
