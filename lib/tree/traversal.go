package tree

import (
	"github.com/samber/lo"

	"github.com/benz9527/rbsteps/lib/infra"
)

// Keys projects the traversal pairs onto their keys.
func Keys[K infra.OrderedKey](pairs []KeyColor[K]) []K {
	return lo.Map(pairs, func(pair KeyColor[K], _ int) K {
		return pair.Key
	})
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K]) Foreach(action func(idx int64, color RBColor, key K) bool) {
	aux := tree.root
	if aux == nil {
		return
	}

	stack := make([]*rbNode[K], 0, tree.Height()+1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func (tree *rbTree[K]) InOrder() []KeyColor[K] {
	res := make([]KeyColor[K], 0, tree.count)
	tree.Foreach(func(_ int64, color RBColor, key K) bool {
		res = append(res, KeyColor[K]{Key: key, Color: color})
		return true
	})
	return res
}

func (tree *rbTree[K]) PreOrder() []KeyColor[K] {
	return preOrder(tree.root, make([]KeyColor[K], 0, tree.count))
}

func preOrder[K infra.OrderedKey](node *rbNode[K], res []KeyColor[K]) []KeyColor[K] {
	if node == nil {
		return res
	}
	res = append(res, KeyColor[K]{Key: node.key, Color: node.color})
	res = preOrder(node.left, res)
	return preOrder(node.right, res)
}

func (tree *rbTree[K]) PostOrder() []KeyColor[K] {
	return postOrder(tree.root, make([]KeyColor[K], 0, tree.count))
}

func postOrder[K infra.OrderedKey](node *rbNode[K], res []KeyColor[K]) []KeyColor[K] {
	if node == nil {
		return res
	}
	res = postOrder(node.left, res)
	res = postOrder(node.right, res)
	return append(res, KeyColor[K]{Key: node.key, Color: node.color})
}

// Height is -1 for an empty tree and 0 for a single root.
func (tree *rbTree[K]) Height() int {
	return height(tree.root)
}

func height[K infra.OrderedKey](node *rbNode[K]) int {
	if node == nil {
		return -1
	}
	return 1 + max(height(node.left), height(node.right))
}

// Count walks the whole tree, Len is the cached counter.
func (tree *rbTree[K]) Count() int64 {
	return count(tree.root)
}

func count[K infra.OrderedKey](node *rbNode[K]) int64 {
	if node == nil {
		return 0
	}
	return 1 + count(node.left) + count(node.right)
}

// BlackHeight counts the black nodes on the leftmost path, root included.
// On a valid tree every path gives the same number.
func (tree *rbTree[K]) BlackHeight() int {
	bh := 0
	for aux := tree.root; aux != nil; aux = aux.left {
		if aux.isBlack() {
			bh++
		}
	}
	return bh
}
