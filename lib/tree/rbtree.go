package tree

import (
	"fmt"
	"strings"

	"github.com/benz9527/rbsteps/lib/infra"
)

type rbTree[K infra.OrderedKey] struct {
	root       *rbNode[K]
	count      int64
	log        *stepLog[K]
	sinks      []StepSink[K]
	noSnapshot bool
}

func (tree *rbTree[K]) keyCompare(k1, k2 K) int64 {
	return infra.CompareOrderedKey(k1, k2)
}

func (tree *rbTree[K]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K]) Root() RBNode[K] {
	return tree.root.view()
}

func (tree *rbTree[K]) IsEmpty() bool {
	return tree.root == nil
}

func (tree *rbTree[K]) Steps() []Step[K] {
	if tree.log == nil {
		return nil
	}
	return tree.log.list()
}

func (tree *rbTree[K]) recording() bool {
	return tree.log != nil || len(tree.sinks) > 0
}

func (tree *rbTree[K]) begin(op RBOp, key K) {
	if tree.log != nil {
		tree.log.Begin(op, key)
	}
	for _, sink := range tree.sinks {
		sink.Begin(op, key)
	}
}

func (tree *rbTree[K]) end(op RBOp, key K, outcome Outcome) Outcome {
	if tree.log != nil {
		tree.log.End(op, key, outcome)
	}
	for _, sink := range tree.sinks {
		sink.End(op, key, outcome)
	}
	return outcome
}

// emit records a step about node, which may be nil. The snapshot is
// taken after the change the step describes has been applied, except
// for the fix-up case steps which announce the change to come.
func (tree *rbTree[K]) emit(kind StepKind, node *rbNode[K], format string, args ...any) {
	if !tree.recording() {
		return
	}
	step := Step[K]{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	if node != nil {
		step.Key, step.HasKey = node.key, true
	}
	if !tree.noSnapshot {
		step.Snapshot = snapshotOf(tree.root)
	}
	if tree.log != nil {
		tree.log.Record(step)
	}
	for _, sink := range tree.sinks {
		sink.Record(step)
	}
}

func dirName(dir RBDirection) string {
	return strings.ToLower(dir.String())
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. The root is black.
// p3. All NIL nodes are considered black.
// p4. A red node does not have a red child. (red-violation)
// p5. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p5.
// The longest path nodes' number is at most 2 * shortest path nodes' number.

/*
rotate(X, Left) is the left rotation, rotate(X, Right) the mirrored one.

		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc

			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (tree *rbTree[K]) rotate(x *rbNode[K], dir RBDirection) {
	if x == nil || x.child(dir.opposite()) == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] rotate node x is nil or the child to lift is nil")
	}

	p, y := x.parent, x.child(dir.opposite())
	xDir := x.Direction()
	x.setChild(dir.opposite(), y.child(dir))
	y.setChild(dir, x)
	y.parent = p

	switch xDir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to rotate")
	}

	if dir == Left {
		tree.emit(StepRotateLeft, x, "Rotating left at node %v", x.key)
	} else {
		tree.emit(StepRotateRight, x, "Rotating right at node %v", x.key)
	}
}

// i1: Empty rbtree, insert directly, but root node is painted to black.
// i2: Equal key found on the way down, nothing changes.
func (tree *rbTree[K]) Insert(key K) Outcome {
	tree.begin(OpInsert, key)

	if /* i1 */ tree.root == nil {
		z := &rbNode[K]{key: key, color: Red}
		tree.emit(StepCreate, z, "Creating node %v (red)", key)
		tree.root = z
		z.color = Black
		tree.count++
		tree.emit(StepColorBlack, z, "Node %v is the root, painting it black", key)
		return tree.end(OpInsert, key, Created)
	}

	var x, y *rbNode[K] = tree.root, nil
	for x != nil {
		y = x
		tree.emit(StepCompare, x, "Comparing %v with %v", key, x.key)
		res := tree.keyCompare(key, x.key)
		if /* i2 */ res == 0 {
			tree.emit(StepDuplicate, x, "Key %v already exists", key)
			return tree.end(OpInsert, key, Duplicate)
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	z := &rbNode[K]{key: key, color: Red}
	tree.emit(StepCreate, z, "Creating node %v (red)", key)
	if tree.keyCompare(key, y.key) < 0 {
		y.setChild(Left, z)
		tree.emit(StepInsertLeft, z, "Inserting %v to the left of %v", key, y.key)
	} else {
		y.setChild(Right, z)
		tree.emit(StepInsertRight, z, "Inserting %v to the right of %v", key, y.key)
	}
	tree.count++

	tree.insertRebalance(z)
	return tree.end(OpInsert, key, Created)
}

/*
New node X is red by default. The loop runs while X's parent P is red,
so P is not the root and the grandpa G exists and is black. The cases
are written for P being the left child of G, the mirrored ones swap
left and right.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1 (case1): Both the parent P and the uncle U are red.
Repaint P and U into black and G into red, then recursive to fix G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im2 (case2): The uncle U is black and X is the inner child of P.
Rotate P toward X's opposite direction, X takes P's place and P
becomes the outer child. Enter im3 with P as the current node.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im3 (case3): The uncle U is black and X is the outer child of P.
Repaint P into black and G into red, then rotate G.

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]
*/
func (tree *rbTree[K]) insertRebalance(x *rbNode[K]) {
	for x != tree.root && x.parent.isRed() {
		p, gp := x.parent, x.grandpa()
		if gp == nil {
			// A red root only lives until the loop ends.
			break
		}

		side := p.Direction()
		if /* im1 */ uncle := gp.child(side.opposite()); uncle.isRed() {
			tree.emit(StepCase1, x, "Case 1: uncle %v is red, recoloring", uncle.key)
			p.color = Black
			uncle.color = Black
			gp.color = Red
			x = gp
			continue
		}

		if /* im2 */ x == p.child(side.opposite()) {
			tree.emit(StepCase2, x,
				"Case 2: node %v is the %s child, rotating %s",
				x.key, dirName(side.opposite()), dirName(side),
			)
			x = p
			tree.rotate(x, side)
			p = x.parent
		}

		/* im3 */
		tree.emit(StepCase3, x,
			"Case 3: recoloring and rotating %s at %v",
			dirName(side.opposite()), gp.key,
		)
		p.color = Black
		gp.color = Red
		tree.rotate(gp, side.opposite())
		break
	}

	if tree.root.isRed() {
		tree.root.color = Black
		tree.emit(StepRootBlack, tree.root, "Painting the root %v black", tree.root.key)
	}
}

func (tree *rbTree[K]) Search(key K) (RBNode[K], Outcome) {
	tree.begin(OpSearch, key)

	for aux := tree.root; aux != nil; {
		tree.emit(StepSearch, aux, "Visiting node %v", aux.key)
		res := tree.keyCompare(key, aux.key)
		if res == 0 {
			tree.emit(StepFound, aux, "Key %v found", key)
			return aux, tree.end(OpSearch, key, Found)
		} else if res < 0 {
			tree.emit(StepSearchLeft, aux, "%v < %v, going left", key, aux.key)
			aux = aux.left
		} else {
			tree.emit(StepSearchRight, aux, "%v > %v, going right", key, aux.key)
			aux = aux.right
		}
	}

	tree.emit(StepNotFound, nil, "Key %v not found", key)
	return nil, tree.end(OpSearch, key, NotFound)
}

// lookup is the plain descent without any step.
func (tree *rbTree[K]) lookup(key K) *rbNode[K] {
	for aux := tree.root; aux != nil; {
		res := tree.keyCompare(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *rbTree[K]) Delete(key K) Outcome {
	tree.begin(OpDelete, key)

	z := tree.lookup(key)
	if z == nil {
		tree.emit(StepNotFound, nil, "Key %v not found for removal", key)
		return tree.end(OpDelete, key, NotFound)
	}

	tree.emit(StepDeleteStart, z, "Starting removal of node %v", key)
	tree.removeNode(z)
	tree.count--
	return tree.end(OpDelete, key, Removed)
}

// transplant puts v in u's place, u's own links are left untouched.
func (tree *rbTree[K]) transplant(u, v *rbNode[K]) {
	switch u.Direction() {
	case Root:
		tree.root = v
	case Left:
		u.parent.left = v
	case Right:
		u.parent.right = v
	default:
	}
	if v != nil {
		v.parent = u.parent
	}
}

/*
r1: Z has at most one child C (maybe NIL), C takes Z's place.
The removed color is Z's color.

r2: Z has left and right children. Its successor Y is the minimum of
the right subtree and has no left child. Y leaves its place to its
right child, then Y is relinked into Z's place with Z's children and
Z's color. The removed color is Y's original color.

	  |                    |
	  Z                    Y
	 / \                  / \
	L  ..   relink(Z, Y) L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  Y  ..                X  ..
	   \
	    X

X is the node that moved into the vacated place (maybe NIL) and
XP its parent. A removed black breaks p5 along X's paths, the fix-up
treats X as carrying one extra black.
*/
func (tree *rbTree[K]) removeNode(z *rbNode[K]) {
	var x, xParent *rbNode[K]
	y, removedColor := z, z.color

	if /* r1 */ z.left == nil {
		x, xParent = z.right, z.parent
		tree.transplant(z, z.right)
	} else if /* r1 */ z.right == nil {
		x, xParent = z.left, z.parent
		tree.transplant(z, z.left)
	} else /* r2 */ {
		y = z.right.minimum()
		removedColor = y.color
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			tree.transplant(y, y.right)
			y.setChild(Right, z.right)
		}
		tree.transplant(z, y)
		y.setChild(Left, z.left)
		y.color = z.color
	}

	// Unlink node
	z.parent, z.left, z.right = nil, nil, nil
	tree.emit(StepDelete, z, "Node %v removed", z.key)

	if removedColor == Black {
		tree.removeRebalance(x, xParent)
	}
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

X carries an extra black, S is its sibling, Sc is the S's child on
X's side and Sd the one on the opposite side. Written for X being the
left child of P, the mirrored cases swap left and right.

rm1 (fix-delete-case1): S is red, so P, Sc and Sd must be black.
Repaint S into black and P into red, rotate P toward X.
X gets a black sibling (the former Sc), enter rm2 to rm4.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2 (fix-delete-case2): S, Sc and Sd are black.
Repaint S into red, the extra black moves up to P.
If P was red the loop ends and P is painted black.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3 (fix-delete-case3): S is black, Sc is red and Sd is black.
Repaint Sc into black and S into red, rotate S away from X.
Enter rm4 to fix.

	                        {P}
	  {P}                   / \
	  / \    r-rotate(S)  [X] [Sc]
	[X] [S]  ==========>        \
	    / \                     <S>
	  <Sc> [Sd]                   \
	                              [Sd]

rm4 (fix-delete-case4): S is black and Sd is red.
S takes P's color, P and Sd are painted black, rotate P toward X.
The extra black is absorbed, the loop ends.

	  {P}                   {S}
	  / \    l-rotate(P)    / \
	[X] [S]  ==========>  [P] [Sd]
	    / \               / \
	 {Sc} <Sd>          [X] {Sc}
*/
func (tree *rbTree[K]) removeRebalance(x, xParent *rbNode[K]) {
	for x != tree.root && x.isBlack() && xParent != nil {
		side := Left
		if x != xParent.left {
			side = Right
		}
		far := side.opposite()

		sibling := xParent.child(far)
		if /* rm1 */ sibling.isRed() {
			tree.emit(StepFixDeleteCase1, sibling, "Case 1: sibling %v is red", sibling.key)
			sibling.color = Black
			xParent.color = Red
			tree.rotate(xParent, side)
			sibling = xParent.child(far)
		}

		if /* rm2 */ sibling == nil || (sibling.child(side).isBlack() && sibling.child(far).isBlack()) {
			tree.emit(StepFixDeleteCase2, sibling, "Case 2: sibling is black with black children")
			if sibling != nil {
				sibling.color = Red
			}
			x, xParent = xParent, xParent.parent
			continue
		}

		if /* rm3 */ sibling.child(far).isBlack() {
			tree.emit(StepFixDeleteCase3, sibling,
				"Case 3: sibling %v is black, its %s child is red",
				sibling.key, dirName(side),
			)
			sibling.child(side).color = Black
			sibling.color = Red
			tree.rotate(sibling, far)
			sibling = xParent.child(far)
		}

		/* rm4 */
		tree.emit(StepFixDeleteCase4, sibling,
			"Case 4: sibling %v is black, its %s child is red",
			sibling.key, dirName(far),
		)
		sibling.color = xParent.color
		sibling.child(far).color = Black
		xParent.color = Black
		tree.rotate(xParent, side)
		x = tree.root
		break
	}

	if x != nil {
		x.color = Black
	}
}

func (tree *rbTree[K]) Min() (RBNode[K], bool) {
	if tree.root == nil {
		return nil, false
	}
	return tree.root.minimum(), true
}

func (tree *rbTree[K]) Max() (RBNode[K], bool) {
	if tree.root == nil {
		return nil, false
	}
	return tree.root.maximum(), true
}

// Clear drops every node and the step log.
func (tree *rbTree[K]) Clear() {
	tree.root = nil
	tree.count = 0
	if tree.log != nil {
		tree.log.reset()
	}
}

type RBTreeOpt[K infra.OrderedKey] func(*rbTree[K])

// WithRBTreeStepSink adds observers receiving every request and step.
func WithRBTreeStepSink[K infra.OrderedKey](sinks ...StepSink[K]) RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		for _, sink := range sinks {
			if sink != nil {
				tree.sinks = append(tree.sinks, sink)
			}
		}
	}
}

// WithRBTreeStepLogDisabled stops keeping the step log, Steps returns nil.
func WithRBTreeStepLogDisabled[K infra.OrderedKey]() RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.log = nil
	}
}

// WithRBTreeSnapshotDisabled records steps without the tree snapshot.
// Every snapshot copies the whole tree, bulk loads should not pay it.
func WithRBTreeSnapshotDisabled[K infra.OrderedKey]() RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.noSnapshot = true
	}
}

func NewRBTree[K infra.OrderedKey](opts ...RBTreeOpt[K]) RBTree[K] {
	tree := &rbTree[K]{
		log: &stepLog[K]{},
	}
	for _, o := range opts {
		o(tree)
	}
	return tree
}
