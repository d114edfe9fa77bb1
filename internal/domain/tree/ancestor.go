package tree

import "github.com/okian/gestures/internal/domain/model"

// LowestCommonAncestor returns the deepest element that contains both a and
// b (an element contains itself). It returns nil when either is nil or the
// two share no ancestor, e.g. one was detached. The result reflects the tree
// shape at call time and is not cached.
func LowestCommonAncestor(a, b model.Element) model.Element {
	if a == nil || b == nil {
		return nil
	}
	if a == b {
		return a
	}

	da, db := depth(a), depth(b)
	for ; da > db; da-- {
		a = a.Parent()
	}
	for ; db > da; db-- {
		b = b.Parent()
	}

	for a != nil && b != nil {
		if a == b {
			return a
		}
		a, b = a.Parent(), b.Parent()
	}
	return nil
}

func depth(e model.Element) int {
	d := 0
	for p := e.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}
