// Package tree models the UI element tree gestures are delivered into and
// resolves dispatch targets across it.
package tree

import (
	"strings"
	"sync"

	"github.com/okian/gestures/internal/domain/model"
)

// PathSeparator separates element names in a path.
const PathSeparator = "/"

// Node is one element of the tree. Parent links are only changed by
// AppendChild and Detach, which callers serialize with pointer routing.
type Node struct {
	id        string
	parent    *Node
	children  []*Node
	textInput bool
	refs      int
}

// NewNode returns a detached node.
func NewNode(id string) *Node {
	return &Node{id: id}
}

// ID returns the node identifier (its full path when created by a Document).
func (n *Node) ID() string { return n.id }

// Parent returns the parent element, or nil for roots and detached nodes.
func (n *Node) Parent() model.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AcceptsText reports whether the node is a text-input control.
func (n *Node) AcceptsText() bool { return n.textInput }

// SetTextInput marks the node as a text-input control.
func (n *Node) SetTextInput(v bool) { n.textInput = v }

// AppendChild attaches c under n, detaching it from any previous parent.
func (n *Node) AppendChild(c *Node) {
	if c.parent != nil {
		c.Detach()
	}
	c.parent = n
	n.children = append(n.children, c)
}

// Detach removes n from its parent. A detached subtree shares no ancestor
// with the rest of the tree.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Document owns a root node and resolves slash-separated paths to nodes,
// creating missing nodes on demand.
//
// Nodes handed out by Acquire are reference counted. Release prunes a node
// once nothing holds it, it has no children and it is not a text input, then
// walks up pruning ancestors left empty. Nodes created by Resolve alone are
// kept until something prunes or removes them.
type Document struct {
	mu    sync.Mutex
	root  *Node
	index map[string]*Node
}

// NewDocument returns a document holding only its root, whose path is "".
func NewDocument() *Document {
	root := NewNode("")
	return &Document{
		root:  root,
		index: map[string]*Node{"": root},
	}
}

// Root returns the root node.
func (d *Document) Root() *Node { return d.root }

// Resolve returns the node at path, creating every missing segment.
func (d *Document) Resolve(path string) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolveLocked(normalize(path))
}

func (d *Document) resolveLocked(path string) *Node {
	if n, ok := d.index[path]; ok {
		return n
	}

	cur := d.root
	var prefix string
	for _, seg := range strings.Split(path, PathSeparator) {
		if prefix == "" {
			prefix = seg
		} else {
			prefix += PathSeparator + seg
		}
		next, ok := d.index[prefix]
		if !ok {
			next = NewNode(prefix)
			cur.AppendChild(next)
			d.index[prefix] = next
		}
		cur = next
	}
	return cur
}

// Acquire resolves path and takes a reference on the node.
func (d *Document) Acquire(path string) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.resolveLocked(normalize(path))
	n.refs++
	return n
}

// Retain takes another reference on n.
func (d *Document) Retain(n *Node) {
	d.mu.Lock()
	n.refs++
	d.mu.Unlock()
}

// Release drops a reference on n and prunes what is left unused. Releasing
// a removed node only drops the count.
func (d *Document) Release(n *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n.refs > 0 {
		n.refs--
	}
	for cur := n; cur != nil && cur != d.root; {
		if cur.refs > 0 || len(cur.children) > 0 || cur.textInput || d.index[cur.id] != cur {
			return
		}
		parent := cur.parent
		cur.Detach()
		delete(d.index, cur.id)
		cur = parent
	}
}

// Lookup returns the node at path without creating it.
func (d *Document) Lookup(path string) (*Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.index[normalize(path)]
	return n, ok
}

// MarkTextInput resolves path and flags it as a text-input control.
func (d *Document) MarkTextInput(path string) *Node {
	n := d.Resolve(path)
	d.mu.Lock()
	n.SetTextInput(true)
	d.mu.Unlock()
	return n
}

// Remove detaches the node at path and forgets it and its descendants.
func (d *Document) Remove(path string) bool {
	path = normalize(path)
	if path == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	n, ok := d.index[path]
	if !ok {
		return false
	}
	n.Detach()
	for p := range d.index {
		if p == path || strings.HasPrefix(p, path+PathSeparator) {
			delete(d.index, p)
		}
	}
	return true
}

// Len returns the number of indexed nodes, root included.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.index)
}

func normalize(path string) string {
	parts := strings.Split(strings.TrimSpace(path), PathSeparator)
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, PathSeparator)
}
