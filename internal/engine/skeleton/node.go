package skeleton

import (
	"github.com/Faultbox/midgard-rig/pkg/formats"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// Node is one element of the scene hierarchy. A parent owns its children;
// the tree is built once at load and not modified afterwards.
type Node struct {
	Name     string
	Local    math.Mat4
	Children []*Node
}

// NewNode creates a childless node.
func NewNode(name string, local math.Mat4) *Node {
	return &Node{Name: name, Local: local}
}

// AddChild appends child and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Walk visits n and its descendants in pre-order with their depth below n.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Find returns the first node named name in pre-order, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of nodes in the subtree.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) { count++ })
	return count
}

// buildHierarchy copies a rig node tree, resolving each local transform once.
func buildHierarchy(rn *formats.RigNode) *Node {
	n := NewNode(rn.Name, rn.Transform.Mat4())
	for i := range rn.Children {
		n.AddChild(buildHierarchy(&rn.Children[i]))
	}
	return n
}
