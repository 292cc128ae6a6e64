// Package native implements lexing of indentation structured device
// configuration text into a generic ordered tree.
//
// The tree is schema agnostic: each node records the trailing text of
// its line (if any), whether the line was a bare standalone flag, and
// an ordered mapping of child token to child node. Sibling nodes with
// a colliding token replace one another in place, later occurrence
// winning; this is lossy and deliberate, matching the observed
// behavior of upstream indented-config parsers.
package native

// Node is one parsed line or scope of native configuration.
//
// A Node is immutable once Parse returns; the mapping phase only reads
// it.
type Node struct {
	// Text is the trailing text after the line's first token, e.g.
	// an interface description. Empty when the line was a bare
	// keyword or a block opener.
	Text string
	// Standalone is true when the line was a bare flag: a single
	// keyword with no trailing text and no nested children.
	Standalone bool

	names []string
	index map[string]*Node
}

// Child returns the child node for the given token, or nil.
func (n *Node) Child(name string) *Node {
	return n.index[name]
}

// Names returns the child tokens in document order.
func (n *Node) Names() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}

// Len returns the number of children.
func (n *Node) Len() int { return len(n.names) }

// put inserts or replaces the child for name. A replaced child keeps
// the original document position of the name it collided with.
func (n *Node) put(name string, c *Node) {
	if n.index == nil {
		n.index = map[string]*Node{}
	}
	if _, ok := n.index[name]; !ok {
		n.names = append(n.names, name)
	}
	n.index[name] = c
}

// ensure returns the child for name, creating an empty scope node
// if none exists.
func (n *Node) ensure(name string) *Node {
	if c := n.index[name]; c != nil {
		return c
	}
	c := &Node{}
	n.put(name, c)
	return c
}
