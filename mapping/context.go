// Package mapping implements the schema shaped composition model and
// the recursive engine walking it against a native configuration tree.
//
// A composition Node describes how one schema subtree is populated:
// containers nest named children, lists carry an element extraction
// strategy producing (key, scope) pairs, leaves carry an extraction
// function producing a typed scalar. The Map function walks a
// composition against a Context, producing an ordered document
// fragment.
package mapping

import (
	"github.com/andaru/yangmap/native"
)

// Context is the mutable per-run state threaded through a mapping
// walk. It pairs the immutable native tree root with the scope
// currently in effect, and records the key most recently resolved at
// each schema list path.
//
// A Context belongs to exactly one Process call; composition nodes
// never hold one.
type Context struct {
	// Root is the native tree root, visible to extraction
	// strategies that must consult sibling scoped state from
	// outside the current subscope.
	Root *native.Node
	// Current is the native scope in effect at this point of the
	// recursion.
	Current *native.Node

	keys map[string]string
}

// NewContext returns a Context for a mapping walk over root, with the
// current scope initially at the root.
func NewContext(root *native.Node) *Context {
	return &Context{Root: root, Current: root, keys: map[string]string{}}
}

// Key returns the key most recently resolved for the given schema
// list path.
//
// The registry holds a single live value per path, not a stack:
// nested recursion into the same schema path overwrites the value, so
// callers must read a parent key immediately after it resolves,
// before descending further.
func (c *Context) Key(path string) (string, bool) {
	key, ok := c.keys[path]
	return key, ok
}

// SetKey records the key resolved for a schema list path, replacing
// any previous value at that path.
func (c *Context) SetKey(path, key string) {
	c.keys[path] = key
}
