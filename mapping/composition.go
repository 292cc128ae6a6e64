package mapping

import (
	"github.com/andaru/yangmap/native"
	"github.com/andaru/yangmap/yang"
)

// Element is one schema list instance discovered in the native tree:
// the element's key and the native subscope holding its data.
type Element struct {
	Key   string
	Scope *native.Node
}

// ElementsFunc is a list element extraction strategy. It is invoked
// once per list per mapping walk and returns the elements in native
// document order, filtered by the strategy's own predicate. The
// strategy may read the registry (for ancestor keys) and ctx.Root
// (for sibling scoped state).
type ElementsFunc func(ctx *Context) ([]Element, error)

// LeafFunc extracts one typed scalar from the current scope. It
// returns maperr.ErrAbsent when the leaf is legitimately missing, or
// any other error for a hard failure which aborts the surrounding
// Process call.
type LeafFunc func(ctx *Context) (interface{}, error)

// ScopeFunc is a before-descent hook reshaping or redirecting the
// current native scope. It runs exactly once before a node's children
// are processed; the previous scope is restored when the subtree
// completes.
type ScopeFunc func(ctx *Context) *native.Node

// RootScope is a ScopeFunc re-pointing the current scope at the
// native tree root.
func RootScope(ctx *Context) *native.Node { return ctx.Root }

// Node is one node of a composition model: the static, schema shaped
// description of how a schema subtree maps onto native data. A
// composition is built once and reused across every document a parser
// processes; it carries no per-run state and is safe for concurrent
// walks.
type Node struct {
	Name string
	Kind yang.Kind

	scope ScopeFunc

	// containers
	children []*Node

	// lists
	element  *Node
	elements ElementsFunc
	keyLeaf  string
	keyValue func(string) (interface{}, error)

	// leaves
	value LeafFunc

	omitEmpty bool
}

// Container returns a container composition node with the given
// child nodes, processed in order against the container's scope.
func Container(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: yang.KindContainer, children: children}
}

// List returns a list composition node. elements discovers the list's
// (key, scope) pairs; element is the container shaped composition
// mapped once per pair. The resolved key is re-attached to each
// mapped element as the named key leaf.
func List(name, keyLeaf string, elements ElementsFunc, element *Node) *Node {
	return &Node{
		Name:     name,
		Kind:     yang.KindList,
		element:  element,
		elements: elements,
		keyLeaf:  keyLeaf,
		keyValue: func(key string) (interface{}, error) { return key, nil },
	}
}

// Leaf returns a leaf composition node extracting its value with fn.
func Leaf(name string, fn LeafFunc) *Node {
	return &Node{Name: name, Kind: yang.KindLeaf, value: fn}
}

// WithScope attaches a before-descent hook to n, returning n.
func (n *Node) WithScope(fn ScopeFunc) *Node {
	n.scope = fn
	return n
}

// WithKeyValue sets the conversion from a list element's key string
// to the schema designated scalar for the key leaf (defaulting to the
// key string itself), returning n.
func (n *Node) WithKeyValue(fn func(key string) (interface{}, error)) *Node {
	n.keyValue = fn
	return n
}

// Optional marks a container as omitted from the result when every
// declared child is absent, instead of yielding an empty present
// container. Returns n.
func (n *Node) Optional() *Node {
	n.omitEmpty = true
	return n
}
