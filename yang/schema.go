// Package yang implements the schema authority: a declarative,
// YANG shaped description of the output document used to classify
// nodes, validate assembled documents and render them canonically.
package yang

import (
	"fmt"

	"github.com/antchfx/xpath"
)

// Kind classifies a schema node.
type Kind int

const (
	// KindContainer is a container of named child nodes
	KindContainer Kind = iota
	// KindList is a keyed sequence of container shaped elements
	KindList
	// KindLeaf is a typed scalar value
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindList:
		return "list"
	case KindLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is the declared scalar type of a leaf.
type Type int

const (
	TypeString Type = iota
	TypeBoolean
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	// TypeIdentity is an identity reference, rendered as a
	// prefix qualified name (e.g. "ianaift:ethernetCsmacd")
	TypeIdentity
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeIdentity:
		return "identityref"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Must is an xpath constraint attached to a schema node, evaluated
// over the rendered document whenever the node is present. The raw
// expression is recompiled per evaluation; compiled xpath queries hold
// iteration state and must not be shared across concurrent documents.
type Must struct {
	raw     string
	message string
}

// Node is one schema node. Build trees with the Container, List and
// Leaf constructors plus Append; a Node is immutable once handed to
// an Authority and safe for shared use.
type Node struct {
	Name string
	Kind Kind
	// Type is the scalar type; leaves only
	Type Type
	// Key names the key leaf of each element; lists only
	Key string
	// Mandatory marks the node required within its parent
	Mandatory bool

	identityPrefixes []string
	musts            []Must
	children         []*Node
	index            map[string]*Node
}

// Option is a schema Node option function
type Option func(*Node)

// WithMandatory marks the node required within its parent.
func WithMandatory() Option { return func(n *Node) { n.Mandatory = true } }

// WithMust attaches an xpath constraint, compiled eagerly; an invalid
// expression panics at schema construction. The message is reported
// on violation.
func WithMust(expr, message string) Option {
	return func(n *Node) {
		xpath.MustCompile(expr)
		n.musts = append(n.musts, Must{raw: expr, message: message})
	}
}

// WithIdentityPrefixes sets the accepted identity prefixes of a
// TypeIdentity leaf.
func WithIdentityPrefixes(prefixes ...string) Option {
	return func(n *Node) { n.identityPrefixes = prefixes }
}

// Container returns a container schema node.
func Container(name string, opts ...Option) *Node {
	return newNode(&Node{Name: name, Kind: KindContainer}, opts)
}

// List returns a list schema node whose elements are keyed by the
// named key leaf. Element children are appended to the list node
// itself.
func List(name, key string, opts ...Option) *Node {
	return newNode(&Node{Name: name, Kind: KindList, Key: key}, opts)
}

// Leaf returns a leaf schema node of the given type.
func Leaf(name string, typ Type, opts ...Option) *Node {
	return newNode(&Node{Name: name, Kind: KindLeaf, Type: typ}, opts)
}

func newNode(n *Node, opts []Option) *Node {
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Append adds child to n, returning child for chained construction.
func (n *Node) Append(child *Node) *Node {
	if n.index == nil {
		n.index = map[string]*Node{}
	}
	n.children = append(n.children, child)
	n.index[child.Name] = child
	return child
}

// AppendAll adds each child to n, returning n.
func (n *Node) AppendAll(children ...*Node) *Node {
	for _, child := range children {
		n.Append(child)
	}
	return n
}

// Child returns the named child schema node, or nil.
func (n *Node) Child(name string) *Node { return n.index[name] }

// Children returns the child schema nodes in declaration order.
func (n *Node) Children() []*Node { return n.children }
