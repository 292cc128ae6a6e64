package yang

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/andaru/yangmap/document"
	"github.com/andaru/yangmap/maperr"
	"github.com/andaru/yangmap/xmlutil"
)

// Authority is the schema authority for assembled documents. It
// classifies schema nodes by path, validates documents against the
// declared schema and renders them to canonical XML.
//
// An Authority is immutable after construction and safe for use from
// concurrent Process calls.
type Authority struct {
	prefixes xmlutil.PrefixMap
	tops     []*Node
	index    map[string]*Node
}

// NewAuthority returns an Authority for the given top level schema
// subtrees. Top level node names are fully qualified ("prefix:name");
// prefixes maps each prefix to its namespace URI for rendering.
func NewAuthority(prefixes xmlutil.PrefixMap, tops ...*Node) *Authority {
	a := &Authority{prefixes: prefixes, tops: tops, index: map[string]*Node{}}
	for _, top := range tops {
		a.index[top.Name] = top
	}
	return a
}

// Top returns the named top level schema node, or nil.
func (a *Authority) Top(name string) *Node { return a.index[name] }

// KindOf classifies the schema node at a slash separated path whose
// first segment is a fully qualified top level name. The second
// return is false when no such node is declared.
func (a *Authority) KindOf(path string) (Kind, bool) {
	segments := strings.Split(path, "/")
	node := a.index[segments[0]]
	for _, seg := range segments[1:] {
		if node == nil {
			break
		}
		node = node.Child(seg)
	}
	if node == nil {
		return 0, false
	}
	return node.Kind, true
}

// Validate checks doc against the declared schema: unknown nodes,
// kind mismatches, missing mandatory leaves and list keys, scalar
// type conformance, and finally any must constraints evaluated over
// the rendered document. The first failure is returned.
func (a *Authority) Validate(doc *document.Doc) error {
	for _, f := range doc.Fields() {
		top := a.index[f.Name]
		if top == nil {
			return maperr.UnknownNode(f.Name)
		}
		if err := validateNode(top, f.Name, f.Value); err != nil {
			return err
		}
	}
	return a.validateMusts(doc)
}

func validateNode(n *Node, path string, v interface{}) error {
	switch n.Kind {
	case KindContainer:
		d, ok := v.(*document.Doc)
		if !ok {
			return maperr.KindMismatch(path, maperr.WithMessage(fmt.Sprintf("want container, got %T", v)))
		}
		return validateChildren(n, path, d)
	case KindList:
		elems, ok := v.([]*document.Doc)
		if !ok {
			return maperr.KindMismatch(path, maperr.WithMessage(fmt.Sprintf("want list, got %T", v)))
		}
		for _, elem := range elems {
			if _, ok := elem.Get(n.Key); !ok {
				return maperr.MissingLeaf(path+"/"+n.Key, maperr.WithMessage("list key leaf absent"))
			}
			if err := validateChildren(n, path, elem); err != nil {
				return err
			}
		}
		return nil
	case KindLeaf:
		return checkValue(n, path, v)
	}
	return maperr.KindMismatch(path, maperr.WithMessage(fmt.Sprintf("unknown kind %v", n.Kind)))
}

func validateChildren(n *Node, path string, d *document.Doc) error {
	for _, f := range d.Fields() {
		child := n.Child(f.Name)
		if child == nil {
			return maperr.UnknownNode(path + "/" + f.Name)
		}
		if err := validateNode(child, path+"/"+f.Name, f.Value); err != nil {
			return err
		}
	}
	for _, child := range n.Children() {
		if !child.Mandatory {
			continue
		}
		if _, ok := d.Get(child.Name); !ok {
			return maperr.MissingLeaf(path + "/" + child.Name)
		}
	}
	return nil
}

func checkValue(n *Node, path string, v interface{}) error {
	bad := func(format string, args ...interface{}) error {
		return maperr.BadValue(path, maperr.WithMessage(fmt.Sprintf(format, args...)))
	}
	switch n.Type {
	case TypeString:
		if _, ok := v.(string); !ok {
			return bad("want string, got %T", v)
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return bad("want boolean, got %T", v)
		}
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		i, ok := v.(int64)
		if !ok {
			return bad("want %s, got %T", n.Type, v)
		}
		if min, max := intRange(n.Type); i < min || i > max {
			return bad("%d out of range for %s", i, n.Type)
		}
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		u, ok := v.(uint64)
		if !ok {
			return bad("want %s, got %T", n.Type, v)
		}
		if max := uintMax(n.Type); u > max {
			return bad("%d out of range for %s", u, n.Type)
		}
	case TypeIdentity:
		s, ok := v.(string)
		if !ok {
			return bad("want identityref, got %T", v)
		}
		prefix, local := xmlutil.SplitQualified(s)
		if local == "" || !containsString(n.identityPrefixes, prefix) {
			return bad("identity %q does not match prefixes %v", s, n.identityPrefixes)
		}
	default:
		return bad("unknown type %v", n.Type)
	}
	return nil
}

func intRange(t Type) (int64, int64) {
	switch t {
	case TypeInt8:
		return math.MinInt8, math.MaxInt8
	case TypeInt16:
		return math.MinInt16, math.MaxInt16
	case TypeInt32:
		return math.MinInt32, math.MaxInt32
	}
	return math.MinInt64, math.MaxInt64
}

func uintMax(t Type) uint64 {
	switch t {
	case TypeUint8:
		return math.MaxUint8
	case TypeUint16:
		return math.MaxUint16
	case TypeUint32:
		return math.MaxUint32
	}
	return math.MaxUint64
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// validateMusts renders doc and evaluates every must constraint
// declared on a schema node present in doc against the parsed
// rendering.
func (a *Authority) validateMusts(doc *document.Doc) error {
	musts := collectMusts(nil, a, doc)
	if len(musts) == 0 {
		return nil
	}
	rendered, err := a.Render(doc)
	if err != nil {
		return err
	}
	parsed, err := xmlquery.Parse(bytes.NewReader(rendered))
	if err != nil {
		return errors.Wrap(err, "re-parsing rendered document")
	}
	nav := xmlquery.CreateXPathNavigator(parsed)
	for _, pm := range musts {
		// fresh compile per evaluation; the expression was checked
		// at schema construction
		if !truthy(xpath.MustCompile(pm.must.raw).Evaluate(nav)) {
			msg := pm.must.message
			if msg == "" {
				msg = pm.must.raw
			}
			return maperr.MustViolation(pm.path, maperr.WithMessage(msg))
		}
	}
	return nil
}

type pathMust struct {
	path string
	must Must
}

func collectMusts(acc []pathMust, a *Authority, doc *document.Doc) []pathMust {
	for _, f := range doc.Fields() {
		if top := a.index[f.Name]; top != nil {
			acc = collectNodeMusts(acc, top, f.Name, f.Value)
		}
	}
	return acc
}

func collectNodeMusts(acc []pathMust, n *Node, path string, v interface{}) []pathMust {
	for _, m := range n.musts {
		acc = append(acc, pathMust{path: path, must: m})
	}
	switch val := v.(type) {
	case *document.Doc:
		acc = collectChildMusts(acc, n, path, val)
	case []*document.Doc:
		for _, elem := range val {
			acc = collectChildMusts(acc, n, path, elem)
		}
	}
	return acc
}

func collectChildMusts(acc []pathMust, n *Node, path string, d *document.Doc) []pathMust {
	for _, f := range d.Fields() {
		if child := n.Child(f.Name); child != nil {
			acc = collectNodeMusts(acc, child, path+"/"+f.Name, f.Value)
		}
	}
	return acc
}

func truthy(v interface{}) bool {
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	case *xpath.NodeIterator:
		return v.MoveNext()
	}
	return v != nil
}

// Render writes doc as canonical XML: a <data> envelope declaring the
// authority's namespace prefixes, fields in document order, list
// elements as repeated siblings, scalars per their native type.
// Output is byte stable across runs for a given document.
func (a *Authority) Render(doc *document.Doc) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("<data")
	for _, attr := range a.prefixes.Attr() {
		fmt.Fprintf(&b, " xmlns:%s=%q", attr.Name.Local, attr.Value)
	}
	b.WriteString(">")
	for _, f := range doc.Fields() {
		if err := renderValue(&b, f.Name, f.Value); err != nil {
			return nil, err
		}
	}
	b.WriteString("</data>")
	return b.Bytes(), nil
}

func renderValue(b *bytes.Buffer, name string, v interface{}) error {
	switch v := v.(type) {
	case *document.Doc:
		b.WriteString("<" + name + ">")
		for _, f := range v.Fields() {
			if err := renderValue(b, f.Name, f.Value); err != nil {
				return err
			}
		}
		b.WriteString("</" + name + ">")
	case []*document.Doc:
		for _, elem := range v {
			if err := renderValue(b, name, elem); err != nil {
				return err
			}
		}
	default:
		text, err := scalarText(v)
		if err != nil {
			return errors.Wrapf(err, "element %s", name)
		}
		b.WriteString("<" + name + ">")
		if err := xml.EscapeText(b, []byte(text)); err != nil {
			return errors.WithStack(err)
		}
		b.WriteString("</" + name + ">")
	}
	return nil
}

func scalarText(v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	}
	return "", errors.Errorf("unsupported scalar type %T", v)
}
