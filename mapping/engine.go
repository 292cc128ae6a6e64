package mapping

import (
	"github.com/pkg/errors"

	"github.com/andaru/yangmap/document"
	"github.com/andaru/yangmap/maperr"
	"github.com/andaru/yangmap/yang"
)

// Map walks the composition n against ctx, returning the mapped
// document fragment: a *document.Doc for containers, []*document.Doc
// for lists, or a scalar for leaves.
//
// Absence (maperr.ErrAbsent) means the subtree has no presence in the
// native input and is omitted by the caller; any other error is fatal
// for the surrounding Process call and carries schema path and native
// key attribution.
func Map(n *Node, ctx *Context) (interface{}, error) {
	return walk(n, ctx, n.Name)
}

func walk(n *Node, ctx *Context, path string) (interface{}, error) {
	if n.scope != nil {
		saved := ctx.Current
		ctx.Current = n.scope(ctx)
		defer func() { ctx.Current = saved }()
	}
	switch n.Kind {
	case yang.KindContainer:
		return walkContainer(n, ctx, path)
	case yang.KindList:
		return walkList(n, ctx, path)
	case yang.KindLeaf:
		return walkLeaf(n, ctx, path)
	}
	return nil, errors.Errorf("composition node %s: unknown kind %v", path, n.Kind)
}

func walkContainer(n *Node, ctx *Context, path string) (interface{}, error) {
	doc := document.New()
	for _, child := range n.children {
		v, err := walk(child, ctx, path+"/"+child.Name)
		if maperr.IsAbsent(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		doc.Set(child.Name, v)
	}
	if n.omitEmpty && doc.Len() == 0 {
		return nil, maperr.ErrAbsent
	}
	// a container with zero present children is still present
	return doc, nil
}

func walkList(n *Node, ctx *Context, path string) (interface{}, error) {
	elems, err := n.elements(ctx)
	if err != nil {
		return nil, attribute(err, path)
	}
	var out []*document.Doc
	for _, elem := range elems {
		// single live key per path; consumers read it before any
		// deeper recursion into the same path
		ctx.SetKey(path, elem.Key)

		saved := ctx.Current
		ctx.Current = elem.Scope
		v, err := walk(n.element, ctx, path)
		ctx.Current = saved
		if maperr.IsAbsent(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		doc, ok := v.(*document.Doc)
		if !ok {
			return nil, errors.Errorf("list %s: element composition must be a container", path)
		}

		key, err := n.keyValue(elem.Key)
		if err != nil {
			return nil, attribute(err, path+"/"+n.keyLeaf)
		}
		doc.SetFront(n.keyLeaf, key)
		out = append(out, doc)
	}
	if len(out) == 0 {
		return nil, maperr.ErrAbsent
	}
	return out, nil
}

func walkLeaf(n *Node, ctx *Context, path string) (interface{}, error) {
	v, err := n.value(ctx)
	if err != nil {
		if maperr.IsAbsent(err) {
			return nil, maperr.ErrAbsent
		}
		return nil, attribute(err, path)
	}
	return v, nil
}

// attribute fills in the schema path on extraction errors raised
// without one; foreign errors are wrapped with the path instead.
func attribute(err error, path string) error {
	if me, ok := maperr.IsError(err); ok {
		if me.Path == "" {
			me.Path = path
		}
		return err
	}
	return errors.Wrapf(err, "mapping %s", path)
}
