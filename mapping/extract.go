package mapping

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/andaru/yangmap/maperr"
)

// Entries returns an extraction strategy producing one element per
// child of the current scope's child named under (or of the current
// scope itself when under is empty), in document order, filtered by
// the optional name predicate. The child token is the element key and
// its node the element scope.
func Entries(under string, filter func(name string) bool) ElementsFunc {
	return func(ctx *Context) ([]Element, error) {
		scope := ctx.Current
		if under != "" {
			if scope = scope.Child(under); scope == nil {
				return nil, nil
			}
		}
		var out []Element
		for _, name := range scope.Names() {
			if filter != nil && !filter(name) {
				continue
			}
			out = append(out, Element{Key: name, Scope: scope.Child(name)})
		}
		return out, nil
	}
}

// Undotted is an Entries filter accepting names containing no dot.
func Undotted(name string) bool { return !strings.Contains(name, ".") }

// DottedEntries returns an extraction strategy for lists whose
// instances are not nested under their logical parent but live as
// flat siblings named "<parent-key>.<suffix>". The parent key is read
// from the registry at parentPath; matching entries of the current
// scope's child named under are returned with the suffix as key.
//
// Pair with WithScope(RootScope) on the list node when the flat
// siblings live at the document root rather than the current scope.
func DottedEntries(under, parentPath string) ElementsFunc {
	return func(ctx *Context) ([]Element, error) {
		parent, ok := ctx.Key(parentPath)
		if !ok {
			return nil, maperr.Extraction(parentPath, "",
				maperr.WithMessage("no key resolved for parent list path"))
		}
		scope := ctx.Current
		if under != "" {
			if scope = scope.Child(under); scope == nil {
				return nil, nil
			}
		}
		prefix := parent + "."
		var out []Element
		for _, name := range scope.Names() {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			out = append(out, Element{Key: name[len(prefix):], Scope: scope.Child(name)})
		}
		return out, nil
	}
}

// ChildText extracts the trailing text of the current scope's child
// named name; absent when the child is missing or bare.
func ChildText(name string) LeafFunc {
	return func(ctx *Context) (interface{}, error) {
		c := ctx.Current.Child(name)
		if c == nil || c.Text == "" {
			return nil, maperr.ErrAbsent
		}
		return c.Text, nil
	}
}

// ChildTextUint extracts the trailing text of the named child as an
// unsigned integer; absent when the child is missing.
func ChildTextUint(name string) LeafFunc {
	return func(ctx *Context) (interface{}, error) {
		c := ctx.Current.Child(name)
		if c == nil || c.Text == "" {
			return nil, maperr.ErrAbsent
		}
		u, err := strconv.ParseUint(c.Text, 10, 64)
		if err != nil {
			return nil, maperr.Extraction("", c.Text,
				maperr.WithMessage(fmt.Sprintf("%s: not an unsigned integer", name)))
		}
		return u, nil
	}
}

// Flag extracts true when the current scope holds a standalone flag
// child named name; absent otherwise.
func Flag(name string) LeafFunc {
	return func(ctx *Context) (interface{}, error) {
		if c := ctx.Current.Child(name); c != nil && c.Standalone {
			return true, nil
		}
		return nil, maperr.ErrAbsent
	}
}

// NotFlag extracts the negated presence of a standalone flag child:
// false when the flag is present, true when it is not. Always
// present, for leaves like enabled whose native form is a shutdown
// toggle.
func NotFlag(name string) LeafFunc {
	return func(ctx *Context) (interface{}, error) {
		if c := ctx.Current.Child(name); c != nil && c.Standalone {
			return false, nil
		}
		return true, nil
	}
}

// Key extracts the key most recently resolved at the given schema
// list path; absent when no key has resolved there.
func Key(path string) LeafFunc {
	return func(ctx *Context) (interface{}, error) {
		k, ok := ctx.Key(path)
		if !ok {
			return nil, maperr.ErrAbsent
		}
		return k, nil
	}
}

// KeyUint is Key converted to an unsigned integer; a non-numeric key
// is a hard extraction failure.
func KeyUint(path string) LeafFunc {
	return func(ctx *Context) (interface{}, error) {
		k, ok := ctx.Key(path)
		if !ok {
			return nil, maperr.ErrAbsent
		}
		u, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return nil, maperr.Extraction("", k, maperr.WithMessage("key is not an unsigned integer"))
		}
		return u, nil
	}
}

// KeyInt is Key converted to a signed integer; a non-numeric key is a
// hard extraction failure.
func KeyInt(path string) LeafFunc {
	return func(ctx *Context) (interface{}, error) {
		k, ok := ctx.Key(path)
		if !ok {
			return nil, maperr.ErrAbsent
		}
		i, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, maperr.Extraction("", k, maperr.WithMessage("key is not an integer"))
		}
		return i, nil
	}
}

// Rule is one ordered classification rule: the first rule whose
// pattern matches supplies the value.
type Rule struct {
	Pattern *regexp.Regexp
	Value   interface{}
}

// ClassifyKey classifies the key most recently resolved at the given
// schema list path against the ordered rules. A key matching no rule
// is a hard extraction failure naming the key; the engine fills in
// the schema path of the leaf being extracted.
func ClassifyKey(path string, rules []Rule) LeafFunc {
	return func(ctx *Context) (interface{}, error) {
		k, ok := ctx.Key(path)
		if !ok {
			return nil, maperr.ErrAbsent
		}
		for _, rule := range rules {
			if rule.Pattern.MatchString(k) {
				return rule.Value, nil
			}
		}
		return nil, maperr.Extraction("", k, maperr.WithMessage("no classification rule matches"))
	}
}
