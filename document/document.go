// Package document implements the ordered result document assembled by
// the mapping engine and consumed by the schema authority.
//
// A Doc is an insertion ordered set of named fields. Field values are
// native scalars (string, bool, int64, uint64), nested *Doc containers,
// or []*Doc list sequences. Order is significant: rendering follows
// document order, which the engine derives from native document order.
package document

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Field is one named value of a Doc.
type Field struct {
	Name  string
	Value interface{}
}

// Doc is an ordered field document.
type Doc struct {
	fields []Field
	index  map[string]int
}

// New returns an empty Doc.
func New() *Doc { return &Doc{index: map[string]int{}} }

// Set appends the named field, or replaces its value in place when the
// name is already present.
func (d *Doc) Set(name string, value interface{}) {
	if d.index == nil {
		d.index = map[string]int{}
	}
	if i, ok := d.index[name]; ok {
		d.fields[i].Value = value
		return
	}
	d.index[name] = len(d.fields)
	d.fields = append(d.fields, Field{Name: name, Value: value})
}

// SetFront is Set, but a newly inserted field is placed first rather
// than last. Used to attach list key leaves ahead of the element's
// mapped fields.
func (d *Doc) SetFront(name string, value interface{}) {
	if _, ok := d.index[name]; ok {
		d.Set(name, value)
		return
	}
	if d.index == nil {
		d.index = map[string]int{}
	}
	d.fields = append([]Field{{Name: name, Value: value}}, d.fields...)
	for i, f := range d.fields {
		d.index[f.Name] = i
	}
}

// Get returns the named field value.
func (d *Doc) Get(name string) (interface{}, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.fields[i].Value, true
}

// Fields returns the fields in document order. The returned slice is
// shared; callers must not modify it.
func (d *Doc) Fields() []Field { return d.fields }

// Len returns the number of fields.
func (d *Doc) Len() int { return len(d.fields) }

// MarshalJSON renders the document as a JSON object preserving field
// order.
func (d *Doc) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range d.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		b.Write(name)
		b.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.Name)
		}
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
