package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocOrder(t *testing.T) {
	ck := assert.New(t)
	d := New()
	d.Set("b", "2")
	d.Set("a", "1")
	d.Set("c", int64(3))
	d.Set("b", "replaced")

	var names []string
	for _, f := range d.Fields() {
		names = append(names, f.Name)
	}
	ck.Equal([]string{"b", "a", "c"}, names, "replacement must keep position")

	v, ok := d.Get("b")
	ck.True(ok)
	ck.Equal("replaced", v)
	_, ok = d.Get("missing")
	ck.False(ok)
	ck.Equal(3, d.Len())
}

func TestDocSetFront(t *testing.T) {
	ck := assert.New(t)
	d := New()
	d.Set("config", New())
	d.SetFront("name", "Fa1")
	ck.Equal("name", d.Fields()[0].Name)
	ck.Equal("config", d.Fields()[1].Name)

	// existing fields keep their position on SetFront
	d.SetFront("config", "replaced")
	ck.Equal("config", d.Fields()[1].Name)
	v, _ := d.Get("config")
	ck.Equal("replaced", v)

	v, ok := d.Get("name")
	ck.True(ok)
	ck.Equal("Fa1", v)
}

func TestDocMarshalJSON(t *testing.T) {
	ck := require.New(t)
	config := New()
	config.Set("name", "Fa1")
	config.Set("enabled", false)
	config.Set("mtu", uint64(1500))

	elem := New()
	elem.Set("name", "Fa1")
	elem.Set("config", config)

	d := New()
	d.Set("interface", []*Doc{elem})

	b, err := json.Marshal(d)
	ck.NoError(err)
	ck.Equal(`{"interface":[{"name":"Fa1","config":{"name":"Fa1","enabled":false,"mtu":1500}}]}`, string(b))
}
