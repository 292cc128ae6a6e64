package mapping

import (
	"encoding/json"
	"regexp"
	"strconv"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andaru/yangmap/document"
	"github.com/andaru/yangmap/maperr"
	"github.com/andaru/yangmap/native"
)

const pathInterface = "interfaces/interface"

var typeRules = []Rule{
	{Pattern: regexp.MustCompile(`Ethernet`), Value: "ianaift:ethernetCsmacd"},
	{Pattern: regexp.MustCompile(`^Loopback`), Value: "ianaift:softwareLoopback"},
}

// interfacesComposition mirrors the shape used by vendor profiles:
// a keyed interface list with per-element config, plus a dotted
// sibling subinterface list resolved against the document root.
func interfacesComposition() *Node {
	return Container("interfaces",
		List("interface", "name",
			Entries("interface", Undotted),
			Container("interface",
				Container("config",
					Leaf("name", Key(pathInterface)),
					Leaf("type", ClassifyKey(pathInterface, typeRules)),
					Leaf("description", ChildText("description")),
					Leaf("enabled", NotFlag("shutdown")),
					Leaf("mtu", ChildTextUint("mtu")),
				),
				Container("subinterfaces",
					List("subinterface", "index",
						DottedEntries("interface", pathInterface),
						Container("subinterface",
							Container("config",
								Leaf("index", KeyUint(pathInterface+"/subinterfaces/subinterface")),
								Leaf("description", ChildText("description")),
							),
						),
					).WithKeyValue(uintKey).WithScope(RootScope),
				).Optional(),
			),
		),
	)
}

func uintKey(key string) (interface{}, error) {
	u, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return nil, maperr.Extraction("", key, maperr.WithMessage("subinterface index is not numeric"))
	}
	return u, nil
}

func mustParse(t *testing.T, text string) *native.Node {
	t.Helper()
	root, err := native.Parse(text)
	require.NoError(t, err)
	return root
}

func docJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestMapInterfaces(t *testing.T) {
	ck := require.New(t)
	root := mustParse(t, `interface FastEthernet1
  description uplink
  mtu 1500
  shutdown
  exit
!
interface Loopback0
  exit
!
`)
	v, err := Map(interfacesComposition(), NewContext(root))
	ck.NoError(err, "mapping failed; native tree: %s", spew.Sdump(root))

	want := `{"interface":[` +
		`{"name":"FastEthernet1","config":{"name":"FastEthernet1","type":"ianaift:ethernetCsmacd",` +
		`"description":"uplink","enabled":false,"mtu":1500}},` +
		`{"name":"Loopback0","config":{"name":"Loopback0","type":"ianaift:softwareLoopback","enabled":true}}]}`
	ck.Equal(want, docJSON(t, v))
}

func TestMapSubinterfaces(t *testing.T) {
	ck := require.New(t)
	root := mustParse(t, `interface FastEthernet1
  exit
!
interface FastEthernet1.1
  description first subif
  exit
!
interface FastEthernet1.20
  exit
!
interface FastEthernet2.1
  exit
!
`)
	v, err := Map(interfacesComposition(), NewContext(root))
	ck.NoError(err)

	doc := v.(*document.Doc)
	elems, _ := doc.Get("interface")
	ck.Len(elems.([]*document.Doc), 1, "dotted names must not appear as interfaces")

	fa1 := elems.([]*document.Doc)[0]
	subifsV, ok := fa1.Get("subinterfaces")
	ck.True(ok)
	subifs, _ := subifsV.(*document.Doc).Get("subinterface")
	// only FastEthernet1.* qualify, in document order
	ck.Equal(`[{"index":1,"config":{"index":1,"description":"first subif"}},`+
		`{"index":20,"config":{"index":20}}]`, docJSON(t, subifs))
}

func TestMapAbsence(t *testing.T) {
	ck := require.New(t)

	// no interfaces at all: the list is absent, the optional
	// subinterfaces container never materializes, and the outer
	// container is still present (and empty).
	v, err := Map(interfacesComposition(), NewContext(mustParse(t, "hostname r1\n")))
	ck.NoError(err)
	ck.Equal(`{}`, docJSON(t, v))
}

func TestMapExtractionFailure(t *testing.T) {
	ck := require.New(t)
	root := mustParse(t, "interface Xyz1\n  exit\n!\n")
	_, err := Map(interfacesComposition(), NewContext(root))
	ck.Error(err)

	me, ok := maperr.IsError(err)
	ck.True(ok, "want *maperr.Error, got: %v", err)
	ck.Equal(maperr.ClassExtraction, me.Class)
	ck.Equal("Xyz1", me.Key)
	ck.Equal("interfaces/interface/config/type", me.Path)
}

func TestMapDeterminism(t *testing.T) {
	ck := require.New(t)
	root := mustParse(t, `interface FastEthernet1
  exit
!
interface FastEthernet1.1
  exit
!
interface Loopback0
  exit
!
`)
	comp := interfacesComposition()
	first, err := Map(comp, NewContext(root))
	ck.NoError(err)
	second, err := Map(comp, NewContext(root))
	ck.NoError(err)
	ck.Equal(docJSON(t, first), docJSON(t, second))
}

func TestScopeHookRunsOnceAndRestores(t *testing.T) {
	ck := require.New(t)
	root := mustParse(t, "outer scope\n  inner 1\n  exit\n")

	var hookCalls int
	comp := Container("top",
		Leaf("inner", ChildText("inner")),
	).WithScope(func(ctx *Context) *native.Node {
		hookCalls++
		return ctx.Root.Child("outer").Child("scope")
	})

	ctx := NewContext(root)
	v, err := Map(comp, ctx)
	ck.NoError(err)
	ck.Equal(1, hookCalls)
	ck.Same(root, ctx.Current, "current scope must be restored after the subtree completes")

	inner, _ := v.(*document.Doc).Get("inner")
	ck.Equal("1", inner)
}

func TestEmptyContainerPresent(t *testing.T) {
	ck := require.New(t)
	comp := Container("system", Leaf("hostname", ChildText("hostname")))
	v, err := Map(comp, NewContext(mustParse(t, "clock timezone UTC\n")))
	ck.NoError(err)
	ck.Equal(`{}`, docJSON(t, v), "container with zero present children is still present")
}

func TestContextSingleSlotKeys(t *testing.T) {
	ck := assert.New(t)
	ctx := NewContext(&native.Node{})
	_, ok := ctx.Key("a/b")
	ck.False(ok)
	ctx.SetKey("a/b", "first")
	ctx.SetKey("a/b", "second")
	k, ok := ctx.Key("a/b")
	ck.True(ok)
	ck.Equal("second", k, "registry holds one live value per path")
}
