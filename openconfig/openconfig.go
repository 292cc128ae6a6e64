// Package openconfig maps IOS style native configuration onto a
// subset of the openconfig-interfaces and openconfig-system models.
//
// It is the concrete profile tying the generic machinery together: a
// yang.Authority describing the output schema, composition models
// populating it from the native tree, and a ready made Parser. It
// doubles as the reference for writing further vendor profiles.
package openconfig

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andaru/yangmap/mapping"
	"github.com/andaru/yangmap/maperr"
	"github.com/andaru/yangmap/parser"
	"github.com/andaru/yangmap/xmlutil"
	"github.com/andaru/yangmap/yang"
)

const (
	nsInterfaces = "http://openconfig.net/yang/interfaces"
	nsSystem     = "http://openconfig.net/yang/system"

	// fully qualified top level names and the schema list paths
	// used for key registry access
	NameInterfaces = "oc-if:interfaces"
	NameSystem     = "oc-sys:system"

	pathInterface    = NameInterfaces + "/interface"
	pathSubinterface = pathInterface + "/subinterfaces/subinterface"
)

// typeRules classifies native interface names onto IANA interface
// type identities. Abbreviated vendor names (Fa1, Gi0/0, Lo0) match
// alongside their long forms; first match wins.
var typeRules = []mapping.Rule{
	{Pattern: regexp.MustCompile(`^(?:[A-Za-z-]*Ethernet|Fa|Gi|Te|Et)\d`), Value: "ianaift:ethernetCsmacd"},
	{Pattern: regexp.MustCompile(`^(?:Loopback|Lo)\d`), Value: "ianaift:softwareLoopback"},
	{Pattern: regexp.MustCompile(`^(?:Tunnel|Tu)\d`), Value: "ianaift:tunnel"},
	{Pattern: regexp.MustCompile(`^(?:Serial|Se)\d`), Value: "ianaift:propPointToPointSerial"},
	{Pattern: regexp.MustCompile(`^(?:Vlan|Vl)\d`), Value: "ianaift:l3ipvlan"},
	{Pattern: regexp.MustCompile(`^(?:Port-channel|Po)\d`), Value: "ianaift:ieee8023adLag"},
	{Pattern: regexp.MustCompile(`^(?:Management|Mgmt)`), Value: "ianaift:ethernetCsmacd"},
}

// Schema returns the schema authority for the profile.
func Schema() *yang.Authority {
	interfaces := yang.Container(NameInterfaces,
		yang.WithMust("not(//config[mtu < 68])", "interface MTU must be at least 68"))
	iface := interfaces.Append(yang.List("interface", "name"))
	iface.Append(yang.Leaf("name", yang.TypeString))

	config := iface.Append(yang.Container("config"))
	config.AppendAll(
		yang.Leaf("name", yang.TypeString),
		yang.Leaf("type", yang.TypeIdentity, yang.WithMandatory(), yang.WithIdentityPrefixes("ianaift")),
		yang.Leaf("description", yang.TypeString),
		yang.Leaf("enabled", yang.TypeBoolean),
		yang.Leaf("mtu", yang.TypeUint16),
	)

	subif := iface.Append(yang.Container("subinterfaces")).Append(yang.List("subinterface", "index"))
	subif.Append(yang.Leaf("index", yang.TypeUint32))
	subifConfig := subif.Append(yang.Container("config"))
	subifConfig.AppendAll(
		yang.Leaf("index", yang.TypeUint32),
		yang.Leaf("description", yang.TypeString),
		yang.Leaf("enabled", yang.TypeBoolean),
	)

	system := yang.Container(NameSystem)
	sysConfig := system.Append(yang.Container("config"))
	sysConfig.AppendAll(
		yang.Leaf("hostname", yang.TypeString),
		yang.Leaf("domain-name", yang.TypeString),
	)

	return yang.NewAuthority(xmlutil.PrefixMap{
		"oc-if":  nsInterfaces,
		"oc-sys": nsSystem,
	}, interfaces, system)
}

// Interfaces returns the composition model for the interfaces
// subtree. Interface blocks are flat entries under the native
// "interface" token; subinterfaces are flat siblings named
// "<interface>.<index>" and are discovered by scanning the document
// root for that prefix.
func Interfaces() *mapping.Node {
	return mapping.Container(NameInterfaces,
		mapping.List("interface", "name",
			mapping.Entries("interface", mapping.Undotted),
			mapping.Container("interface",
				mapping.Container("config",
					mapping.Leaf("name", mapping.Key(pathInterface)),
					mapping.Leaf("type", mapping.ClassifyKey(pathInterface, typeRules)),
					mapping.Leaf("description", mapping.ChildText("description")),
					mapping.Leaf("enabled", mapping.NotFlag("shutdown")),
					mapping.Leaf("mtu", mapping.ChildTextUint("mtu")),
				),
				mapping.Container("subinterfaces",
					mapping.List("subinterface", "index",
						mapping.DottedEntries("interface", pathInterface),
						mapping.Container("subinterface",
							mapping.Container("config",
								mapping.Leaf("index", mapping.KeyUint(pathSubinterface)),
								mapping.Leaf("description", mapping.ChildText("description")),
								mapping.Leaf("enabled", mapping.NotFlag("shutdown")),
							),
						),
					).WithKeyValue(subinterfaceIndex).WithScope(mapping.RootScope),
				).Optional(),
			),
		),
	).Optional()
}

// System returns the composition model for the system subtree,
// populated from root level leaves.
func System() *mapping.Node {
	return mapping.Container(NameSystem,
		mapping.Container("config",
			mapping.Leaf("hostname", mapping.ChildText("hostname")),
			mapping.Leaf("domain-name", domainName),
		).Optional(),
	).Optional()
}

// domainName extracts the value of a root level "ip domain-name"
// line, which lexes as the "ip" leaf's trailing text.
func domainName(ctx *mapping.Context) (interface{}, error) {
	const prefix = "domain-name "
	c := ctx.Current.Child("ip")
	if c == nil || !strings.HasPrefix(c.Text, prefix) {
		return nil, maperr.ErrAbsent
	}
	return strings.TrimSpace(c.Text[len(prefix):]), nil
}

// subinterfaceIndex converts a dotted suffix to the uint32 index
// leaf value.
func subinterfaceIndex(key string) (interface{}, error) {
	u, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return nil, maperr.Extraction("", key, maperr.WithMessage("subinterface index is not numeric"))
	}
	return u, nil
}

// NewParser returns a Parser processing both profile subtrees.
func NewParser() *parser.Parser {
	return parser.New(Schema(),
		parser.WithRoot(NameInterfaces, Interfaces()),
		parser.WithRoot(NameSystem, System()),
	)
}
