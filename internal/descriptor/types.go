package descriptor

import (
	"encoding/xml"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

// Descriptor is the in-memory form of a persistence.xml with a single
// persistence unit.
type Descriptor struct {
	Namespace Namespace
	Version   string
	Unit      Unit
}

// Unit is a persistence unit. Name, Provider, Properties and Classes are
// managed by jpagen; the remaining fields are carried through unchanged.
type Unit struct {
	Name     string
	Provider string

	TransactionType        string
	Description            string
	JTADataSource          string
	NonJTADataSource       string
	MappingFiles           []string
	JarFiles               []string
	ExcludeUnlistedClasses *bool
	SharedCacheMode        string
	ValidationMode         string

	// Extensions holds unit children jpagen does not model, in input order.
	Extensions []Extension

	Properties Properties
	Classes    jpagen.ClassSet
}

// Extension is a persistence-unit child element without a dedicated field,
// such as <qualifier> or <scope> from Jakarta Persistence 3.2. It is written
// back unchanged after <provider>. An empty Name.Space means the document
// namespace.
type Extension struct {
	Name     xml.Name
	Attrs    []xml.Attr
	InnerXML string
}

// Property is a single unit property.
type Property struct {
	Name  string
	Value string
}

// Properties is an ordered list of properties with unique names.
type Properties []Property

// Get returns the value of the named property.
func (p Properties) Get(name string) (string, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing property in place, or appends it.
func (p *Properties) Set(name, value string) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Property{Name: name, Value: value})
}

// Wire format. Field order follows the persistence-unit sequence of the JPA
// schema. Child elements are written without a namespace so they inherit the
// root one instead of redeclaring it.

type xmlPersistence struct {
	XMLName xml.Name
	Version string    `xml:"version,attr,omitempty"`
	Units   []xmlUnit `xml:"persistence-unit"`
}

type xmlUnit struct {
	Name                   string         `xml:"name,attr"`
	TransactionType        string         `xml:"transaction-type,attr,omitempty"`
	Description            string         `xml:"description,omitempty"`
	Provider               string         `xml:"provider,omitempty"`
	Extensions             []xmlExtension `xml:",any"`
	JTADataSource          string         `xml:"jta-data-source,omitempty"`
	NonJTADataSource       string         `xml:"non-jta-data-source,omitempty"`
	MappingFiles           []string       `xml:"mapping-file"`
	JarFiles               []string       `xml:"jar-file"`
	Classes                []string       `xml:"class"`
	ExcludeUnlistedClasses *string        `xml:"exclude-unlisted-classes,omitempty"`
	SharedCacheMode        string         `xml:"shared-cache-mode,omitempty"`
	ValidationMode         string         `xml:"validation-mode,omitempty"`
	Properties             *xmlProperties `xml:"properties,omitempty"`
}

type xmlExtension struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	InnerXML string     `xml:",innerxml"`
}

type xmlProperties struct {
	Items []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}
