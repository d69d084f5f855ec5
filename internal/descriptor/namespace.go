package descriptor

import "fmt"

// Namespace identifies the schema namespace of a persistence descriptor.
type Namespace int

const (
	// NamespaceJCP is the JPA 2.1/2.2 namespace.
	NamespaceJCP Namespace = iota + 1
	// NamespaceJakarta is the Jakarta Persistence 3.x namespace.
	NamespaceJakarta
)

// DefaultNamespace is used for freshly created descriptors.
const DefaultNamespace = NamespaceJakarta

const (
	jcpURI     = "http://xmlns.jcp.org/xml/ns/persistence"
	jakartaURI = "https://jakarta.ee/xml/ns/persistence"
)

// NamespaceFromURI maps a root element namespace URI to a Namespace.
func NamespaceFromURI(uri string) (Namespace, bool) {
	switch uri {
	case jcpURI:
		return NamespaceJCP, true
	case jakartaURI:
		return NamespaceJakarta, true
	default:
		return 0, false
	}
}

// URI returns the namespace URI written on the root element.
func (n Namespace) URI() string {
	switch n {
	case NamespaceJCP:
		return jcpURI
	case NamespaceJakarta:
		return jakartaURI
	default:
		return ""
	}
}

// DefaultVersion is the schema version written when a document carries none.
func (n Namespace) DefaultVersion() string {
	switch n {
	case NamespaceJCP:
		return "2.2"
	case NamespaceJakarta:
		return "3.0"
	default:
		return ""
	}
}

// Valid reports whether n is one of the recognised namespaces.
func (n Namespace) Valid() bool {
	return n == NamespaceJCP || n == NamespaceJakarta
}

func (n Namespace) String() string {
	switch n {
	case NamespaceJCP:
		return "jcp"
	case NamespaceJakarta:
		return "jakarta"
	default:
		return fmt.Sprintf("Namespace(%d)", int(n))
	}
}
