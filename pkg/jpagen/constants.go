package jpagen

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Task completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitDescriptorError = 11 // persistence.xml is malformed or not well-formed XML
	ExitIOError         = 12 // Filesystem read/write failure
	ExitScanFailed      = 13 // Classpath scanning failed
	ExitToolFailed      = 14 // External tool (java, javac) failed
	ExitSourceMissing   = 15 // Weave source directory does not exist
)

const (
	// DefaultProvider is the persistence provider written into new descriptors.
	DefaultProvider = "org.eclipse.persistence.jpa.PersistenceProvider"

	// WeavingProperty is the EclipseLink property that selects the weaving mode.
	WeavingProperty = "eclipselink.weaving"

	// WeavingStatic is the WeavingProperty value for build-time weaving.
	WeavingStatic = "static"

	// DescriptorRelativePath is where persistence.xml lives below the
	// persistence info location (usually the classes output directory).
	DescriptorRelativePath = "META-INF/persistence.xml"

	// DefaultLogLevel is the java.util.logging level passed to delegated tools.
	DefaultLogLevel = "WARNING"

	// DefaultUnitName is used when neither configuration nor flags name the unit.
	DefaultUnitName = "default"

	// StaticWeaveMainClass is the entry point of EclipseLink's static weaver.
	StaticWeaveMainClass = "org.eclipse.persistence.tools.weaving.jpa.StaticWeave"

	// SchemaUnitName names the scratch persistence unit used for DDL generation.
	SchemaUnitName = "jpagen-ddl"

	// DefaultMetamodelProcessor generates the JPA metamodel without needing persistence.xml.
	DefaultMetamodelProcessor = "org.hibernate.jpamodelgen.JPAMetaModelEntityProcessor"
)

// ManagedAnnotations lists the class-level annotations that make a class a
// managed class. Both the javax and jakarta namespaces are recognised.
var ManagedAnnotations = []string{
	"jakarta.persistence.Entity",
	"jakarta.persistence.MappedSuperclass",
	"jakarta.persistence.Embeddable",
	"jakarta.persistence.Converter",
	"javax.persistence.Entity",
	"javax.persistence.MappedSuperclass",
	"javax.persistence.Embeddable",
	"javax.persistence.Converter",
}
