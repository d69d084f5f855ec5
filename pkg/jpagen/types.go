package jpagen

import (
	"errors"
	"fmt"
)

// SyncConfig contains all parameters needed to bring persistence.xml in line
// with the managed classes found on a classpath.
type SyncConfig struct {
	// Classpath is the resolved list of class directories and archives to scan.
	Classpath []string

	// BasePackages restricts scanning to these packages and their sub-packages.
	// Empty means every package is scanned.
	BasePackages []string

	// PersistenceInfoLocation is the directory holding META-INF/persistence.xml.
	PersistenceInfoLocation string

	// UnitName names the persistence unit of a freshly created descriptor.
	UnitName string

	// AddClasses appends discovered classes missing from the descriptor.
	// When false, missing classes are only reported.
	AddClasses bool

	// DryRun renders the descriptor without writing it.
	DryRun bool
}

// Validate checks if the SyncConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *SyncConfig) Validate() error {
	var errs []error

	if c.PersistenceInfoLocation == "" {
		errs = append(errs, fmt.Errorf("PersistenceInfoLocation is required: %w", ErrInvalidConfig))
	}

	if c.UnitName == "" {
		errs = append(errs, fmt.Errorf("UnitName is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// SyncResult describes what a descriptor sync decided and did.
type SyncResult struct {
	// DescriptorPath is the persistence.xml that was read and written.
	DescriptorPath string

	// Discovered is the number of managed classes found on the classpath.
	Discovered int

	// Created is true when no descriptor existed and a new one was built.
	Created bool

	// Undefined lists, sorted, the classes found on the classpath but absent
	// from an existing descriptor.
	Undefined []string

	// Added lists, sorted, the classes appended to the descriptor.
	Added []string

	// Written is true when the descriptor file was (re)written.
	Written bool

	// Rendered is the serialized descriptor.
	Rendered []byte
}

// WeaveConfig contains all parameters needed for a static weaving run.
type WeaveConfig struct {
	// Sync configures the persistence.xml update performed before weaving.
	Sync SyncConfig

	// UpdateDescriptor runs the descriptor sync before weaving.
	UpdateDescriptor bool

	// Source is the directory of compiled classes to weave.
	Source string

	// Target is where woven classes are written. May equal Source.
	Target string

	// LogLevel is a java.util.logging level name passed to the weaver.
	LogLevel string

	// JavaBin is the java executable.
	JavaBin string

	// Skip disables weaving entirely.
	Skip bool
}

// Validate checks if the WeaveConfig has all required fields and valid values.
func (c *WeaveConfig) Validate() error {
	var errs []error

	if c.Source == "" {
		errs = append(errs, fmt.Errorf("Source is required: %w", ErrInvalidConfig))
	}

	if c.Target == "" {
		errs = append(errs, fmt.Errorf("Target is required: %w", ErrInvalidConfig))
	}

	if c.JavaBin == "" {
		errs = append(errs, fmt.Errorf("JavaBin is required: %w", ErrInvalidConfig))
	}

	if c.Sync.PersistenceInfoLocation == "" {
		errs = append(errs, fmt.Errorf("PersistenceInfoLocation is required: %w", ErrInvalidConfig))
	}

	if c.UpdateDescriptor {
		if err := c.Sync.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ModelGenConfig contains all parameters needed to generate JPA metamodel sources.
type ModelGenConfig struct {
	// Classpath is passed to the compiler as -cp.
	Classpath []string

	// SourceDir is the root of the Java sources to process.
	SourceDir string

	// OutputDir receives the generated sources.
	OutputDir string

	// Includes restricts processing to sources directly inside these packages.
	// Empty means every .java file under SourceDir.
	Includes []string

	// Encoding is the source encoding passed to the compiler, if set.
	Encoding string

	// Processor is the annotation processor class.
	Processor string

	// JavacBin is the javac executable.
	JavacBin string

	// Verbose and NoWarn map to the compiler flags of the same name.
	Verbose bool
	NoWarn  bool

	// Skip disables metamodel generation entirely.
	Skip bool
}

// Validate checks if the ModelGenConfig has all required fields and valid values.
func (c *ModelGenConfig) Validate() error {
	var errs []error

	if c.SourceDir == "" {
		errs = append(errs, fmt.Errorf("SourceDir is required: %w", ErrInvalidConfig))
	}

	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}

	if c.Processor == "" {
		errs = append(errs, fmt.Errorf("Processor is required: %w", ErrInvalidConfig))
	}

	if c.JavacBin == "" {
		errs = append(errs, fmt.Errorf("JavacBin is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// DDLConfig contains all parameters needed to generate a schema creation
// script with the persistence provider.
type DDLConfig struct {
	// Classpath holds the compiled classes and the provider.
	Classpath []string

	// BasePackages restricts the managed classes passed to the provider.
	BasePackages []string

	// PersistenceInfoLocation is the directory of the project's own
	// persistence.xml. Its namespace is reused when present.
	PersistenceInfoLocation string

	// WorkDir receives the scratch persistence.xml and the launcher source.
	WorkDir string

	// TargetFile is the DDL script written by the provider.
	TargetFile string

	// DatabaseProductName selects the SQL dialect, for example "PostgreSQL".
	DatabaseProductName string

	// DatabaseMajorVersion and DatabaseMinorVersion refine the dialect.
	DatabaseMajorVersion string
	DatabaseMinorVersion string

	// LogLevel is a java.util.logging level name passed to the provider.
	LogLevel string

	// JavaBin is the java executable.
	JavaBin string

	// Skip disables schema generation entirely.
	Skip bool
}

// Validate checks if the DDLConfig has all required fields and valid values.
func (c *DDLConfig) Validate() error {
	var errs []error

	if c.WorkDir == "" {
		errs = append(errs, fmt.Errorf("WorkDir is required: %w", ErrInvalidConfig))
	}

	if c.TargetFile == "" {
		errs = append(errs, fmt.Errorf("TargetFile is required: %w", ErrInvalidConfig))
	}

	if c.DatabaseProductName == "" {
		errs = append(errs, fmt.Errorf("DatabaseProductName is required: %w", ErrInvalidConfig))
	}

	if c.JavaBin == "" {
		errs = append(errs, fmt.Errorf("JavaBin is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
