// Package config reads the jpagen project file (jpagen.yaml) and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "jpagen.yaml"

// Maven layout defaults, relative to the project directory.
const (
	DefaultClassesDir      = "target/classes"
	DefaultSourceDir       = "src/main/java"
	DefaultGeneratedSrcDir = "target/generated-sources/apt"
	DefaultDDLFile         = "target/classes/ddl.sql"
	DefaultDDLWorkDir      = "target/jpagen-ddl"
	DefaultJava            = "java"
	DefaultJavac           = "javac"
)

// Environment variables that override the project file.
const (
	EnvUnitName  = "JPAGEN_UNIT_NAME"
	EnvClasspath = "JPAGEN_CLASSPATH"
	EnvLogLevel  = "JPAGEN_LOG_LEVEL"
	EnvJava      = "JPAGEN_JAVA"
	EnvJavac     = "JPAGEN_JAVAC"
)

type WeaveConfig struct {
	Source string `yaml:"source,omitempty"`
	Target string `yaml:"target,omitempty"`
	Java   string `yaml:"java,omitempty"`
	Skip   bool   `yaml:"skip,omitempty"`
}

type ModelGenConfig struct {
	Source    string   `yaml:"source,omitempty"`
	Output    string   `yaml:"output,omitempty"`
	Includes  []string `yaml:"includes,omitempty"`
	Encoding  string   `yaml:"encoding,omitempty"`
	Processor string   `yaml:"processor,omitempty"`
	Javac     string   `yaml:"javac,omitempty"`
	Verbose   bool     `yaml:"verbose,omitempty"`
	NoWarn    bool     `yaml:"nowarn,omitempty"`
	Skip      bool     `yaml:"skip,omitempty"`
}

type DDLConfig struct {
	DatabaseProductName  string `yaml:"database_product_name,omitempty"`
	DatabaseMajorVersion string `yaml:"database_major_version,omitempty"`
	DatabaseMinorVersion string `yaml:"database_minor_version,omitempty"`
	Target               string `yaml:"target,omitempty"`
	WorkDir              string `yaml:"work_dir,omitempty"`
	Java                 string `yaml:"java,omitempty"`
	Skip                 bool   `yaml:"skip,omitempty"`
}

type ProjectConfig struct {
	UnitName        string    `yaml:"unit_name,omitempty"`
	Classpath       []string  `yaml:"classpath,omitempty"`
	ClasspathFile   string    `yaml:"classpath_file,omitempty"`
	BasePackage     string    `yaml:"base_package,omitempty"`
	BasePackages    *[]string `yaml:"base_packages,omitempty"`
	PersistenceInfo string    `yaml:"persistence_info,omitempty"`

	AddClasses           *bool  `yaml:"add_classes,omitempty"`
	UpdatePersistenceXML *bool  `yaml:"update_persistence_xml,omitempty"`
	LogLevel             string `yaml:"log_level,omitempty"`

	Weave    WeaveConfig    `yaml:"weave,omitempty"`
	ModelGen ModelGenConfig `yaml:"modelgen,omitempty"`
	DDL      DDLConfig      `yaml:"ddl,omitempty"`
}

// Load reads jpagen.yaml from projectDir.
func Load(projectDir string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", jpagen.ErrInvalidConfig, configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

// LoadOrDefault is Load with a missing file treated as an empty one.
func LoadOrDefault(projectDir string) (*ProjectConfig, error) {
	cfg, err := Load(projectDir)
	if errors.Is(err, ErrConfigNotFound) {
		return &ProjectConfig{}, nil
	}
	return cfg, err
}

// Validate checks settings that cannot be combined.
func (c *ProjectConfig) Validate() error {
	var errs []error

	if c.BasePackages != nil {
		if len(*c.BasePackages) == 0 {
			errs = append(errs, fmt.Errorf("base_packages must not be empty when set: %w", jpagen.ErrInvalidConfig))
		}
		if c.BasePackage != "" {
			errs = append(errs, fmt.Errorf("base_package and base_packages are mutually exclusive: %w", jpagen.ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// Packages returns the configured package filters.
func (c *ProjectConfig) Packages() []string {
	if c.BasePackages != nil {
		return *c.BasePackages
	}
	if c.BasePackage != "" {
		return []string{c.BasePackage}
	}
	return nil
}

// AddClassesEnabled reports add_classes, which defaults to true.
func (c *ProjectConfig) AddClassesEnabled() bool {
	return c.AddClasses == nil || *c.AddClasses
}

// UpdateDescriptorEnabled reports update_persistence_xml, which defaults to true.
func (c *ProjectConfig) UpdateDescriptorEnabled() bool {
	return c.UpdatePersistenceXML == nil || *c.UpdatePersistenceXML
}

// ApplyEnv overrides settings from the environment. lookup is usually
// os.LookupEnv.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvUnitName); ok && v != "" {
		c.UnitName = v
	}
	if v, ok := lookup(EnvClasspath); ok && v != "" {
		c.Classpath = filepath.SplitList(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvJava); ok && v != "" {
		c.Weave.Java = v
		c.DDL.Java = v
	}
	if v, ok := lookup(EnvJavac); ok && v != "" {
		c.ModelGen.Javac = v
	}
}

// WithDefaults returns a copy with every unset value filled in.
func (c *ProjectConfig) WithDefaults() *ProjectConfig {
	out := *c

	out.UnitName = orDefault(out.UnitName, jpagen.DefaultUnitName)
	out.PersistenceInfo = orDefault(out.PersistenceInfo, DefaultClassesDir)
	out.LogLevel = orDefault(out.LogLevel, jpagen.DefaultLogLevel)
	if len(out.Classpath) == 0 {
		out.Classpath = []string{DefaultClassesDir}
	}

	out.Weave.Source = orDefault(out.Weave.Source, DefaultClassesDir)
	out.Weave.Target = orDefault(out.Weave.Target, out.Weave.Source)
	out.Weave.Java = orDefault(out.Weave.Java, DefaultJava)

	out.ModelGen.Source = orDefault(out.ModelGen.Source, DefaultSourceDir)
	out.ModelGen.Output = orDefault(out.ModelGen.Output, DefaultGeneratedSrcDir)
	out.ModelGen.Processor = orDefault(out.ModelGen.Processor, jpagen.DefaultMetamodelProcessor)
	out.ModelGen.Javac = orDefault(out.ModelGen.Javac, DefaultJavac)

	out.DDL.Target = orDefault(out.DDL.Target, DefaultDDLFile)
	out.DDL.WorkDir = orDefault(out.DDL.WorkDir, DefaultDDLWorkDir)
	out.DDL.Java = orDefault(out.DDL.Java, DefaultJava)

	return &out
}

// Resolve makes p absolute against projectDir. Absolute paths are kept.
func Resolve(projectDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectDir, filepath.FromSlash(p))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
