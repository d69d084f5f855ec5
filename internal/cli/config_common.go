package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ethlo/jpagen/internal/classpath"
	"github.com/ethlo/jpagen/internal/config"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// projectFlags holds the flag values shared by commands that work on a
// project's classpath and persistence.xml.
type projectFlags struct {
	classpath       []string
	classpathFile   string
	basePackages    []string
	unitName        string
	persistenceInfo string
}

func addClasspathFlags(cmd *cobra.Command, f *projectFlags) {
	cmd.Flags().StringArrayVar(&f.classpath, "classpath", nil, "Classpath entry to scan, repeatable or path-list separated (default: target/classes)")
	cmd.Flags().StringVar(&f.classpathFile, "classpath-file", "", "File listing further classpath entries, e.g. from mvn dependency:build-classpath")
}

func addProjectFlags(cmd *cobra.Command, f *projectFlags) {
	addClasspathFlags(cmd, f)
	cmd.Flags().StringArrayVar(&f.basePackages, "base-package", nil, "Only consider classes in this package and its sub-packages (repeatable)")
	cmd.Flags().StringVar(&f.unitName, "unit-name", "", "Persistence unit name used when persistence.xml is created (default: default)")
	cmd.Flags().StringVar(&f.persistenceInfo, "persistence-info", "", "Directory containing META-INF/persistence.xml (default: target/classes)")
}

// requireProjectDir returns the absolute path of an existing project directory.
func requireProjectDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid project path %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project directory %s: %w", path, jpagen.ErrInvalidConfig)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path %s is not a directory: %w", path, jpagen.ErrInvalidConfig)
	}
	return abs, nil
}

// loadProjectConfig loads .env, then jpagen.yaml, then applies environment
// overrides. A missing jpagen.yaml yields an empty configuration.
func loadProjectConfig(projectDir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.LoadOrDefault(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	projectCfg.ApplyEnv(os.LookupEnv)
	return projectCfg, nil
}

// applyProjectFlags overrides projectCfg with the flags that were set on the
// command line, then re-validates the combination.
func applyProjectFlags(cmd *cobra.Command, f *projectFlags, projectCfg *config.ProjectConfig) error {
	flags := cmd.Flags()

	if flags.Changed("classpath") {
		var entries []string
		for _, v := range f.classpath {
			entries = append(entries, classpath.Split(v)...)
		}
		projectCfg.Classpath = entries
	}
	if flags.Changed("classpath-file") {
		projectCfg.ClasspathFile = f.classpathFile
	}
	if flags.Changed("base-package") {
		packages := append([]string(nil), f.basePackages...)
		projectCfg.BasePackages = &packages
		projectCfg.BasePackage = ""
	}
	if flags.Changed("unit-name") {
		projectCfg.UnitName = f.unitName
	}
	if flags.Changed("persistence-info") {
		projectCfg.PersistenceInfo = f.persistenceInfo
	}

	return projectCfg.Validate()
}

// resolveClasspath returns the existing classpath entries of resolved, with
// the entries of its classpath file appended.
func resolveClasspath(projectDir string, resolved *config.ProjectConfig, logger jpagen.Logger) ([]string, error) {
	resolver := classpath.NewResolver(logger)

	entries := append([]string(nil), resolved.Classpath...)
	if resolved.ClasspathFile != "" {
		fileEntries, err := resolver.ReadClasspathFile(config.Resolve(projectDir, resolved.ClasspathFile))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", jpagen.ErrInvalidConfig, err)
		}
		entries = append(entries, fileEntries...)
	}

	cp, err := resolver.Resolve(projectDir, entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", jpagen.ErrInvalidConfig, err)
	}
	logger.Verbose("Classpath: %s", classpath.Join(cp))
	return cp, nil
}

// buildSyncConfig turns a defaulted project configuration into a SyncConfig.
func buildSyncConfig(projectDir string, resolved *config.ProjectConfig, logger jpagen.Logger) (jpagen.SyncConfig, error) {
	cp, err := resolveClasspath(projectDir, resolved, logger)
	if err != nil {
		return jpagen.SyncConfig{}, err
	}

	return jpagen.SyncConfig{
		Classpath:               cp,
		BasePackages:            resolved.Packages(),
		PersistenceInfoLocation: config.Resolve(projectDir, resolved.PersistenceInfo),
		UnitName:                resolved.UnitName,
		AddClasses:              resolved.AddClassesEnabled(),
	}, nil
}
