package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethlo/jpagen/internal/config"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/internal/files/scanner"
	"github.com/ethlo/jpagen/internal/logging"
	"github.com/ethlo/jpagen/internal/services"
	"github.com/ethlo/jpagen/internal/toolchain"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

type ddlFlagValues struct {
	project      projectFlags
	productName  string
	majorVersion string
	minorVersion string
	target       string
	workDir      string
	java         string
	logLevel     string
	skip         bool
}

func newDDLCmd() *cobra.Command {
	flags := &ddlFlagValues{}

	cmd := &cobra.Command{
		Use:   "ddl <project_path>",
		Short: "Generate a schema creation script with the persistence provider",
		Long: `DDL has the persistence provider write the CREATE script for the managed
classes on the classpath. No database connection is opened: the SQL dialect
is selected by --database-product-name and the optional version flags.

The managed classes are declared in a scratch persistence unit below
--work-dir; the project's persistence.xml is not modified. The provider is
started through the JDK source launcher (Java 11 or later):
  java -cp <work-dir>:<classpath> <work-dir>/GenerateSchema.java jpagen-ddl ...

Examples:
  jpagen ddl . --database-product-name PostgreSQL
  jpagen ddl . --database-product-name MySQL --database-major-version 8 --target target/sql/create.sql
  jpagen ddl . --base-package com.acme.model --database-product-name Oracle`,
		Args: RequireProjectPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDDL(cmd, args, flags)
		},
	}

	addProjectFlags(cmd, &flags.project)
	cmd.Flags().StringVar(&flags.productName, "database-product-name", "", "Database product name selecting the SQL dialect (required)")
	cmd.Flags().StringVar(&flags.majorVersion, "database-major-version", "", "Database major version")
	cmd.Flags().StringVar(&flags.minorVersion, "database-minor-version", "", "Database minor version")
	cmd.Flags().StringVar(&flags.target, "target", "", "DDL script file (default: target/classes/ddl.sql)")
	cmd.Flags().StringVar(&flags.workDir, "work-dir", "", "Directory for the scratch persistence unit (default: target/jpagen-ddl)")
	cmd.Flags().StringVar(&flags.java, "java", "", "java executable (default: java)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Provider log level: OFF, SEVERE, WARNING, INFO, CONFIG, FINE, FINER, FINEST, ALL (default: WARNING)")
	cmd.Flags().BoolVar(&flags.skip, "skip", false, "Skip DDL generation")

	return cmd
}

func runDDL(cmd *cobra.Command, args []string, flags *ddlFlagValues) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerWithWriter(verbose, cmd.ErrOrStderr())

	projectDir, err := requireProjectDir(args[0])
	if err != nil {
		return err
	}

	projectCfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return err
	}
	if err := applyProjectFlags(cmd, &flags.project, projectCfg); err != nil {
		return err
	}
	applyDDLFlags(cmd, flags, projectCfg)
	resolved := projectCfg.WithDefaults()

	if resolved.DDL.Skip {
		logger.Info("Skipping DDL generation")
		return nil
	}

	cp, err := resolveClasspath(projectDir, resolved, logger)
	if err != nil {
		return err
	}

	d := resolved.DDL
	ddlCfg := jpagen.DDLConfig{
		Classpath:               cp,
		BasePackages:            resolved.Packages(),
		PersistenceInfoLocation: config.Resolve(projectDir, resolved.PersistenceInfo),
		WorkDir:                 config.Resolve(projectDir, d.WorkDir),
		TargetFile:              config.Resolve(projectDir, d.Target),
		DatabaseProductName:     d.DatabaseProductName,
		DatabaseMajorVersion:    d.DatabaseMajorVersion,
		DatabaseMinorVersion:    d.DatabaseMinorVersion,
		LogLevel:                resolved.LogLevel,
		JavaBin:                 d.Java,
	}

	fsProvider := filesystem.NewOSFileSystem()
	generator := toolchain.NewSchemaGenerator(toolchain.NewExecRunner(), fsProvider, logger)
	svc := services.NewDDLService(scanner.NewScanner(logger), fsProvider, generator, logger)

	classes, err := svc.Generate(cmd.Context(), ddlCfg)
	if err != nil {
		return fmt.Errorf("ddl generation failed: %w", err)
	}

	out := cmd.ErrOrStderr()
	styles := logging.NewStyles(out, logging.ColorEnabled(out))
	fmt.Fprintf(out, "%s DDL for %d managed classes written to %s\n", styles.Paint(styles.Success, "✓"), len(classes), ddlCfg.TargetFile)
	return nil
}

func applyDDLFlags(cmd *cobra.Command, flags *ddlFlagValues, projectCfg *config.ProjectConfig) {
	changed := cmd.Flags().Changed

	if changed("database-product-name") {
		projectCfg.DDL.DatabaseProductName = flags.productName
	}
	if changed("database-major-version") {
		projectCfg.DDL.DatabaseMajorVersion = flags.majorVersion
	}
	if changed("database-minor-version") {
		projectCfg.DDL.DatabaseMinorVersion = flags.minorVersion
	}
	if changed("target") {
		projectCfg.DDL.Target = flags.target
	}
	if changed("work-dir") {
		projectCfg.DDL.WorkDir = flags.workDir
	}
	if changed("java") {
		projectCfg.DDL.Java = flags.java
	}
	if changed("log-level") {
		projectCfg.LogLevel = flags.logLevel
	}
	if changed("skip") {
		projectCfg.DDL.Skip = flags.skip
	}
}
