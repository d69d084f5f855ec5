package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethlo/jpagen/internal/checksum"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/internal/files/scanner"
	"github.com/ethlo/jpagen/internal/logging"
	"github.com/ethlo/jpagen/internal/services"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

type syncFlagValues struct {
	project    projectFlags
	addClasses bool
	dryRun     bool
}

func newSyncCmd() *cobra.Command {
	flags := &syncFlagValues{}

	cmd := &cobra.Command{
		Use:   "sync <project_path>",
		Short: "Add managed classes found on the classpath to persistence.xml",
		Long: `Sync scans the project's classpath for managed JPA classes and brings
META-INF/persistence.xml in line with them.

The sync command:
1. Scans class directories and archives for @Entity, @MappedSuperclass,
   @Embeddable and @Converter (javax.persistence and jakarta.persistence)
2. Creates persistence.xml if it does not exist, with static weaving enabled
3. Warns about classes that are on the classpath but not in persistence.xml
4. Appends those classes unless --add-classes=false
5. Writes the file only when its content changes

Classes listed in persistence.xml but no longer found are kept.

Examples:
  # Sync a Maven project after compilation
  jpagen sync .

  # Restrict to one package tree and preview the result
  jpagen sync . --base-package com.acme.model --dry-run

  # Include dependency jars listed by Maven
  mvn dependency:build-classpath -Dmdep.outputFile=cp.txt
  jpagen sync . --classpath-file cp.txt`,
		Args: RequireProjectPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args, flags)
		},
	}

	addProjectFlags(cmd, &flags.project)
	cmd.Flags().BoolVar(&flags.addClasses, "add-classes", true, "Append classes missing from persistence.xml (false: warn only)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the resulting persistence.xml to stdout instead of writing it")

	return cmd
}

func runSync(cmd *cobra.Command, args []string, flags *syncFlagValues) error {
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
	if cmd.Flags().Changed("add-classes") {
		projectCfg.AddClasses = &flags.addClasses
	}

	syncCfg, err := buildSyncConfig(projectDir, projectCfg.WithDefaults(), logger)
	if err != nil {
		return err
	}
	syncCfg.DryRun = flags.dryRun

	syncer := services.NewSyncService(
		scanner.NewScanner(logger),
		filesystem.NewOSFileSystem(),
		checksum.New(),
		logger,
	)

	result, err := syncer.Sync(cmd.Context(), syncCfg)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if syncCfg.DryRun {
		_, err := cmd.OutOrStdout().Write(result.Rendered)
		return err
	}

	printSyncSummary(cmd, result)
	return nil
}

func printSyncSummary(cmd *cobra.Command, result *jpagen.SyncResult) {
	out := cmd.ErrOrStderr()
	styles := logging.NewStyles(out, logging.ColorEnabled(out))
	check := styles.Paint(styles.Success, "✓")

	switch {
	case !result.Written:
		fmt.Fprintf(out, "%s %s is up to date (%d managed classes found)\n", check, result.DescriptorPath, result.Discovered)
	case result.Created:
		fmt.Fprintf(out, "%s Created %s with %d classes\n", check, result.DescriptorPath, len(result.Added))
	default:
		fmt.Fprintf(out, "%s Updated %s (%d classes added)\n", check, result.DescriptorPath, len(result.Added))
	}
}
