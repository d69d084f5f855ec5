package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethlo/jpagen/internal/files/scanner"
	"github.com/ethlo/jpagen/internal/logging"
)

type scanFlagValues struct {
	project projectFlags
	json    bool
}

// scanOutput is the --json form of a scan.
type scanOutput struct {
	Classpath []string `json:"classpath"`
	Packages  []string `json:"packages,omitempty"`
	Classes   []string `json:"classes"`
	Count     int      `json:"count"`
}

func newScanCmd() *cobra.Command {
	flags := &scanFlagValues{}

	cmd := &cobra.Command{
		Use:   "scan <project_path>",
		Short: "List managed JPA classes found on the classpath",
		Long: `Scan lists the managed classes jpagen would put in persistence.xml,
without reading or writing persistence.xml.

Class names go to stdout, one per line, sorted.

Examples:
  jpagen scan .
  jpagen scan . --base-package com.acme.model --json`,
		Args: RequireProjectPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	addProjectFlags(cmd, &flags.project)
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output scan results as JSON")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, flags *scanFlagValues) error {
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
	resolved := projectCfg.WithDefaults()

	cp, err := resolveClasspath(projectDir, resolved, logger)
	if err != nil {
		return err
	}
	packages := resolved.Packages()

	classes, err := scanner.NewScanner(logger).Scan(cmd.Context(), cp, packages)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	names := classes.Sorted()

	out := cmd.OutOrStdout()
	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(scanOutput{
			Classpath: nonNil(cp),
			Packages:  packages,
			Classes:   nonNil(names),
			Count:     len(names),
		})
	}

	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	logger.Info("Found %d managed classes", len(names))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
