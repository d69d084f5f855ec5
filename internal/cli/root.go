package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

const rootLong = `jpagen keeps a JPA persistence.xml in step with the managed classes a
build produces, and drives the build-time tools that depend on it.

It scans compiled classes and archives for @Entity, @MappedSuperclass,
@Embeddable and @Converter, lists them in META-INF/persistence.xml, runs
EclipseLink static weaving, generates the JPA metamodel, and has the
provider write the schema DDL script.

Settings are read from jpagen.yaml in the project directory, then from the
environment (JPAGEN_*), then from flags. A .env file in the working directory
is loaded first.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - persistence.xml is malformed or not well-formed XML
  12 - persistence.xml is missing or could not be read or written
  13 - Classpath scan failed
  14 - External tool (java, javac) failed
  15 - Weave source directory does not exist`

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "jpagen",
		Short:        "Keep persistence.xml in sync with your JPA classes",
		Long:         rootLong,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	cmd.AddCommand(
		newSyncCmd(),
		newScanCmd(),
		newValidateCmd(),
		newWeaveCmd(),
		newModelGenCmd(),
		newDDLCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context so running scans and external tools stop.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	f := cmd.Flag("verbose")
	if f == nil {
		return false
	}
	verbose, err := strconv.ParseBool(f.Value.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
