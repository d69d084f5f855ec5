package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethlo/jpagen/internal/descriptor"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/internal/logging"
)

type validateFlagValues struct {
	json bool
}

// validateOutput is the --json form of a validated descriptor.
type validateOutput struct {
	Path       string            `json:"path"`
	Namespace  string            `json:"namespace"`
	Version    string            `json:"version"`
	Unit       string            `json:"unit"`
	Provider   string            `json:"provider,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Classes    []string          `json:"classes"`
}

func newValidateCmd() *cobra.Command {
	flags := &validateFlagValues{}

	cmd := &cobra.Command{
		Use:   "validate <descriptor>",
		Short: "Check that a persistence.xml can be managed by jpagen",
		Long: `Validate parses a persistence.xml and reports its persistence unit.

The file must be well-formed XML in the javax (xmlns.jcp.org) or jakarta
(jakarta.ee) persistence namespace and hold exactly one named
persistence-unit. Nothing is written.

Examples:
  jpagen validate target/classes/META-INF/persistence.xml
  jpagen validate src/main/resources/META-INF/persistence.xml --json`,
		Args: RequireDescriptorPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "Output the parsed persistence unit as JSON")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, flags *validateFlagValues) error {
	path := args[0]

	d, _, err := descriptor.Load(filesystem.NewOSFileSystem(), path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if flags.json {
		props := make(map[string]string, len(d.Unit.Properties))
		for _, p := range d.Unit.Properties {
			props[p.Name] = p.Value
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(validateOutput{
			Path:       path,
			Namespace:  d.Namespace.URI(),
			Version:    d.Version,
			Unit:       d.Unit.Name,
			Provider:   d.Unit.Provider,
			Properties: props,
			Classes:    nonNil(d.Unit.Classes.Sorted()),
		})
	}

	out := cmd.ErrOrStderr()
	styles := logging.NewStyles(out, logging.ColorEnabled(out))
	fmt.Fprintf(out, "%s %s is valid\n", styles.Paint(styles.Success, "✓"), path)
	fmt.Fprintf(out, "  Namespace: %s (version %s)\n", d.Namespace.URI(), d.Version)
	fmt.Fprintf(out, "  Unit: %s\n", d.Unit.Name)
	if d.Unit.Provider != "" {
		fmt.Fprintf(out, "  Provider: %s\n", d.Unit.Provider)
	}
	fmt.Fprintf(out, "  Classes: %d\n", d.Unit.Classes.Len())
	if getVerboseFlag(cmd) {
		for _, name := range d.Unit.Classes.Sorted() {
			fmt.Fprintf(out, "    %s\n", styles.Paint(styles.Muted, name))
		}
	}
	return nil
}
