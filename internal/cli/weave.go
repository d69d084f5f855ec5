package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethlo/jpagen/internal/checksum"
	"github.com/ethlo/jpagen/internal/config"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/internal/files/scanner"
	"github.com/ethlo/jpagen/internal/logging"
	"github.com/ethlo/jpagen/internal/services"
	"github.com/ethlo/jpagen/internal/toolchain"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

type weaveFlagValues struct {
	project          projectFlags
	source           string
	target           string
	java             string
	logLevel         string
	updateDescriptor bool
	skip             bool
}

func newWeaveCmd() *cobra.Command {
	flags := &weaveFlagValues{}

	cmd := &cobra.Command{
		Use:   "weave <project_path>",
		Short: "Run EclipseLink static weaving over compiled classes",
		Long: `Weave runs the EclipseLink static weaver over the project's compiled
classes.

By default persistence.xml is synced first, exactly as "jpagen sync" does,
so the weaver sees every managed class. Disable this with
--update-persistence-xml=false.

The weaver is started as:
  java -cp <classpath> org.eclipse.persistence.tools.weaving.jpa.StaticWeave \
    -loglevel <level> -persistenceinfo <dir> <source> <target>

Examples:
  jpagen weave .
  jpagen weave . --log-level FINE --target target/woven-classes
  jpagen weave . --skip`,
		Args: RequireProjectPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeave(cmd, args, flags)
		},
	}

	addProjectFlags(cmd, &flags.project)
	cmd.Flags().StringVar(&flags.source, "source", "", "Directory of classes to weave (default: target/classes)")
	cmd.Flags().StringVar(&flags.target, "target", "", "Directory woven classes are written to (default: same as --source)")
	cmd.Flags().StringVar(&flags.java, "java", "", "java executable (default: java)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Weaver log level: OFF, SEVERE, WARNING, INFO, CONFIG, FINE, FINER, FINEST, ALL (default: WARNING)")
	cmd.Flags().BoolVar(&flags.updateDescriptor, "update-persistence-xml", true, "Sync persistence.xml before weaving")
	cmd.Flags().BoolVar(&flags.skip, "skip", false, "Skip weaving")

	return cmd
}

func runWeave(cmd *cobra.Command, args []string, flags *weaveFlagValues) error {
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
	applyWeaveFlags(cmd, flags, projectCfg)
	resolved := projectCfg.WithDefaults()

	if resolved.Weave.Skip {
		logger.Info("Skipping static weaving")
		return nil
	}

	syncCfg, err := buildSyncConfig(projectDir, resolved, logger)
	if err != nil {
		return err
	}

	weaveCfg := jpagen.WeaveConfig{
		Sync:             syncCfg,
		UpdateDescriptor: resolved.UpdateDescriptorEnabled(),
		Source:           config.Resolve(projectDir, resolved.Weave.Source),
		Target:           config.Resolve(projectDir, resolved.Weave.Target),
		LogLevel:         resolved.LogLevel,
		JavaBin:          resolved.Weave.Java,
	}

	fsProvider := filesystem.NewOSFileSystem()
	syncer := services.NewSyncService(scanner.NewScanner(logger), fsProvider, checksum.New(), logger)
	weaver := toolchain.NewWeaver(toolchain.NewExecRunner(), fsProvider, logger)

	if _, err := services.NewWeaveService(syncer, weaver, logger).Weave(cmd.Context(), weaveCfg); err != nil {
		return fmt.Errorf("weave failed: %w", err)
	}

	out := cmd.ErrOrStderr()
	styles := logging.NewStyles(out, logging.ColorEnabled(out))
	fmt.Fprintf(out, "%s Woven classes written to %s\n", styles.Paint(styles.Success, "✓"), weaveCfg.Target)
	return nil
}

func applyWeaveFlags(cmd *cobra.Command, flags *weaveFlagValues, projectCfg *config.ProjectConfig) {
	changed := cmd.Flags().Changed

	if changed("source") {
		projectCfg.Weave.Source = flags.source
	}
	if changed("target") {
		projectCfg.Weave.Target = flags.target
	}
	if changed("java") {
		projectCfg.Weave.Java = flags.java
	}
	if changed("log-level") {
		projectCfg.LogLevel = flags.logLevel
	}
	if changed("update-persistence-xml") {
		projectCfg.UpdatePersistenceXML = &flags.updateDescriptor
	}
	if changed("skip") {
		projectCfg.Weave.Skip = flags.skip
	}
}
