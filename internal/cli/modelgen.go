package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethlo/jpagen/internal/config"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/internal/logging"
	"github.com/ethlo/jpagen/internal/services"
	"github.com/ethlo/jpagen/internal/toolchain"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

type modelGenFlagValues struct {
	project   projectFlags
	source    string
	output    string
	includes  []string
	encoding  string
	processor string
	javac     string
	skip      bool
}

func newModelGenCmd() *cobra.Command {
	flags := &modelGenFlagValues{}

	cmd := &cobra.Command{
		Use:   "modelgen <project_path>",
		Short: "Generate the JPA static metamodel",
		Long: `Modelgen runs javac with the JPA metamodel annotation processor over the
project's sources. Only annotation processing is performed (-proc:only), so
no classes are compiled.

--include restricts processing to the sources directly inside a package;
sub-packages must be listed separately.

Examples:
  jpagen modelgen .
  jpagen modelgen . --include com.acme.model --encoding UTF-8
  jpagen modelgen . --classpath-file cp.txt --output target/generated-sources/jpa`,
		Args: RequireProjectPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelGen(cmd, args, flags)
		},
	}

	addClasspathFlags(cmd, &flags.project)
	cmd.Flags().StringVar(&flags.source, "source", "", "Java source root (default: src/main/java)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Directory for generated sources (default: target/generated-sources/apt)")
	cmd.Flags().StringArrayVar(&flags.includes, "include", nil, "Only process sources in this package (repeatable)")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "Source file encoding passed to javac")
	cmd.Flags().StringVar(&flags.processor, "processor", "", "Annotation processor class (default: "+jpagen.DefaultMetamodelProcessor+")")
	cmd.Flags().StringVar(&flags.javac, "javac", "", "javac executable (default: javac)")
	cmd.Flags().BoolVar(&flags.skip, "skip", false, "Skip metamodel generation")

	return cmd
}

func runModelGen(cmd *cobra.Command, args []string, flags *modelGenFlagValues) error {
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
	applyModelGenFlags(cmd, flags, projectCfg)
	resolved := projectCfg.WithDefaults()

	if resolved.ModelGen.Skip {
		logger.Info("Skipping metamodel generation")
		return nil
	}

	cp, err := resolveClasspath(projectDir, resolved, logger)
	if err != nil {
		return err
	}

	mg := resolved.ModelGen
	genCfg := jpagen.ModelGenConfig{
		Classpath: cp,
		SourceDir: config.Resolve(projectDir, mg.Source),
		OutputDir: config.Resolve(projectDir, mg.Output),
		Includes:  mg.Includes,
		Encoding:  mg.Encoding,
		Processor: mg.Processor,
		JavacBin:  mg.Javac,
		Verbose:   mg.Verbose || verbose,
		NoWarn:    mg.NoWarn,
	}

	generator := toolchain.NewModelGenerator(toolchain.NewExecRunner(), filesystem.NewOSFileSystem(), logger)
	files, err := services.NewModelGenService(generator, logger).Generate(cmd.Context(), genCfg)
	if err != nil {
		return fmt.Errorf("metamodel generation failed: %w", err)
	}

	if len(files) > 0 {
		out := cmd.ErrOrStderr()
		styles := logging.NewStyles(out, logging.ColorEnabled(out))
		fmt.Fprintf(out, "%s Processed %d sources into %s\n", styles.Paint(styles.Success, "✓"), len(files), genCfg.OutputDir)
	}
	return nil
}

func applyModelGenFlags(cmd *cobra.Command, flags *modelGenFlagValues, projectCfg *config.ProjectConfig) {
	changed := cmd.Flags().Changed

	if changed("source") {
		projectCfg.ModelGen.Source = flags.source
	}
	if changed("output") {
		projectCfg.ModelGen.Output = flags.output
	}
	if changed("include") {
		projectCfg.ModelGen.Includes = append([]string(nil), flags.includes...)
	}
	if changed("encoding") {
		projectCfg.ModelGen.Encoding = flags.encoding
	}
	if changed("processor") {
		projectCfg.ModelGen.Processor = flags.processor
	}
	if changed("javac") {
		projectCfg.ModelGen.Javac = flags.javac
	}
	if changed("skip") {
		projectCfg.ModelGen.Skip = flags.skip
	}
}
