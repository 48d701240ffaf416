package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/vizforge/vizforge/engine/compile"
	"github.com/vizforge/vizforge/engine/config"
	"github.com/vizforge/vizforge/engine/spec"
)

// CompileCmd builds the compile subcommand: read a spec document, normalize
// and compile it, and write the assembled fragment.
func CompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a chart spec into its rendering fragment",
		RunE:  runCompile,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the spec document (YAML or JSON)")
	cmd.Flags().StringP("config", "c", "", "Path to an optional chart config file")
	cmd.Flags().StringP("output", "o", "", "Write the fragment to a file instead of stdout")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runCompile(cmd *cobra.Command, _ []string) error {
	specPath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	doc, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("failed to read spec file: %w", err)
	}
	node, err := spec.Decode(doc)
	if err != nil {
		return err
	}
	if err := spec.Validate(node); err != nil {
		return err
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	fragment, _, err := compile.Compile(node, cfg)
	if err != nil {
		return err
	}

	out, err := yaml.MarshalWithOptions(fragment, yaml.UseJSONMarshaler())
	if err != nil {
		return fmt.Errorf("failed to marshal output fragment: %w", err)
	}
	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
