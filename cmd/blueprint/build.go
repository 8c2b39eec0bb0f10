package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	"github.com/KyleBlankRollins/blueprint-sub000/pkg/diff"
)

var errStaleOutput = errors.New("theme configuration output is out of date")

type buildOptions struct {
	check bool
}

func newBuildCmd(root *rootFlags) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build [manifest...]",
		Short: "Build the theme configuration from the core plugins and plugin manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringP("out", "o", "", "Write the configuration to this file instead of stdout")
	cmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Compare with the existing output file instead of writing it")
	_ = root.settings.BindPFlag("output.path", cmd.Flags().Lookup("out"))
	_ = root.settings.BindPFlag("output.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runBuild(cmd *cobra.Command, root *rootFlags, opts *buildOptions, args []string) error {
	s, err := openSession(cmd, root, "build theme", args)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg, err := s.builder.Build()
	if err != nil {
		return newCommandError("build theme", "validating the configuration", err, "Run 'blueprint validate' to list every problem.")
	}

	data, err := encodeConfig(cfg, s.settings.Output.Format)
	if err != nil {
		return newCommandError("build theme", "encoding the configuration", err, "Use json or yaml for --format.")
	}

	path := s.settings.Output.Path
	if opts.check {
		return checkOutput(cmd, path, data)
	}
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newCommandError("build theme", "creating output directory", err, "Check the permissions of the output path.")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newCommandError("build theme", "writing "+path, err, "Check the permissions of the output path.")
	}

	s.log.WithFields(map[string]any{"path": path, "variants": len(cfg.Themes)}).Info("theme configuration written")
	fmt.Fprintln(cmd.OutOrStdout(), styles.success.Render("Wrote "+path))
	return nil
}

func encodeConfig(cfg *theme.Config, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return cfg.ToYAML()
	case "json", "":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// checkOutput reports how the file at path differs from data.
func checkOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		return newCommandError("check theme output", "no output path set", errors.New("--check needs --out or output.path"), "Pass --out with the file to compare.")
	}

	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return newCommandError("check theme output", "reading "+path, err, "Check the permissions of the output path.")
	}

	changes := diff.Unified(current, data, path, "build")
	if changes == "" {
		fmt.Fprintln(cmd.OutOrStdout(), styles.success.Render(path+" is up to date"))
		return nil
	}

	inserted, deleted := diff.Stats(current, data)
	fmt.Fprint(cmd.OutOrStdout(), changes)
	fmt.Fprintln(cmd.OutOrStdout(), styles.muted.Render(fmt.Sprintf("%d insertion(s), %d deletion(s)", inserted, deleted)))
	return fmt.Errorf("%w: %s", errStaleOutput, path)
}
