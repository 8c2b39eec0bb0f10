package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPluginsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins [manifest...]",
		Short: "List registered plugins and the theme variants each one owns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlugins(cmd, root, args)
		},
	}

	return cmd
}

func runPlugins(cmd *cobra.Command, root *rootFlags, args []string) error {
	s, err := openSession(cmd, root, "list plugins", args)
	if err != nil {
		return err
	}
	defer s.Close()

	owned := s.builder.ThemeVariantsByPlugin()
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tVERSION\tVARIANTS\tDEPENDS ON")

	for _, p := range s.builder.Plugins() {
		meta := p.PluginMetadata()
		deps := make([]string, 0, len(meta.Dependencies))
		for _, dep := range meta.Dependencies {
			label := dep.ID
			if dep.Version != "" {
				label += "@" + dep.Version
			}
			if dep.Optional {
				label += "?"
			}
			deps = append(deps, label)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			meta.ID,
			meta.Version,
			valueOrFallback(strings.Join(owned[meta.ID], ", "), "-"),
			valueOrFallback(strings.Join(deps, ", "), "-"),
		)
		delete(owned, meta.ID)
	}

	// Variants left over belong to owners that are not registered plugins.
	for _, owner := range slices.Sorted(maps.Keys(owned)) {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", owner, "-", strings.Join(owned[owner], ", "), "-")
	}

	return writer.Flush()
}

func valueOrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
