package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/preview"
)

type previewOptions struct {
	variants []string
	width    int
}

func newPreviewCmd(root *rootFlags) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview [manifest...]",
		Short: "Render theme variants as swatch cards in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringSliceVar(&opts.variants, "variant", nil, "Variants to render (default: all)")
	cmd.Flags().IntVar(&opts.width, "width", preview.DefaultCardStyle().Width, "Card width in columns")

	return cmd
}

func runPreview(cmd *cobra.Command, root *rootFlags, opts *previewOptions, args []string) error {
	s, err := openSession(cmd, root, "preview theme", args)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg, err := s.builder.Build()
	if err != nil {
		return newCommandError("preview theme", "building the configuration", err, "Run 'blueprint validate' to list every problem.")
	}

	names := opts.variants
	if len(names) == 0 {
		names = preview.Variants(cfg)
	}

	style := preview.DefaultCardStyle()
	style.Width = opts.width
	for _, name := range names {
		view, err := preview.NewCard(cfg, name).WithStyle(style).View()
		if err != nil {
			return newCommandError("preview theme", "rendering variant "+name, err, "Pick a variant listed by 'blueprint plugins'.")
		}
		fmt.Fprintln(cmd.OutOrStdout(), view)
	}
	return nil
}
