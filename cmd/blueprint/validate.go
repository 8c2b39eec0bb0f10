package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/validation"
)

var errInvalidTheme = errors.New("theme configuration is invalid")

func newValidateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [manifest...]",
		Short: "Report every completeness, reference and contrast problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, root, args)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, root *rootFlags, args []string) error {
	s, err := openSession(cmd, root, "validate theme", args)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.builder.Validate()
	if err != nil {
		return newCommandError("validate theme", "assembling the configuration", err, "Register at least one plugin that provides design tokens, such as the core plugins.")
	}

	out := cmd.OutOrStdout()
	if result.Valid {
		fmt.Fprintln(out, styles.success.Render("Theme configuration is valid."))
		return nil
	}

	fmt.Fprintln(out, styles.heading.Render(fmt.Sprintf("%d problem(s) found:", len(result.Issues))))
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "  %s %s\n", styles.errorText.Render(issueLabel(issue)), issue.Message)
	}
	return fmt.Errorf("%w: %d problem(s)", errInvalidTheme, len(result.Issues))
}

func issueLabel(issue validation.Issue) string {
	if issue.Plugin != "" {
		return fmt.Sprintf("[%s %s]", issue.Type, issue.Plugin)
	}
	return fmt.Sprintf("[%s]", issue.Type)
}
