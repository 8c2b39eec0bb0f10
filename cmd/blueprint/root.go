package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/appconfig"
)

type rootFlags struct {
	configPath string
	verbose    bool
	noCore     bool
	settings   *viper.Viper
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{settings: appconfig.New()}

	cmd := &cobra.Command{
		Use:           "blueprint",
		Short:         "Blueprint composes theme plugins into a validated theme configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Settings file (default: ./"+appconfig.DefaultFile+" when present)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.noCore, "no-core", false, "Do not register the built-in core plugins")
	cmd.PersistentFlags().Bool("sort", true, "Order plugins by their declared dependencies")
	_ = flags.settings.BindPFlag("sort_dependencies", cmd.PersistentFlags().Lookup("sort"))

	cmd.AddCommand(newBuildCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newPluginsCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
