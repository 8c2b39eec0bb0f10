package main

import (
	"github.com/spf13/cobra"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/appconfig"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/builder"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/logger"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	coreplugin "github.com/KyleBlankRollins/blueprint-sub000/internal/plugins/core"
	manifestplugin "github.com/KyleBlankRollins/blueprint-sub000/internal/plugins/manifest"
)

// session is one command invocation: resolved settings, a logger and a builder
// with every requested plugin registered.
type session struct {
	settings *appconfig.Config
	log      *logger.Logger
	builder  *builder.Builder
}

func openSession(cmd *cobra.Command, flags *rootFlags, operation string, args []string) (*session, error) {
	settings, err := appconfig.Load(flags.settings, flags.configPath)
	if err != nil {
		return nil, newCommandError(operation, "loading settings", err, "Check the settings file and BLUEPRINT_* environment variables.")
	}

	level := settings.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: settings.HumanLogs(isTerminal(cmd.ErrOrStderr())),
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, newCommandError(operation, "creating logger", err, "Use one of trace, debug, info, warn or error for log.level.")
	}

	var plugins []plugin.Plugin
	if settings.Core.Enabled && !flags.noCore {
		plugins = append(plugins, coreplugin.NewTokens(), coreplugin.NewThemes())
	}

	paths := append(append([]string{}, settings.Manifests...), args...)
	for _, path := range paths {
		p, err := manifestplugin.Load(path)
		if err != nil {
			return nil, newCommandError(operation, "loading plugin manifest "+path, err, "Fix the manifest and run the command again.")
		}
		plugins = append(plugins, p)
	}

	if settings.SortDependencies {
		plugins, err = plugin.SortByDependencies(plugins)
		if err != nil {
			return nil, newCommandError(operation, "ordering plugins", err, "Remove the dependency cycle or supply the missing plugins.")
		}
	}

	b := builder.New(builder.WithLogger(log))
	for _, p := range plugins {
		if err := b.Use(p); err != nil {
			b.Dispose()
			return nil, newCommandError(operation, "registering plugin "+p.PluginMetadata().ID, err, "Check the plugin's colors and theme variants.")
		}
	}

	log.WithFields(map[string]any{"plugins": len(plugins), "manifests": len(paths)}).Debug("plugins registered")
	return &session{settings: settings, log: log, builder: b}, nil
}

func (s *session) Close() {
	s.builder.Dispose()
}
