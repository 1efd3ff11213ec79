package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/issue-export/internal/cli/command/config"
	"github.com/thomas-vilte/issue-export/internal/cli/command/export"
	"github.com/thomas-vilte/issue-export/internal/cli/registry"
	cfg "github.com/thomas-vilte/issue-export/internal/config"
	"github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/git"
	"github.com/thomas-vilte/issue-export/internal/i18n"
	"github.com/thomas-vilte/issue-export/internal/logger"
	"github.com/thomas-vilte/issue-export/internal/ui"
	"github.com/thomas-vilte/issue-export/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	// warnings only until a command applies --debug or --verbose
	logger.Initialize(os.Stderr, false, false)

	app, err := initializeApp()
	if err != nil {
		ui.PrintError(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.ErrLoadConfig.WithError(fmt.Errorf("could not get user home directory: %w", err))
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, errors.ErrLoadConfig.WithError(err)
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, errors.ErrInvalidLanguage.WithError(err).WithContext("language", cfgApp.Language)
	}

	exportFactory := export.NewExportCommandFactory(git.NewGitService())

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("export", exportFactory); err != nil {
		return nil, err
	}

	if err := registerCommand.Register("config", config.NewConfigCommandFactory()); err != nil {
		return nil, err
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:        "issue-export",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Commands:    commands,
		Flags:       exportFactory.CreateRootFlags(cfgApp, translations),
		Action:      exportFactory.CreateAction(cfgApp, translations),

		EnableShellCompletion: true,
	}, nil
}
