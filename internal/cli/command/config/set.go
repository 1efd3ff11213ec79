package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/thomas-vilte/issue-export/internal/config"
	"github.com/thomas-vilte/issue-export/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config.set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() != 2 {
				return errors.New(t.GetMessage("config.set_args", 0, nil))
			}
			key, value := command.Args().Get(0), command.Args().Get(1)

			// start from the file so env tokens are never persisted
			stored, err := config.LoadFileConfig(cfg.PathFile)
			if err != nil {
				return err
			}

			if !applySetting(stored, key, value) {
				return errors.New(t.GetMessage("config.unknown_key", 0, map[string]interface{}{"Key": key}))
			}

			if err := config.SaveConfig(stored); err != nil {
				return err
			}
			applySetting(cfg, key, value)

			_, err = fmt.Fprintln(c.stdout, t.GetMessage("config.saved", 0, map[string]interface{}{
				"Key":  key,
				"Path": stored.PathFile,
			}))
			return err
		},
	}
}

func applySetting(cfg *config.Config, key, value string) bool {
	switch key {
	case "language":
		cfg.Language = value
	case "github_token":
		cfg.GitHubToken = value
	case "base_url":
		cfg.BaseURL = value
	case "output_dir":
		cfg.OutputDir = value
	case "source":
		cfg.Source = value
	default:
		return false
	}
	return true
}
