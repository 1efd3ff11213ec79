package config

import (
	"context"
	"strings"

	"github.com/thomas-vilte/issue-export/internal/config"
	"github.com/thomas-vilte/issue-export/internal/i18n"
	"github.com/thomas-vilte/issue-export/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintKeyValue(c.stdout, "path", cfg.PathFile)
			ui.PrintKeyValue(c.stdout, "language", cfg.Language)
			ui.PrintKeyValue(c.stdout, "github_token", maskToken(cfg.GitHubToken))
			ui.PrintKeyValue(c.stdout, "base_url", cfg.BaseURL)
			ui.PrintKeyValue(c.stdout, "output_dir", cfg.OutputDir)
			ui.PrintKeyValue(c.stdout, "source", cfg.Source)
			return nil
		},
	}
}

// maskToken keeps the last four characters of long tokens.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
