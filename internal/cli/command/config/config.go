package config

import (
	"io"
	"os"

	"github.com/thomas-vilte/issue-export/internal/config"
	"github.com/thomas-vilte/issue-export/internal/i18n"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct {
	stdout io.Writer
}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{stdout: os.Stdout}
}

func (c *ConfigCommandFactory) WithOutput(w io.Writer) *ConfigCommandFactory {
	c.stdout = w
	return c
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("config.command_usage", 0, nil),
		Commands: []*cli.Command{
			c.newShowCommand(t, cfg),
			c.newSetCommand(t, cfg),
		},
	}
}
