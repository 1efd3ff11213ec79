package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/thomas-vilte/issue-export/internal/config"
	"github.com/thomas-vilte/issue-export/internal/errors"
	issueexport "github.com/thomas-vilte/issue-export/internal/export"
	"github.com/thomas-vilte/issue-export/internal/i18n"
	"github.com/thomas-vilte/issue-export/internal/logger"
	"github.com/thomas-vilte/issue-export/internal/services"
	"github.com/thomas-vilte/issue-export/internal/ui"
	"github.com/thomas-vilte/issue-export/internal/vcs"
	"github.com/thomas-vilte/issue-export/internal/vcs/ghcli"
	"github.com/thomas-vilte/issue-export/internal/vcs/github"
	"github.com/thomas-vilte/issue-export/internal/vcs/jsonl"
	"github.com/urfave/cli/v3"
)

// SourceFactory builds the issue source named by --source.
type SourceFactory func(cfg *config.Config, source, input string) (vcs.IssueSource, error)

type ExportCommandFactory struct {
	resolver  vcs.RepoResolver
	newSource SourceFactory
	fs        issueexport.FileSystem
	stdout    io.Writer
	stderr    io.Writer
	now       func() time.Time
}

func NewExportCommandFactory(resolver vcs.RepoResolver) *ExportCommandFactory {
	return &ExportCommandFactory{
		resolver:  resolver,
		newSource: NewIssueSource,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		now:       time.Now,
	}
}

func (f *ExportCommandFactory) WithSourceFactory(newSource SourceFactory) *ExportCommandFactory {
	f.newSource = newSource
	return f
}

func (f *ExportCommandFactory) WithFileSystem(fs issueexport.FileSystem) *ExportCommandFactory {
	f.fs = fs
	return f
}

// WithOutput redirects the summary line (stdout) and logs (stderr).
func (f *ExportCommandFactory) WithOutput(stdout, stderr io.Writer) *ExportCommandFactory {
	f.stdout = stdout
	f.stderr = stderr
	return f
}

func (f *ExportCommandFactory) WithClock(now func() time.Time) *ExportCommandFactory {
	f.now = now
	return f
}

func (f *ExportCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   t.GetMessage("export.command_usage", 0, nil),
		Flags:   f.createFlags(cfg, t, false),
		Action:  f.CreateAction(cfg, t),
	}
}

// CreateRootFlags returns the export flags for the root command, which exports
// by default. They stay local so subcommands do not inherit duplicates.
func (f *ExportCommandFactory) CreateRootFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return f.createFlags(cfg, t, true)
}

func (f *ExportCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations, local bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   t.GetMessage("export.flag_repo", 0, nil),
			Local:   local,
		},
		&cli.StringFlag{
			Name:    "state",
			Aliases: []string{"s"},
			Value:   "open",
			Usage:   t.GetMessage("export.flag_state", 0, nil),
			Local:   local,
		},
		&cli.BoolFlag{
			Name:  "include-prs",
			Usage: t.GetMessage("export.flag_include_prs", 0, nil),
			Local: local,
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Value:   cfg.OutputDir,
			Usage:   t.GetMessage("export.flag_output_dir", 0, nil),
			Local:   local,
		},
		&cli.StringFlag{
			Name:  "source",
			Value: cfg.Source,
			Usage: t.GetMessage("export.flag_source", 0, nil),
			Local: local,
		},
		&cli.StringFlag{
			Name:  "input",
			Usage: t.GetMessage("export.flag_input", 0, nil),
			Local: local,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: t.GetMessage("export.flag_debug", 0, nil),
			Local: local,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: t.GetMessage("export.flag_verbose", 0, nil),
			Local: local,
		},
	}
}

func (f *ExportCommandFactory) CreateAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		debug := command.Bool("debug")
		verbose := command.Bool("verbose")
		ctx = logger.WithLogger(ctx, logger.Initialize(f.stderr, debug, verbose))
		ui.ShowSuggestions(debug || verbose)

		source, err := f.newSource(cfg, command.String("source"), command.String("input"))
		if err != nil {
			return err
		}

		service := services.NewExportService(f.resolver, source, issueexport.NewExporter(f.fs)).
			WithClock(f.now)

		req := services.ExportRequest{
			Repo:                command.String("repo"),
			State:               command.String("state"),
			IncludePullRequests: command.Bool("include-prs"),
			OutputDir:           command.String("output-dir"),
		}

		var result services.ExportResult
		run := func() error {
			var err error
			result, err = service.Export(ctx, req)
			return err
		}

		// log lines and the spinner share stderr
		if debug || verbose {
			err = run()
		} else {
			err = ui.WithSpinner(f.stderr, "fetching issues", run)
		}
		if err != nil {
			return err
		}

		logger.Info(ctx, "export summary",
			"repo", result.Repository.String(),
			"count", result.Fetched,
			"skipped", result.Skipped)

		_, err = fmt.Fprintln(f.stdout, t.GetMessage("export.summary", result.Written, map[string]interface{}{
			"Count": result.Written,
			"Dir":   result.OutputDir,
		}))
		return err
	}
}

// NewIssueSource resolves the --source value to an issue source.
func NewIssueSource(cfg *config.Config, source, input string) (vcs.IssueSource, error) {
	switch source {
	case config.SourceAPI:
		client, err := github.NewGitHubClient(cfg.GitHubToken, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.SourceGH:
		return ghcli.NewSource(), nil
	case config.SourceFile:
		if input == "" {
			return nil, errors.ErrInputMissing
		}
		return jsonl.NewFileSource(input), nil
	default:
		return nil, errors.ErrInvalidSource.WithContext("source", source)
	}
}
