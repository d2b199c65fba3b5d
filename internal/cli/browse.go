package cli

import (
	stdio "io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autofeyn/pkg/pager"
	"github.com/matzehuels/autofeyn/pkg/session"
)

type browseOpts struct {
	requestFlags
	pageSize int
}

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	opts := &browseOpts{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through diagrams interactively",
		Long: `Open a terminal pager over the diagrams of a request. The search runs
lazily: each new page pulls only as many diagrams as it shows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.pageSize, "page-size", pager.DefaultPageSize, "diagrams per page")

	return cmd
}

func (c *CLI) runBrowse(cmd *cobra.Command, opts *browseOpts) error {
	req, err := opts.request()
	if err != nil {
		return err
	}
	if _, err := req.Graph(); err != nil {
		return err
	}

	// Log lines would tear the alternate screen.
	runner := pager.NewRunner(session.NewMemoryStore(), nil, nil, log.New(stdio.Discard))
	runner.PageSize = opts.pageSize

	ctx := cmd.Context()
	model := NewBrowseModel(ctx, runner, req)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	m := final.(BrowseModel)
	if m.Err != nil {
		return m.Err
	}
	loggerFromContext(ctx).Debug("browse finished", "pages", len(m.Pages), "diagrams", m.Seen())
	return nil
}
