package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/io"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type enumerateOpts struct {
	requestFlags
	limit  int
	format string
	output string
}

// enumerateCommand creates the enumerate command.
func (c *CLI) enumerateCommand() *cobra.Command {
	opts := &enumerateOpts{}

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "List every connected diagram of a request",
		Long: `List the connected diagrams that complete a request, in search order.

Legs are named on the command line or read from a request file:

  autofeyn enumerate --in-electron i1 --in-positron i2 --out-photon o1 --vertex v1,v2,v3
  autofeyn enumerate -f annihilation.yaml --format json -o diagrams.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEnumerate(cmd, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "stop after this many diagrams (0 for all)")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "output format: text or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write JSON to this file instead of stdout")

	return cmd
}

func (c *CLI) runEnumerate(cmd *cobra.Command, opts *enumerateOpts) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatText, formatJSON)
	}
	if opts.limit < 0 {
		return fmt.Errorf("--limit cannot be negative")
	}
	req, err := opts.request()
	if err != nil {
		return err
	}
	g, err := req.Graph()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Debug("enumerating", "legs", g.Size(), "vertices", len(g.Vertices()))

	prog := newProgress(logger)
	e := diagram.Enumerate(g)
	graphs, err := collect(ctx, e, opts.limit)
	if err != nil {
		return err
	}
	prog.done("Enumerated %d diagrams", len(graphs))
	logger.Debug("search stats", "pairings", e.Attempts(), "exhausted", e.Done())

	diagrams := io.ExportAll(graphs)
	if opts.format == formatJSON || opts.output != "" {
		if opts.output == "" {
			return io.WriteJSON(cmd.OutOrStdout(), diagrams)
		}
		if err := io.ExportJSON(diagrams, opts.output); err != nil {
			return err
		}
		printSuccess("Wrote %d diagrams", len(diagrams))
		printFile(opts.output)
		return nil
	}

	if len(diagrams) == 0 {
		printInfo("No connected diagrams")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), diagramTable(0, diagrams, -1).Render())
	printKeyValue("Diagrams", fmt.Sprint(len(diagrams)))
	printKeyValue("Pairings", fmt.Sprint(e.Attempts()))
	if opts.limit > 0 && !e.Done() {
		printNextStep("Limit reached, page through the rest with", "autofeyn browse")
	}
	return nil
}

// collect pulls up to limit diagrams (all when limit is 0), checking ctx
// between pulls.
func collect(ctx context.Context, e *diagram.Enumerator, limit int) ([]*diagram.Graph, error) {
	var graphs []*diagram.Graph
	for g := range e.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
		if limit > 0 && len(graphs) == limit {
			break
		}
	}
	return graphs, nil
}
