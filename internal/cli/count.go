package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/autofeyn/pkg/io"
)

type countOpts struct {
	requestFlags
	refresh bool
	noCache bool
	jsonOut bool
}

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	opts := &countOpts{}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the connected diagrams of a request",
		Long: `Run the search to exhaustion and report how many connected diagrams it finds.

Results are cached per request in ~/.cache/autofeyn, so counting the same
request again is instant. Use --refresh to recount.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCount(cmd, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore a cached count")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the count cache")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runCount(cmd *cobra.Command, opts *countOpts) error {
	req, err := opts.request()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	ctx := cmd.Context()
	var spinner *Spinner
	if !opts.jsonOut {
		spinner = newSpinnerWithContext(ctx, "Counting diagrams")
		spinner.Start()
	}
	res, err := runner.Count(ctx, req, opts.refresh)
	if spinner != nil {
		if spinner.Cancelled() {
			spinner.StopWithError("Count cancelled")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return io.WriteJSON(cmd.OutOrStdout(), res)
	}
	printCount(res)
	return nil
}
