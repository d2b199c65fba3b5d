package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autofeyn/pkg/session"
)

// sessionsCommand creates the command that manages file-backed sessions.
func (c *CLI) sessionsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage browsing sessions stored on disk",
		Long: `Manage sessions kept by "serve --backend file". Other backends expire
sessions on their own.`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "session directory (default ~/.config/autofeyn/sessions)")

	open := func() (*session.FileStore, error) {
		return session.NewFileStore(dir)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Remove expired sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			if err := store.Cleanup(cmd.Context()); err != nil {
				return fmt.Errorf("prune sessions: %w", err)
			}
			printSuccess("Removed expired sessions")
			printDetail("Directory: %s", store.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			n, err := store.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear sessions: %w", err)
			}
			printSuccess("Cleared %d sessions", n)
			printDetail("Directory: %s", store.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the session directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	})

	return cmd
}
