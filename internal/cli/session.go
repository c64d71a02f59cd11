package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/exhibit/pkg/session"
)

// sessionCommand creates the session management command.
func (c *CLI) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Find running exhibits",
		Long: `Every "exhibit run" registers itself under a name (see run --name) and
keeps the entry alive while it runs. Use these commands to find a running
exhibit's control API or to drop entries left behind by a crash.`,
	}

	cmd.AddCommand(c.sessionListCommand())
	cmd.AddCommand(c.sessionShowCommand())
	cmd.AddCommand(c.sessionClearCommand())

	return cmd
}

func (c *CLI) sessionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List running exhibits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openSessionStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			printSessions(cmd.OutOrStdout(), sessions)
			return nil
		},
	}
}

func (c *CLI) sessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show one running exhibit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := sessionName(args)
			store, err := c.openSessionStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := store.Get(cmd.Context(), name)
			if err != nil {
				return err
			}
			if sess == nil {
				printInfo("No running exhibit named %q", name)
				return nil
			}

			mode := "terminal"
			if sess.Headless {
				mode = "headless"
			}
			printKeyValue("Name", sess.Name)
			printKeyValue("Control API", orDash(sess.Listen))
			printKeyValue("Catalog", orDash(sess.Catalog))
			printKeyValue("Mode", mode)
			printKeyValue("Process", fmt.Sprintf("%d on %s", sess.PID, orDash(sess.Host)))
			printKeyValue("Started", sess.CreatedAt.Format(time.DateTime))
			printKeyValue("Heartbeat", sess.UpdatedAt.Format(time.DateTime))
			printDetail("run %s", sess.RunID)
			if sess.Listen != "" {
				printNextStep("Check it", "curl http://"+sess.Listen+"/status")
			}
			return nil
		},
	}
}

func (c *CLI) sessionClearCommand() *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear [name]",
		Short: "Remove a registration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openSessionStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if expired {
				if err := store.Cleanup(cmd.Context()); err != nil {
					return err
				}
				printSuccess("Removed expired registrations")
				return nil
			}

			name := sessionName(args)
			if err := store.Delete(cmd.Context(), name); err != nil {
				return err
			}
			printSuccess("Cleared %q", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expired, "expired", false, "remove only expired registrations")

	return cmd
}

func printSessions(w io.Writer, sessions []*session.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, StyleDim.Render("No running exhibits"))
		return
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.Name,
			orDash(s.Listen),
			orDash(s.Catalog),
			orDash(s.Host),
			strconv.Itoa(s.PID),
			s.UpdatedAt.Format(time.TimeOnly),
		})
	}
	fmt.Fprintln(w, newTable([]string{"Name", "Control API", "Catalog", "Host", "PID", "Heartbeat"}, rows, false).String())
}

func (c *CLI) openSessionStore(cmd *cobra.Command) (session.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return newSessionStore(cmd.Context(), cfg)
}

func sessionName(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return session.DefaultName
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
