package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/tui"
)

func runCmd(configPath *string) *cobra.Command {
	var yes bool
	var list bool

	cmd := &cobra.Command{
		Use:   "run [workflow]",
		Short: "Run a workflow by ID, including custom workflows from .wheelhouse/workflows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(*configPath)
			if err != nil {
				return err
			}
			defer session.close()

			if list || len(args) == 0 {
				for _, id := range session.library.IDs() {
					def, _ := session.library.Lookup(id)
					tui.Printf(cmd.OutOrStdout(), "%s", tui.Bullet(id, def.Name))
				}
				return nil
			}

			def, ok := session.library.Lookup(args[0])
			if !ok {
				return fmt.Errorf("cli: unknown workflow %q (known: %s)", args[0], strings.Join(session.library.IDs(), ", "))
			}

			var confirm step.Confirmer = &tui.TerminalConfirmer{}
			if yes {
				confirm = &tui.StaticConfirmer{Answer: true}
			}
			return session.run(cmd.Context(), def, confirm)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip upload confirmations (for unattended runs)")
	cmd.Flags().BoolVar(&list, "list", false, "list the available workflows and exit")
	return cmd
}
