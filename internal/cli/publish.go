package cli

import (
	"github.com/spf13/cobra"

	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/tui"
	"github.com/kingrea/wheelhouse/internal/workflow"
)

func publishCmd(configPath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Build the package, check it, and upload it after review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSession(*configPath)
			if err != nil {
				return err
			}
			defer session.close()

			var confirm step.Confirmer = &tui.TerminalConfirmer{}
			if yes {
				confirm = &tui.StaticConfirmer{Answer: true}
			}
			return session.run(cmd.Context(), workflow.Publish(), confirm)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the upload confirmation (for unattended runs)")
	return cmd
}
