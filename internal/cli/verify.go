package cli

import (
	"github.com/spf13/cobra"

	"github.com/kingrea/wheelhouse/internal/tui"
	"github.com/kingrea/wheelhouse/internal/workflow"
)

func verifyCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Build the package and smoke-test the result end to end",
		Long: "verify builds the distribution artifacts, checks them with twine,\n" +
			"force-reinstalls the wheel, imports the package, and probes the\n" +
			"console script. Nothing is uploaded.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSession(*configPath)
			if err != nil {
				return err
			}
			defer session.close()

			return session.run(cmd.Context(), workflow.Verify(), &tui.TerminalConfirmer{})
		},
	}
}
