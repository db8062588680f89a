package main

import (
	"github.com/aretw0/vestibule/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the onboarding flow in the terminal",
	Long: `Starts an onboarding session on stdin/stdout.

At the prompt, press Enter to begin, then pick a guide by number or name.
Use --touch to get the tap-to-preview, tap-again-to-select behavior of touch screens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		touch, _ := cmd.Flags().GetBool("touch")
		sessionID, _ := cmd.Flags().GetString("session")
		visitorID, _ := cmd.Flags().GetString("visitor")

		host, _, logger, err := newHost(cmd, jsonMode)
		if err != nil {
			return err
		}
		defer host.Close()

		return cli.RunSession(cmd.Context(), host.Engine, cli.RunOptions{
			SessionID: sessionID,
			VisitorID: visitorID,
			JSON:      jsonMode,
			Touch:     touch,
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
		}, logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("touch", false, "Use touch input semantics")
	runCmd.Flags().String("session", "", "Session ID (random when empty)")
	runCmd.Flags().String("visitor", "", "Store the selection for this visitor instead of the shared key")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
