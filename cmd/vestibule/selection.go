package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/spf13/cobra"
)

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Read or clear stored guide selections",
	Long: `Hosts use the stored selection to skip onboarding for returning visitors.
Without a visitor ID the shared "selectedGuide" key is used.`,
}

var selectionGetCmd = &cobra.Command{
	Use:   "get [visitor-id]",
	Short: "Print the stored guide",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _, _, err := newHost(cmd, false)
		if err != nil {
			return err
		}
		defer host.Close()

		guideID, err := host.Engine.Selected(cmd.Context(), selectionKey(args))
		if errors.Is(err, domain.ErrSelectionNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No guide selected yet.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), guideID)
		return nil
	},
}

var selectionClearCmd = &cobra.Command{
	Use:   "clear [visitor-id]",
	Short: "Forget the stored guide so onboarding runs again",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _, _, err := newHost(cmd, false)
		if err != nil {
			return err
		}
		defer host.Close()

		key := selectionKey(args)
		if err := host.Engine.Selections().Delete(cmd.Context(), key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared '%s'\n", key)
		return nil
	},
}

func selectionKey(args []string) string {
	if len(args) == 0 {
		return domain.SelectionKey
	}
	return domain.VisitorSelectionKey(args[0])
}

func init() {
	rootCmd.AddCommand(selectionCmd)
	selectionCmd.AddCommand(selectionGetCmd)
	selectionCmd.AddCommand(selectionClearCmd)
}
