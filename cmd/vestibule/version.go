package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/vestibule"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vestibule",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vestibule version %s\n", strings.TrimSpace(vestibule.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
