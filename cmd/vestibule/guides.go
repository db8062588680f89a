package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/vestibule/pkg/assets"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/ports"
	"github.com/aretw0/vestibule/pkg/roster"
	"github.com/aretw0/vestibule/pkg/welcome"
	"github.com/spf13/cobra"
)

var guidesCmd = &cobra.Command{
	Use:   "guides",
	Short: "Inspect the guide roster",
}

var guidesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the guides in canonical order",
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _, _, err := newHost(cmd, false)
		if err != nil {
			return err
		}
		defer host.Close()

		resolver := host.Engine.Resolver()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tTITLE\tTONE\tIMAGE")
		for _, g := range host.Engine.Guides() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", g.ID, g.Name, g.Title, g.Tone, resolver.Resolve(g.Image))
		}
		return tw.Flush()
	},
}

var guidesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a roster file for consistency",
	Long: `Fails on missing fields or duplicate IDs. Warns about tones without a
welcome message and images the asset resolver does not know.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.Roster
		if len(args) > 0 {
			path = args[0]
		}

		var loader ports.RosterLoader = roster.NewStatic(roster.Builtin()...)
		if path != "" {
			loader = roster.NewFileLoader(path)
		}
		guides, err := loader.Load(cmd.Context())
		if err != nil {
			return err
		}
		if err := roster.Validate(guides); err != nil {
			return fmt.Errorf("roster is invalid:\n%w", err)
		}

		out := cmd.OutOrStdout()
		if missing := welcome.Default().Missing(guides); len(missing) > 0 {
			fmt.Fprintf(out, "warning: no welcome message for tones %v, the fallback will be shown\n", missing)
		}

		resolver, err := assets.NewResolver()
		if err != nil {
			return err
		}
		for _, g := range guides {
			if !g.Tone.Valid() {
				fmt.Fprintf(out, "warning: guide %s: tone %q is not one of %v\n", g.ID, g.Tone, domain.Tones())
			}
			if !resolver.Known(g.Image) {
				fmt.Fprintf(out, "warning: guide %s: image %q is not in the asset manifest\n", g.ID, g.Image)
			}
		}

		fmt.Fprintf(out, "Roster is valid! %d guides.\n", len(guides))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guidesCmd)
	guidesCmd.AddCommand(guidesListCmd)
	guidesCmd.AddCommand(guidesValidateCmd)
}
