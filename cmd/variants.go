/*
Copyright © 2025 dperales2022
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dperales2022/atmirasalesproposals/config"
	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/spf13/cobra"
)

// variantsCmd represents the variants command
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the registered schema variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		registry, err := schema.NewDefaultRegistry(cfg.DefaultVariant)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tVERSION\tLANGUAGE\tFIELDS\tDESCRIPTION")
		for _, v := range registry.Variants() {
			id := v.ID
			if id == registry.DefaultID() {
				id += " (default)"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n", id, v.Version, v.Language, len(v.Fields), v.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
