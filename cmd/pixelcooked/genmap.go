package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pixelcooked.dev/internal/sim/kitchen"
	"pixelcooked.dev/internal/sim/kitchen/logic/mapgen"
)

func newGenmapCmd() *cobra.Command {
	var (
		gf     gameFlags
		legend bool
	)
	cmd := &cobra.Command{
		Use:   "genmap",
		Short: "Print the kitchen layout generated for a seed and player count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tune, cats, err := loadGameConfig(gf)
			if err != nil {
				return err
			}
			k, err := kitchen.New(gf.kitchenConfig(tune, "genmap", gf.seed), cats)
			if err != nil {
				return err
			}
			l := k.Layout()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seed=%d players=%d grid=%dx%d attempts=%d free=%d\n",
				gf.seed, gf.players, l.Rows, l.Cols, l.Attempts, len(l.FreeCells()))
			fmt.Fprint(out, l.ASCII())
			if legend {
				fmt.Fprintln(out, mapgen.ASCIILegend)
			}
			return nil
		},
	}
	gf.register(cmd)
	cmd.Flags().BoolVar(&legend, "legend", false, "print the glyph legend")
	return cmd
}
