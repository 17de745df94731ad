// Command pixelcooked runs the local cooperative cooking game and its tooling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pixelcooked",
	Short: "Local co-op cooking game for 1-4 players in the terminal",
	Long: `PixelCooked is a top-down cooking game. Players share one keyboard, fetch ingredients
from crates, chop and cook them, and serve dishes before the clock runs out.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newGenmapCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newScoresCmd())
}
