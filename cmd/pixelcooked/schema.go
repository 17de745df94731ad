package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"pixelcooked.dev/internal/observerproto"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of observer FRAME messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(observerproto.FrameSchema())
		},
	}
}
