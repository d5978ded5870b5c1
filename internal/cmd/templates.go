package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ksk1130/tsvloggen/internal/catalog"
	"github.com/ksk1130/tsvloggen/internal/output"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the message templates lines are built from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.NewTextRenderer(cmd.OutOrStdout()).Templates(catalog.Default().Templates())
		},
	}
}
