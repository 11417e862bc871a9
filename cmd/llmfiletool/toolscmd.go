package main

import (
	"github.com/spf13/cobra"

	filetools "github.com/stg34/llm-file-tools"
)

func init() {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the JSON manifest of all registered tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := filetools.NewBuiltinRegistry()
			if err != nil {
				return err
			}
			return printJSON(r.Tools())
		},
	}
	rootCmd.AddCommand(toolsCmd)
}
