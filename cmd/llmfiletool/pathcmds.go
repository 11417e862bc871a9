package main

import (
	"github.com/spf13/cobra"

	"github.com/stg34/llm-file-tools/fstool"
)

var flagListPattern string

func init() {
	listCmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List directory entries, optionally filtered by a glob pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			out, err := ft.ListDirectory(cmd.Context(), fstool.ListDirectoryArgs{
				Path:    path,
				Pattern: flagListPattern,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	listCmd.Flags().StringVar(&flagListPattern, "pattern", "", "glob pattern to filter entry names (doublestar syntax)")
	rootCmd.AddCommand(listCmd)

	statCmd := &cobra.Command{
		Use:   "stat <path>",
		Short: "Show metadata for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.StatPath(cmd.Context(), fstool.StatPathArgs{Path: args[0]})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(statCmd)

	kindCmd := &cobra.Command{
		Use:   "kind <path>",
		Short: "Report whether a path is a file, a directory, or something else",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.PathKind(cmd.Context(), fstool.PathKindArgs{Path: args[0]})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(kindCmd)
}
