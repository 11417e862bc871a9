package main

import (
	"github.com/spf13/cobra"

	"github.com/stg34/llm-file-tools/fstool"
)

var (
	flagCopyFolderCreateParents bool
	flagMoveFolderCreateParents bool
)

func init() {
	createCmd := &cobra.Command{
		Use:   "create-folder <path>",
		Short: "Create a directory, including missing parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.CreateFolder(cmd.Context(), fstool.CreateFolderArgs{Path: args[0]})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(createCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete-folder <path>",
		Short: "Delete a directory and all of its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.DeleteFolder(cmd.Context(), fstool.DeleteFolderArgs{Path: args[0]})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(deleteCmd)

	copyCmd := &cobra.Command{
		Use:   "copy-folder <src> <dst>",
		Short: "Copy a directory tree to a new destination",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.CopyFolder(cmd.Context(), fstool.CopyFolderArgs{
				Src:           args[0],
				Dst:           args[1],
				CreateParents: flagCopyFolderCreateParents,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	copyCmd.Flags().BoolVar(&flagCopyFolderCreateParents, "parents", false, "create missing destination parent directories")
	rootCmd.AddCommand(copyCmd)

	moveCmd := &cobra.Command{
		Use:   "move-folder <src> <dst>",
		Short: "Move or rename a directory (copies across devices)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.MoveFolder(cmd.Context(), fstool.MoveFolderArgs{
				Src:           args[0],
				Dst:           args[1],
				CreateParents: flagMoveFolderCreateParents,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	moveCmd.Flags().BoolVar(&flagMoveFolderCreateParents, "parents", false, "create missing destination parent directories")
	rootCmd.AddCommand(moveCmd)
}
