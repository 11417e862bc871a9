package main

import (
	"github.com/spf13/cobra"

	"github.com/stg34/llm-file-tools/fstool"
)

var (
	flagReadEncoding string

	flagWriteEncoding      string
	flagWriteContent       string
	flagWriteOverwrite     bool
	flagWriteCreateParents bool

	flagCopyFileOverwrite     bool
	flagCopyFileCreateParents bool

	flagMoveFileOverwrite     bool
	flagMoveFileCreateParents bool
)

func init() {
	readCmd := &cobra.Command{
		Use:   "read-file <path>",
		Short: "Read a file as text, base64 binary, or extracted PDF text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.ReadFile(cmd.Context(), fstool.ReadFileArgs{
				Path:     args[0],
				Encoding: flagReadEncoding,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	readCmd.Flags().StringVar(&flagReadEncoding, "encoding", "", "read encoding: text (default) or binary")
	rootCmd.AddCommand(readCmd)

	writeCmd := &cobra.Command{
		Use:   "write-file <path>",
		Short: "Write content to a file atomically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.WriteFile(cmd.Context(), fstool.WriteFileArgs{
				Path:          args[0],
				Encoding:      flagWriteEncoding,
				Content:       flagWriteContent,
				Overwrite:     flagWriteOverwrite,
				CreateParents: flagWriteCreateParents,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	writeCmd.Flags().StringVar(&flagWriteEncoding, "encoding", "", "write encoding: text (default) or binary (base64 content)")
	writeCmd.Flags().StringVar(&flagWriteContent, "content", "", "content to write")
	writeCmd.Flags().BoolVar(&flagWriteOverwrite, "overwrite", false, "replace the file if it already exists")
	writeCmd.Flags().BoolVar(&flagWriteCreateParents, "parents", false, "create missing parent directories")
	rootCmd.AddCommand(writeCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete-file <path>",
		Short: "Delete a regular file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.DeleteFile(cmd.Context(), fstool.DeleteFileArgs{Path: args[0]})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(deleteCmd)

	copyCmd := &cobra.Command{
		Use:   "copy-file <src> <dst>",
		Short: "Copy a regular file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.CopyFile(cmd.Context(), fstool.CopyFileArgs{
				Src:           args[0],
				Dst:           args[1],
				Overwrite:     flagCopyFileOverwrite,
				CreateParents: flagCopyFileCreateParents,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	copyCmd.Flags().BoolVar(&flagCopyFileOverwrite, "overwrite", false, "replace the destination if it already exists")
	copyCmd.Flags().BoolVar(&flagCopyFileCreateParents, "parents", false, "create missing destination parent directories")
	rootCmd.AddCommand(copyCmd)

	moveCmd := &cobra.Command{
		Use:   "move-file <src> <dst>",
		Short: "Move or rename a regular file (copies across devices)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			out, err := ft.MoveFile(cmd.Context(), fstool.MoveFileArgs{
				Src:           args[0],
				Dst:           args[1],
				Overwrite:     flagMoveFileOverwrite,
				CreateParents: flagMoveFileCreateParents,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	moveCmd.Flags().BoolVar(&flagMoveFileOverwrite, "overwrite", false, "replace the destination if it already exists")
	moveCmd.Flags().BoolVar(&flagMoveFileCreateParents, "parents", false, "create missing destination parent directories")
	rootCmd.AddCommand(moveCmd)
}
