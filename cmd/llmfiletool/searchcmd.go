package main

import (
	"github.com/spf13/cobra"

	"github.com/stg34/llm-file-tools/fstool"
)

var (
	flagSearchRoot       string
	flagSearchMaxResults int
)

func init() {
	searchCmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search a directory tree for files matching a keyword by name or content",
		Long: "Search walks the tree beneath --from (default: the base directory) and reports " +
			"files whose base name contains the keyword, plus text files whose content contains it. " +
			"Unreadable and binary files are skipped, not errors.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newFSTool()
			if err != nil {
				return err
			}
			max := flagSearchMaxResults
			if max == 0 {
				if cfg, err := loadFileConfig(); err == nil {
					max = cfg.GetMaxResults()
				}
			}
			out, err := ft.SearchFiles(cmd.Context(), fstool.SearchFilesArgs{
				Root:       flagSearchRoot,
				Keyword:    args[0],
				MaxResults: max,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	searchCmd.Flags().StringVar(&flagSearchRoot, "from", "", "directory to search beneath (default: base directory)")
	searchCmd.Flags().IntVar(&flagSearchMaxResults, "max-results", 0, "stop after this many matches (0 = unlimited)")
	rootCmd.AddCommand(searchCmd)
}
