// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/specsplit/internal/split"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List the files a split would write, without writing them",
	Long: `Plan loads the source, locates every configured heading, and prints
each output path with its size in write order. Nothing is written, so plan
is a safe way to check a source document before splitting it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSplitConfig(appFs)
		if err != nil {
			return err
		}
		res, err := split.Run(appFs, cfg, split.Options{
			DryRun: true,
			Log:    newLogger(cmd.ErrOrStderr()),
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range res.Documents {
			fmt.Fprintf(out, "%8d  %s\n", len(d.Content), d.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
