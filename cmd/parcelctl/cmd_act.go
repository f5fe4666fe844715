package main

import (
	"github.com/spf13/cobra"
)

var actCmd = &cobra.Command{
	Use:   "act",
	Short: "Resolve and archive planning act documents",
}

var actResolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Find the downloadable document behind an act link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel, a, err := build(cmd, false)
		if err != nil {
			return err
		}
		defer cancel()
		defer a.Close()

		out := map[string]any{"url": nil, "error": nil}
		if link, ok := a.Resolver.Resolve(ctx, args[0]); ok {
			out["url"] = link
		} else {
			out["error"] = "no downloadable link found"
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var actArchiveCmd = &cobra.Command{
	Use:   "archive <url> <project-id> <filename>",
	Short: "Download an act document into configured storage",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel, a, err := build(cmd, true)
		if err != nil {
			return err
		}
		defer cancel()
		defer a.Close()

		stored, err := a.Archiver.Archive(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stored)
	},
}

func init() {
	actCmd.AddCommand(actResolveCmd)
	actCmd.AddCommand(actArchiveCmd)
}
