// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-distill/internal/history"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded extraction runs",
	Long: `Sessions prints the extraction runs recorded in the session journal,
newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("output-dir")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.Open(outputDir)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stdout, "no recorded sessions")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\tEXTRACTED\tPDF\tIMAGES\tCONVERSION\tRECORD")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%s\n",
				e.SessionID,
				e.ExtractedAt.Format("2006-01-02 15:04:05"),
				e.PDFPath,
				e.ImageCount,
				e.ConversionSeconds,
				e.ContentPath,
			)
		}
		return w.Flush()
	},
}

func init() {
	sessionsCmd.Flags().String("output-dir", "output", "base directory containing the session journal")
	sessionsCmd.Flags().Int("limit", 20, "maximum number of sessions to list")

	rootCmd.AddCommand(sessionsCmd)
}
