// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-distill/internal/container"
	"github.com/pdiddy/pdf-distill/internal/content"
	"github.com/pdiddy/pdf-distill/internal/convert"
	"github.com/pdiddy/pdf-distill/internal/history"
	"github.com/pdiddy/pdf-distill/internal/session"
	"github.com/pdiddy/pdf-distill/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract lightweight content from a PDF",
	Long: `Extract runs the marker converter on a PDF, materializes every extracted
figure as a JPEG under a per-session image directory, resolves best-effort
captions from the Markdown text, and saves one JSON content record.

Extraction either produces a complete record with every figure materialized
or fails outright; partial results are never written.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("output-dir", "output", "base directory for the content record and images")
	extractCmd.Flags().String("out", "", "content record path (default: {output-dir}/"+content.DefaultFilename+")")
	extractCmd.Flags().String("image", "", "marker container image (default: marker-pdf:latest)")
	extractCmd.Flags().String("model-dir", "", "host directory with model checkpoints, mounted read-only into the converter")
	extractCmd.Flags().String("runtime", "", "container runtime: docker or podman (default: auto-detect)")
	extractCmd.Flags().Bool("cleanup", false, "remove the session image directory after the record is saved")
	extractCmd.Flags().Bool("history", true, "record the run in the session journal")
	extractCmd.Flags().Bool("yaml", false, "also export the record as YAML next to the JSON file")

	_ = viper.BindPFlag("output_dir", extractCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("conversion.image", extractCmd.Flags().Lookup("image"))
	_ = viper.BindPFlag("conversion.model_dir", extractCmd.Flags().Lookup("model-dir"))
	_ = viper.BindPFlag("conversion.runtime", extractCmd.Flags().Lookup("runtime"))
	_ = viper.BindPFlag("cleanup_images", extractCmd.Flags().Lookup("cleanup"))
	_ = viper.BindPFlag("history", extractCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(extractCmd)
}

func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		OutputDir:     viper.GetString("output_dir"),
		CleanupImages: viper.GetBool("cleanup_images"),
		History:       viper.GetBool("history"),
		Conversion: types.ConversionConfig{
			Backend:  types.BackendMarker,
			Image:    viper.GetString("conversion.image"),
			ModelDir: viper.GetString("conversion.model_dir"),
			Runtime:  viper.GetString("conversion.runtime"),
		},
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	cfg := extractionConfig()

	rt, err := selectRuntime(cfg.Conversion.Runtime)
	if err != nil {
		return err
	}

	conv, err := convert.NewMarkerConverter(rt, cfg.Conversion)
	if err != nil {
		return err
	}

	sess, err := session.New(pdfPath, cfg.OutputDir)
	if err != nil {
		return err
	}

	record, err := sess.Extract(conv)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	savedPath, err := content.Save(record, cfg.OutputDir, outPath)
	if err != nil {
		return err
	}

	if exportYAML, _ := cmd.Flags().GetBool("yaml"); exportYAML {
		if err := content.ExportYAML(record, savedPath+".yaml"); err != nil {
			return err
		}
	}

	if cfg.History {
		recordHistory(cmd.Context(), cfg.OutputDir, record, savedPath)
	}

	if cfg.CleanupImages {
		sess.Cleanup()
	}

	fmt.Fprintf(os.Stdout, "saved: %s (session %s, %d images, %.2fs conversion)\n",
		savedPath, record.SessionID, len(record.Images), record.ConversionTime.Seconds())
	return nil
}

func selectRuntime(name string) (container.Runtime, error) {
	if name == "" {
		return container.DetectRuntime()
	}
	return container.NamedRuntime(name)
}

// recordHistory journals the run. The journal is best-effort housekeeping:
// a failure here must not fail an extraction that already saved its record.
func recordHistory(ctx context.Context, outputDir string, record *types.ContentRecord, savedPath string) {
	store, err := history.Open(outputDir)
	if err != nil {
		slog.Warn("session journal unavailable", "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, record, savedPath); err != nil {
		slog.Warn("recording session failed", "session_id", record.SessionID, "error", err)
	}
}
