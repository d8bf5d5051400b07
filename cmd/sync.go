package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/melodika/melodika-sync/internal/pipeline"
	"github.com/melodika/melodika-sync/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one catalog synchronization",
	Long:  "Fetches the supplier XML feed, normalizes every product card and upserts the results into the record store.",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().String("format", "json", "Report format: json, text")
	syncCmd.Flags().Bool("quiet", false, "Suppress progress output")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	quiet, _ := cmd.Flags().GetBool("quiet")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	if !quiet {
		ctx = pipeline.WithProgress(ctx, ui.NewPrinter().Step)
	}

	report := buildPipeline(st).Sync(ctx)

	switch format {
	case "text":
		if report.Success {
			fmt.Fprintf(os.Stdout, "synced %d products (found %d, skipped %d, failed %d) from %s in %s\n",
				report.Count, report.Found, report.Skipped, report.Failed,
				report.Source, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
		} else {
			fmt.Fprintf(os.Stdout, "sync failed: %s\n", report.Error)
		}
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	}

	if !report.Success {
		return errors.New("sync failed")
	}
	return nil
}
