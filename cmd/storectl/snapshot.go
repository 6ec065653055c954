package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/spf13/cobra"
)

var (
	snapshotURL      string
	snapshotOut      string
	snapshotHeadless bool
	snapshotTimeout  time.Duration
	snapshotQuality  int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a screenshot of a running dashboard",
	Long: `Opens the dashboard in headless Chrome, waits for the segment table
to render and saves a full page PNG. Requires a Chrome or Chromium binary.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(commandContext(cmd), snapshotTimeout)
		defer cancel()

		opts := chromedp.DefaultExecAllocatorOptions[:]
		opts = append(opts, chromedp.Flag("headless", snapshotHeadless))

		allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
		defer cancelAlloc()

		browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
		defer cancelBrowser()

		logger.Info("Capturing dashboard", slog.String("url", snapshotURL))

		var buf []byte
		if err := chromedp.Run(browserCtx, captureDashboard(snapshotURL, snapshotQuality, &buf)); err != nil {
			return fmt.Errorf("snapshot %s: %w", snapshotURL, err)
		}

		if err := os.WriteFile(snapshotOut, buf, 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "snapshot saved to %s\n", snapshotOut)
		return nil
	},
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVar(&snapshotURL, "url", "http://localhost:8080/", "dashboard URL")
	f.StringVarP(&snapshotOut, "out", "o", "dashboard.png", "output PNG file")
	f.BoolVar(&snapshotHeadless, "headless", true, "run Chrome headless")
	f.DurationVar(&snapshotTimeout, "timeout", 60*time.Second, "overall time limit")
	f.IntVar(&snapshotQuality, "quality", 90, "screenshot quality")
}

// captureDashboard waits until the first table row is rendered
func captureDashboard(url string, quality int, buf *[]byte) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitVisible(`#segments`, chromedp.ByQuery),
		chromedp.WaitReady(`#segments tbody tr`, chromedp.ByQuery),
		chromedp.FullScreenshot(buf, quality),
	}
}
