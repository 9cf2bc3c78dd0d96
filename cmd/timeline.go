package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shuttercheck/internal/core/services"
	"shuttercheck/pkg/ui"
)

var (
	timelineExpectedModel string
	timelineNoFilter      bool
	timelineSubstring     bool
	timelineBackend       string
	timelineExts          []string
	timelineJobs          int
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:     "timeline [dir]",
	Short:   "Chronological shutter-count table with anomaly warnings",
	Aliases: []string{"tl"},
	Args:    cobra.MaximumNArgs(1),
	Long: `Scan a folder of sample photos, order them by capture time, and flag
every place where the shutter count decreases between adjacent shots.

A decreasing counter on a chronologically later photo suggests either a
service-center mainboard/shutter replacement or a tampered counter.

Examples:
  shuttercheck timeline
  shuttercheck timeline ~/Downloads/z6-samples
  shuttercheck timeline --expected-model "NIKON Z 6"
  shuttercheck timeline --no-model-filter --backend exiftool`,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().StringVarP(&timelineExpectedModel, "expected-model", "m", "", "Expected EXIF camera model (default from config)")
	timelineCmd.Flags().BoolVar(&timelineNoFilter, "no-model-filter", false, "Do not filter images by model")
	timelineCmd.Flags().BoolVar(&timelineSubstring, "substring", false, "Match model by substring instead of exact match")
	timelineCmd.Flags().StringVar(&timelineBackend, "backend", "", "Extraction backend (goexif, exiftool, auto)")
	timelineCmd.Flags().StringSliceVar(&timelineExts, "ext", nil, "File extensions to scan (default from config)")
	timelineCmd.Flags().IntVarP(&timelineJobs, "jobs", "j", 0, "Concurrent extractions (default from config)")
}

// timelineOptions is the resolved flag/config set one analysis runs with
type timelineOptions struct {
	ExpectedModel string // empty disables the filter
	Substring     bool
	Backend       string
	Extensions    []string
	Jobs          int
}

// resolveTimelineOptions merges flags with config defaults. Flags the
// user did not touch fall back to the config file, matching how every
// other default works here.
func resolveTimelineOptions(cmd *cobra.Command) timelineOptions {
	opts := timelineOptions{
		ExpectedModel: timelineExpectedModel,
		Substring:     timelineSubstring,
		Backend:       timelineBackend,
		Extensions:    timelineExts,
		Jobs:          timelineJobs,
	}

	if !cmd.Flags().Changed("expected-model") {
		opts.ExpectedModel = appConfig.ExpectedModel
	}
	if !cmd.Flags().Changed("substring") {
		opts.Substring = appConfig.ModelMatch == "substring"
	}
	if opts.Backend == "" {
		opts.Backend = appConfig.Backend
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = appConfig.Extensions
	}
	if opts.Jobs <= 0 {
		opts.Jobs = appConfig.MaxWorkers
	}
	if timelineNoFilter {
		opts.ExpectedModel = ""
	}
	return opts
}

func runTimeline(cmd *cobra.Command, args []string) error {
	dir, err := targetDir(args)
	if err != nil {
		return err
	}
	return runTimelineAnalysis(getContext(), dir, resolveTimelineOptions(cmd))
}

// runTimelineAnalysis is the whole timeline pipeline behind one call so
// that watch mode can re-run it on every change.
func runTimelineAnalysis(ctx context.Context, dir string, opts timelineOptions) error {
	scanService, err := newScanService(dir, opts.Extensions, opts.Backend)
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatTitle("Shutter-count timeline"))
	fmt.Println(ui.FormatMuted("Scanning: " + dir))
	fmt.Println()

	scanResp, err := scanService.Execute(ctx, services.ScanRequest{MaxWorkers: opts.Jobs})
	if err != nil {
		return err
	}

	if scanResp.Total == 0 {
		fmt.Println(ui.FormatWarning("No matching files found"))
		return nil
	}

	fmt.Println(ui.RenderKeyValue("Files found", strconv.Itoa(scanResp.Found)))
	if scanResp.Skipped > 0 {
		fmt.Println(ui.RenderKeyValue("Files skipped", strconv.Itoa(scanResp.Skipped)+" (unreadable metadata)"))
	}

	resp, err := timelineService.Execute(ctx, services.TimelineRequest{
		Records:        scanResp.Records,
		ExpectedModel:  opts.ExpectedModel,
		SubstringMatch: opts.Substring,
	})
	if err != nil {
		return err
	}

	if opts.ExpectedModel != "" {
		fmt.Println(ui.RenderKeyValue("Model filter",
			fmt.Sprintf("%d of %d matched %q", resp.Matched, resp.Total, opts.ExpectedModel)))
	}
	fmt.Println()

	if len(resp.Records) == 0 {
		fmt.Println(ui.FormatWarning("No records left to analyze"))
		if opts.ExpectedModel != "" {
			fmt.Println(ui.FormatInfo("Try --no-model-filter or a different --expected-model"))
		}
		return nil
	}

	// Timeline table, warnings interleaved at the offending transition.
	table := ui.NewTable([]ui.TableColumn{
		{Header: "#", Width: 4, Align: "right"},
		{Header: "Timestamp", Width: 20, Align: "left"},
		{Header: "Count", Width: 8, Align: "right"},
		{Header: "File", Width: 24, Align: "left"},
	})
	for i, rec := range resp.Records {
		table.AddRow([]string{
			strconv.Itoa(i),
			rec.Timestamp.String(),
			rec.ShutterCount.String(),
			truncate(rec.Filename, 40),
		})
	}
	for _, w := range resp.Warnings {
		table.Annotate(w.PrevIndex, fmt.Sprintf("[WARN] shutter count decreased: %d -> %d (%s -> %s)",
			w.PrevCount, w.Count, w.PrevFile, w.File))
	}
	fmt.Print(table.Render())
	fmt.Println()

	if len(resp.Warnings) == 0 {
		fmt.Println(ui.FormatSuccess("No shutter-count decreases detected over time"))
		fmt.Println(ui.FormatMuted("  This does not guarantee the counter was never reset, but nothing looks off."))
		return nil
	}

	fmt.Println(ui.FormatWarning(fmt.Sprintf("Detected %d possible shutter-count reset(s)", len(resp.Warnings))))
	for _, w := range resp.Warnings {
		fmt.Println(ui.FormatMuted("  • " + w.String()))
	}
	fmt.Println()
	fmt.Println(ui.FormatInfo("A decrease can mean a service-center shutter/mainboard replacement, or a tampered counter."))
	fmt.Println(ui.FormatInfo("Cross-check with the seller's story and any service paperwork."))
	return nil
}
