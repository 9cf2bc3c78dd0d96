package cmd

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"shuttercheck/internal/core/services"
	"shuttercheck/pkg/ui"
)

var chartOutput string

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart [dir]",
	Short: "Export the shutter-count history as an HTML line chart",
	Args:  cobra.MaximumNArgs(1),
	Long: `Render shutter count over capture time as an interactive HTML chart.

A healthy camera draws a non-decreasing line; any downward step is the
same anomaly the timeline command flags, just easier to eyeball.
Records without a parseable timestamp or shutter count are left out of
the plot.

Examples:
  shuttercheck chart
  shuttercheck chart ~/Downloads/z6-samples -o z6.html`,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "Output HTML file (default from config)")
	chartCmd.Flags().StringVarP(&timelineExpectedModel, "expected-model", "m", "", "Expected EXIF camera model (default from config)")
	chartCmd.Flags().BoolVar(&timelineNoFilter, "no-model-filter", false, "Do not filter images by model")
	chartCmd.Flags().StringVar(&timelineBackend, "backend", "", "Extraction backend (goexif, exiftool, auto)")
}

func runChart(cmd *cobra.Command, args []string) error {
	dir, err := targetDir(args)
	if err != nil {
		return err
	}

	topts := resolveTimelineOptions(cmd)
	output := chartOutput
	if output == "" {
		output = appConfig.ChartOutput
	}

	scanService, err := newScanService(dir, topts.Extensions, topts.Backend)
	if err != nil {
		return err
	}

	ctx := getContext()
	scanResp, err := scanService.Execute(ctx, services.ScanRequest{MaxWorkers: topts.Jobs})
	if err != nil {
		return err
	}
	if scanResp.Total == 0 {
		fmt.Println(ui.FormatWarning("No matching files found"))
		return nil
	}

	resp, err := timelineService.Execute(ctx, services.TimelineRequest{
		Records:        scanResp.Records,
		ExpectedModel:  topts.ExpectedModel,
		SubstringMatch: topts.Substring,
	})
	if err != nil {
		return err
	}

	var xAxis []string
	var series []opts.LineData
	for _, rec := range resp.Records {
		if !rec.Timestamp.Known || !rec.ShutterCount.Known {
			continue
		}
		xAxis = append(xAxis, rec.Timestamp.String())
		series = append(series, opts.LineData{Value: rec.ShutterCount.Value, Name: rec.Filename})
	}

	if len(series) < 2 {
		fmt.Println(ui.FormatWarning("Not enough records with known timestamp and count to plot"))
		return nil
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Shutter-count history",
			Subtitle: dir,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "capture time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "shutter count"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	line.SetXAxis(xAxis).AddSeries("shutter count", series)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	fmt.Println(ui.FormatSuccess("Chart written to " + output))
	fmt.Println(ui.RenderKeyValue("Plotted", fmt.Sprintf("%d of %d records", len(series), len(resp.Records))))
	if len(resp.Warnings) > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d shutter-count decrease(s) in the plotted range", len(resp.Warnings))))
	}
	return nil
}
