package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shuttercheck/internal/adapters/extractor"
	"shuttercheck/internal/adapters/repository"
	"shuttercheck/internal/core/ports"
	"shuttercheck/internal/core/services"
	"shuttercheck/pkg/config"
	"shuttercheck/pkg/ui"
)

var (
	cfgFile string

	// Loaded configuration
	appConfig *config.Config

	// Services
	timelineService *services.TimelineService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shuttercheck",
	Short: "Sanity-check a used camera's shutter-count history",
	Long: ui.StyleTitle.Render("shuttercheck") + " - EXIF shutter-count diagnostics\n\n" +
		"Read-only checks over the EXIF metadata of sample photos, meant to help\n" +
		"a buyer spot shutter-counter resets before paying for a used camera.\n" +
		"Nothing is ever written to the image files.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/shuttercheck/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads configuration and applies the UI theme
func initializeApp(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)

	timelineService = services.NewTimelineService()
	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}

// configPath returns the effective config file location
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

// targetDir resolves the optional positional directory argument
func targetDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current directory: %w", err)
	}
	return dir, nil
}

// newExtractor selects the extraction backend. "auto" prefers exiftool
// when installed and falls back to the built-in reader; asking for
// exiftool explicitly when it is missing is fatal.
func newExtractor(name string) (ports.Extractor, error) {
	switch name {
	case "", "goexif":
		return extractor.NewGoexifExtractor(), nil
	case "exiftool":
		et := extractor.NewExiftoolExtractor()
		if err := et.Available(); err != nil {
			return nil, err
		}
		return et, nil
	case "auto":
		et := extractor.NewExiftoolExtractor()
		if et.IsAvailable() {
			return et, nil
		}
		return extractor.NewGoexifExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want goexif, exiftool, or auto)", name)
	}
}

// newScanService wires an enumerator and a backend for one directory
func newScanService(dir string, extensions []string, backend string) (*services.ScanService, error) {
	ext, err := newExtractor(backend)
	if err != nil {
		return nil, err
	}
	repo := repository.NewPhotoRepository(dir, extensions)
	return services.NewScanService(repo, ext), nil
}
