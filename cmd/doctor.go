package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"shuttercheck/pkg/config"
	"shuttercheck/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Check the health of your shuttercheck setup",
	Args:  cobra.MaximumNArgs(1),
	Long: `Diagnose issues with the shuttercheck environment.

Checks for:
  - Readability of the target directory
  - Configuration file
  - The exiftool binary (needed by the exiftool backend)
  - EDITOR for 'shuttercheck config'`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("shuttercheck doctor"))
	fmt.Println()

	checkStep("Target Directory", func() error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		if _, err := os.ReadDir(dir); err != nil {
			return fmt.Errorf("not readable: %v", err)
		}
		return nil
	})

	checkStep("Configuration File", func() error {
		path := configPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (defaults apply; 'shuttercheck config' creates it)", path)
		}
		if _, err := config.Load(path); err != nil {
			return err
		}
		return nil
	})

	checkStep("exiftool (Inspect Backend)", func() error {
		if _, err := exec.LookPath("exiftool"); err != nil {
			return fmt.Errorf("not found in PATH (required for --backend exiftool; the built-in goexif backend still works)")
		}
		return nil
	})

	checkStep("EDITOR Variable", func() error {
		if GetPreferredEditor() == "vi" && os.Getenv("EDITOR") == "" && appConfig.Editor == "" {
			return fmt.Errorf("not set (using fallback 'vi')")
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
