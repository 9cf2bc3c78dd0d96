package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"shuttercheck/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the shuttercheck configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()

		// First run: write the defaults so there is something to edit.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := appConfig.Save(path); err != nil {
				return err
			}
			fmt.Println(ui.FormatInfo("Created default config: " + path))
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		c := exec.Command(GetPreferredEditor(), path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}
