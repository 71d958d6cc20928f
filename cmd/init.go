package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakchai-01/school-pos/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a .schoolpos.yml configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard()
		if err != nil {
			return err
		}
		fmt.Printf("Run `school-pos seed` to load demo data, then `school-pos serve` (port %d).\n", cfg.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
