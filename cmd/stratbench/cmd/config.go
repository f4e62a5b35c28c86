package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratbench/stratbench/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().SaveToFile(configOut); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", configOut)
		return nil
	},
}

var configOut string

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configOut, "out", "o", "stratbench.yaml", "output path")
}
