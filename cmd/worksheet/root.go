package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "worksheet",
		Short: "Thruster sizing worksheet",
		Long: `Evaluate a thruster sizing worksheet from an ini file and
check individual tank walls.

Subcommands:
  run      - Evaluate the worksheet and print every section
  stress   - Hoop and longitudinal stress for one vessel
  convert  - Convert a quantity to another unit`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newStressCmd(), newConvertCmd())
	return root
}
