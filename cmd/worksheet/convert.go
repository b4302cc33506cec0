package main

import (
	"fmt"

	"Thruster/internal/units"

	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var prec int
	cmd := &cobra.Command{
		Use:     "convert QUANTITY UNIT",
		Short:   "Convert a quantity to another unit",
		Example: `  worksheet convert "900 psi" MPa`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := units.Parse(args[0])
			if err != nil {
				return err
			}
			out, err := q.To(args[1])
			if err != nil {
				return err
			}
			if prec < 0 {
				fmt.Fprintln(cmd.OutOrStdout(), out.String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Format(prec))
			return nil
		},
	}
	cmd.Flags().IntVar(&prec, "prec", -1, "decimal places; negative prints the shortest exact form")
	return cmd
}
