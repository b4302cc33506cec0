package main

import (
	"fmt"
	"text/tabwriter"

	"Thruster/internal/calc/stress"
	"Thruster/internal/units"

	"github.com/spf13/cobra"
)

func newStressCmd() *cobra.Command {
	var pressure, radius, thickness, strength, unit string
	cmd := &cobra.Command{
		Use:     "stress",
		Short:   "Thin-wall stresses and factors of safety",
		Example: `  worksheet stress --pressure "900 psi" --radius "2.25 in" --thickness "0.25 in" --strength "35 ksi"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in stress.Input
			for _, f := range []struct {
				flag string
				src  string
				dst  *units.Quantity
			}{
				{"pressure", pressure, &in.Pressure},
				{"radius", radius, &in.Radius},
				{"thickness", thickness, &in.Thickness},
				{"strength", strength, &in.Strength},
			} {
				q, err := units.Parse(f.src)
				if err != nil {
					return fmt.Errorf("--%s: %w", f.flag, err)
				}
				*f.dst = q
			}
			in.Unit = unit
			res, err := stress.Calculate(in)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "hoop stress\t%s\n", res.Hoop.Format(0))
			fmt.Fprintf(tw, "longitudinal stress\t%s\n", res.Longitudinal.Format(0))
			fmt.Fprintf(tw, "FOS hoop\t%.2f\n", res.FOSHoop)
			fmt.Fprintf(tw, "FOS longitudinal\t%.2f\n", res.FOSLongitudinal)
			fmt.Fprintf(tw, "t/r\t%.3f\n", res.WallRatio)
			if err := tw.Flush(); err != nil {
				return err
			}
			if !res.ThinWall {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: t/r %.3f exceeds thin-wall limit %.2f\n", res.WallRatio, stress.ThinWallLimit)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&pressure, "pressure", "p", "", "internal pressure, e.g. \"900 psi\"")
	cmd.Flags().StringVarP(&radius, "radius", "r", "", "vessel radius")
	cmd.Flags().StringVarP(&thickness, "thickness", "t", "", "wall thickness")
	cmd.Flags().StringVarP(&strength, "strength", "s", "", "material yield strength")
	cmd.Flags().StringVar(&unit, "unit", "psi", "unit for reported stresses")
	for _, name := range []string{"pressure", "radius", "thickness", "strength"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}
