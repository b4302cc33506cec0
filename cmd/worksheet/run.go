package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"Thruster/internal/calc/report"
	"Thruster/internal/calc/worksheet"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		configPath string
		pdfPath    string
		xlsxPath   string
		author     string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the worksheet file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := worksheet.LoadFile(configPath)
			if err != nil {
				return err
			}
			sheet, err := worksheet.Evaluate(in)
			if err != nil {
				return err
			}
			if err := printSheet(cmd.OutOrStdout(), sheet); err != nil {
				return err
			}
			if pdfPath != "" {
				meta := report.Meta{Project: sheet.Title, Author: author}
				if err := writeFile(pdfPath, func(w io.Writer) error { return report.PDF(w, meta, sheet) }); err != nil {
					return err
				}
			}
			if xlsxPath != "" {
				if err := writeFile(xlsxPath, func(w io.Writer) error { return report.XLSX(w, sheet) }); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "conf/worksheet.ini", "worksheet ini file")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF report to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an xlsx workbook to this path")
	cmd.Flags().StringVar(&author, "author", "", "author shown on the PDF report")
	return cmd
}

func printSheet(out io.Writer, sheet worksheet.Sheet) error {
	fmt.Fprintf(out, "%s\n\n", sheet.Title)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, sec := range sheet.Sections {
		fmt.Fprintf(tw, "[%s]\t\n", sec.Title)
		for _, row := range sec.Rows {
			fmt.Fprintf(tw, "  %s\t%s\n", row.Name, row.Display())
		}
		fmt.Fprintln(tw, "\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, w := range sheet.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
