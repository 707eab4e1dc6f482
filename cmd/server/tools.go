package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"retrato/internal/export"
	"retrato/internal/reference"
)

func (a *app) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <municipality-id>",
		Short: "Print the profile of one municipality as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.build(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close()

			p, err := c.service.BuildProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(a.out, p)
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <municipality-id>",
		Short: "Export the profile of one municipality as CSV or XLSX",
		Long: `Builds the profile and writes it as a file. Without --output the file is
named after the municipality in the current directory; "-" writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			c, err := a.build(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close()

			p, err := c.service.BuildProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "-" {
				return export.Write(a.out, p, f, time.Now())
			}
			if output == "" {
				output = export.FileName(p, f)
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := export.Write(file, p, f, time.Now()); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}
			cmd.PrintErrf("wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file, - for stdout")
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print record counts of the static datasets",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return writeJSON(a.out, reference.Load(a.cfg.DataDir, a.log).Stats())
		},
	}
}

func (a *app) clearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Drop every cached search and profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.build(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close()
			return c.service.ClearCache(cmd.Context())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
