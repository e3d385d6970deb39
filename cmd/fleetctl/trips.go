package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-dashboard/internal/policy"
	"github.com/ukydev/fleet-dashboard/internal/triplog"
)

func (c *cli) tripsCmd() *cobra.Command {
	trips := &cobra.Command{
		Use:   "trips",
		Short: "Trip log commands",
	}
	trips.AddCommand(c.tripsExportCmd())
	return trips
}

func (c *cli) tripsExportCmd() *cobra.Command {
	var (
		outPath string
		filter  triplog.Filter
		from    string
		to      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the trip log as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from != "" {
				t, err := policy.ParseDate(from)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				filter.From = t
			}
			if to != "" {
				t, err := policy.ParseDate(to)
				if err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				filter.To = t.Add(24*time.Hour - time.Nanosecond)
			}

			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			all, err := store.FindTrips(ctx)
			if err != nil {
				return err
			}
			matched := filter.Apply(all)

			var w io.Writer = c.out
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := triplog.WriteCSV(w, matched); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(c.out, "Wrote %d trips to %s\n", len(matched), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&filter.VehicleID, "vehicle", "", "only trips of this vehicle")
	cmd.Flags().StringVar(&filter.DriverID, "driver", "", "only trips of this driver")
	cmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	return cmd
}
