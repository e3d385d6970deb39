package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-dashboard/internal/policy"
)

func (c *cli) policyCmd() *cobra.Command {
	var (
		asOf   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print each employee's vehicle usage against the policy limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now().UTC()
			if asOf != "" {
				t, err := policy.ParseDate(asOf)
				if err != nil {
					return fmt.Errorf("--as-of: %w", err)
				}
				at = t
			}

			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			users, err := store.FindUsers(ctx)
			if err != nil {
				return err
			}
			vehicles, err := store.FindVehicles(ctx)
			if err != nil {
				return err
			}

			report, err := policy.NewEvaluator(c.log).EvaluateAt(users, vehicles, at)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return c.printReport(report)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluate at this date (YYYY-MM-DD) instead of today")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}

func (c *cli) printReport(report *policy.Report) error {
	if len(report.Summaries) == 0 {
		_, err := fmt.Fprintln(c.out, "No policy data: no employee vehicle assignments found.")
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tNAME\tDEPARTMENT\tKM\tKM %\tMONTHS\tTIME %\tSTATUS")
	for _, s := range report.Summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\t%.1f\t%d\t%.1f\t%s\n",
			s.EmployeeID, s.Name, s.Department, s.TotalKmDriven, s.KmPercentage,
			s.MonthsElapsed, s.TimePercentage, s.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\nEvaluated at %s: %d employees, %d non-compliant, %d rejected entries\n",
		report.EvaluatedAt.Format("2006-01-02"), len(report.Summaries), len(report.NonCompliant()), len(report.Rejections))
	for _, r := range report.Rejections {
		fmt.Fprintf(c.out, "  rejected %s[%d] (%s): %s\n", r.VehicleID, r.Index, r.AssignedToID, r.Reason)
	}
	return nil
}
