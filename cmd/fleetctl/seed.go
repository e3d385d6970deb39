package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/mockdata"
)

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Copy the fleet snapshot into MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.mongoURI == "" {
				return fmt.Errorf("seed needs --mongo-uri or MONGO_URI")
			}
			fleet, err := mockdata.Load(c.fleetPath)
			if err != nil {
				return fmt.Errorf("load fleet: %w", err)
			}

			ctx := cmd.Context()
			client, err := db.ConnectMongo(ctx, c.mongoURI)
			if err != nil {
				return err
			}
			store := db.NewMongoStore(client, c.mongoDB)
			defer store.Close(ctx)

			if err := store.Seed(ctx, fleet); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Seeded %s: %d users, %d vehicles, %d trips, %d costs, %d maintenance records, %d chauffeurs\n",
				c.mongoDB, len(fleet.Users), len(fleet.Vehicles), len(fleet.Trips), len(fleet.Costs), len(fleet.Maintenance), len(fleet.Chauffeurs))
			return nil
		},
	}
}
