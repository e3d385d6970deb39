// Command fleetctl prints policy reports, exports the trip log and seeds
// MongoDB from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-dashboard/internal/config"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/logging"
	"github.com/ukydev/fleet-dashboard/internal/mockdata"
)

// cli carries the flags and collaborators shared by every subcommand.
type cli struct {
	fleetPath string
	source    string
	mongoURI  string
	mongoDB   string
	verbose   bool

	out io.Writer
	log *logrus.Logger
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Fleet dashboard command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.fleetPath, "fleet", "", "YAML fleet snapshot (default: embedded demo fleet)")
	root.PersistentFlags().StringVar(&c.source, "source", "", "data source: memory or mongo (default: $DATA_SOURCE)")
	root.PersistentFlags().StringVar(&c.mongoURI, "mongo-uri", "", "MongoDB URI (default: $MONGO_URI)")
	root.PersistentFlags().StringVar(&c.mongoDB, "mongo-db", "", "MongoDB database (default: $MONGO_DB)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log rejected entries and debug output")

	root.AddCommand(c.policyCmd(), c.tripsCmd(), c.seedCmd())
	return root
}

// setup fills unset flags from the environment and sets up logging.
func (c *cli) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.source == "" {
		c.source = cfg.DataSource
	}
	if c.mongoURI == "" {
		c.mongoURI = cfg.MongoURI
	}
	if c.mongoDB == "" {
		c.mongoDB = cfg.MongoDB
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Options{Level: level, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	c.log = log
	return nil
}

// openStore returns the store selected by --source. A --fleet file always
// means the in-memory store.
func (c *cli) openStore(ctx context.Context) (db.Store, error) {
	if c.source == config.SourceMongo && c.fleetPath == "" {
		client, err := db.ConnectMongo(ctx, c.mongoURI)
		if err != nil {
			return nil, err
		}
		return db.NewMongoStore(client, c.mongoDB), nil
	}

	fleet, err := mockdata.Load(c.fleetPath)
	if err != nil {
		return nil, fmt.Errorf("load fleet: %w", err)
	}
	return db.NewMemoryStore(fleet), nil
}
