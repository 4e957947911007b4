package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sentinelops/internal/config"
	"sentinelops/internal/db"
	"sentinelops/internal/incidents"
	"sentinelops/internal/inventory"
)

// openSnapshotter selects the Postgres backend when a DSN is configured and
// the JSON data file otherwise.
func openSnapshotter(ctx context.Context, c config.Config) (incidents.Snapshotter, func(), error) {
	if c.DBDSN == "" {
		logger.Info("using file snapshot", zap.String("path", c.DataPath))
		return incidents.NewFileSnapshotter(c.DataPath), func() {}, nil
	}
	conn, err := db.Open(ctx, c.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("using postgres snapshot")
	return db.NewSnapshotter(conn), func() { conn.Close() }, nil
}

var incidentsCmd = &cobra.Command{
	Use:   "incidents",
	Short: "Inspect or reset stored incidents",
}

var incidentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored incidents as JSON, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		return printJSON(cmd, store.List())
	},
}

var incidentsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored incident",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		if err := store.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear incidents: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All incidents were deleted.")
		return nil
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Print the inventory catalog as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := inventory.LoadCatalog(cfg.InventoryPath)
		if err != nil {
			return err
		}
		return printJSON(cmd, catalog.List())
	},
}

func init() {
	incidentsCmd.AddCommand(incidentsListCmd, incidentsClearCmd)
}

func openStore(ctx context.Context) (*incidents.Store, func(), error) {
	snap, closeFn, err := openSnapshotter(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return incidents.NewStore(ctx, snap, logger), closeFn, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
