package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/tripboard/migrations"
)

// opener opens the database named by dsn. Swapped out in tests.
type opener func(dsn string) (*sql.DB, error)

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func newRootCmd(out io.Writer, open opener) *cobra.Command {
	var dsn string
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or inspect trip board schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&dsn, "database-url", "d", os.Getenv("DATABASE_URL"), "Postgres connection string (defaults to $DATABASE_URL)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Overall deadline for the command")

	// withProvider opens the database, builds the goose provider and runs fn.
	withProvider := func(cmd *cobra.Command, fn func(ctx context.Context, p *goose.Provider) error) error {
		if dsn == "" {
			return errors.New("--database-url or DATABASE_URL is required")
		}
		db, err := open(dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := migrations.NewProvider(db)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return fn(ctx, p)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, func(ctx context.Context, p *goose.Provider) error {
					results, err := p.Up(ctx)
					if err != nil {
						return err
					}
					printResults(out, results)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, func(ctx context.Context, p *goose.Provider) error {
					res, err := p.Down(ctx)
					if err != nil {
						return err
					}
					printResults(out, []*goose.MigrationResult{res})
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List every migration and whether it is applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, func(ctx context.Context, p *goose.Provider) error {
					statuses, err := p.Status(ctx)
					if err != nil {
						return err
					}
					printStatus(out, statuses)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, func(ctx context.Context, p *goose.Provider) error {
					v, err := p.GetDBVersion(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, v)
					return nil
				})
			},
		},
	)
	return root
}

func printResults(out io.Writer, results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, "no migrations to apply")
		return
	}
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		fmt.Fprintf(out, "%-4s %d %s (%s)\n", r.Direction, r.Source.Version, r.Source.Path, r.Duration.Round(time.Millisecond))
	}
}

func printStatus(out io.Writer, statuses []*goose.MigrationStatus) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, s := range statuses {
		applied := "-"
		if !s.AppliedAt.IsZero() {
			applied = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
	}
	tw.Flush()
}
