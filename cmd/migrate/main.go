// Command migrate applies the PrimeLeads schema: prompt overrides, run
// history and the knowledge-base vector table.
package main

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "PRIMELEADS_DB_DSN"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or roll back the PrimeLeads database schema",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "database URL (default $"+envDSN+", then the configured database)")

	// withMigrator opens the embedded migrations against the resolved
	// database for the duration of fn.
	withMigrator := func(fn func(cmd *cobra.Command, m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, err := open(dsn)
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(cmd, m, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				return report(cmd, "up", m.Up())
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert every applied migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				return report(cmd, "down", m.Down())
			}),
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations, or revert them when N is negative",
			Args: cobra.MatchAll(cobra.ExactArgs(1), func(_ *cobra.Command, args []string) error {
				if n, err := strconv.Atoi(args[0]); err != nil || n == 0 {
					return fmt.Errorf("steps: want a non-zero integer, got %q", args[0])
				}
				return nil
			}),
			RunE: withMigrator(func(cmd *cobra.Command, m *migrate.Migrate, args []string) error {
				n, _ := strconv.Atoi(args[0])
				return report(cmd, fmt.Sprintf("%d steps", n), m.Steps(n))
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				v, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "version: none")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d, dirty: %v\n", v, dirty)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Mark version V as applied without running it, clearing a dirty state",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(cmd *cobra.Command, m *migrate.Migrate, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("force: %w", err)
				}
				if err := m.Force(v); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "forced to version %d\n", v)
				return nil
			}),
		},
	)
	return root
}

func open(dsn string) (*migrate.Migrate, error) {
	target, err := resolveDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", source, target)
}

// resolveDSN prefers the flag, then PRIMELEADS_DB_DSN, then the database
// section of the application config.
func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	_ = godotenv.Load()
	if env := os.Getenv(envDSN); env != "" {
		return env, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Database.URL(), nil
}

func report(cmd *cobra.Command, what string, err error) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		fmt.Fprintf(cmd.OutOrStdout(), "%s: already current\n", what)
	case err != nil:
		return fmt.Errorf("migrate %s: %w", what, err)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: done\n", what)
	}
	return nil
}
