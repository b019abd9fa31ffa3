// Package cli implements reviewctl, an operator tool over the same
// loader, filters and aggregations the API serves.
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resto_dashboard/internal/adapters/observability"
	"resto_dashboard/internal/adapters/sources"
	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
	"resto_dashboard/internal/shared"
)

// EnvPrefix namespaces reviewctl settings, e.g. RESTO_SOURCE.
const EnvPrefix = "RESTO"

// NewRootCmd builds a fresh command tree; tests build their own.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Inspect, filter and export restaurant reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = observability.NewLogger("dev", v.GetString("log-level"))
		},
	}

	pf := root.PersistentFlags()
	pf.String("source", "review_restoran_scraped_2025.csv", "review file (CSV/TSV)")
	pf.String("source-kind", shared.SourceFile, "source kind: file, http or mysql")
	pf.String("source-url", "", "URL of the review table when --source-kind=http")
	pf.String("mysql-dsn", "", "MySQL DSN when --source-kind=mysql")
	pf.String("log-level", "warn", "log level")
	_ = v.BindPFlags(pf)

	root.AddCommand(newSummaryCmd(v), newExportCmd(v), newClassifyCmd())
	return root
}

// Execute is the entry point called by main.main().
func Execute() {
	shared.LoadEnvFile()
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addCriteriaFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("min-rating", app.MinRating, "lowest rating to include")
	f.Int("max-rating", app.MaxRating, "highest rating to include")
	f.String("restaurant", app.AllRestaurants, "restaurant name or ALL")
	f.String("start", "", "first day to include (YYYY-MM-DD)")
	f.String("end", "", "last day to include (YYYY-MM-DD)")
}

// bindLocal binds the running command's flags. Subcommands share flag
// names, so binding happens at run time rather than at construction.
func bindLocal(cmd *cobra.Command, v *viper.Viper) error {
	return v.BindPFlags(cmd.Flags())
}

func criteriaFrom(v *viper.Viper) (domain.Criteria, error) {
	return app.NewCriteria(v.GetInt("min-rating"), v.GetInt("max-rating"),
		v.GetString("restaurant"), v.GetString("start"), v.GetString("end"))
}

// loadDataset opens the configured source and loads it once.
func loadDataset(cmd *cobra.Command, v *viper.Viper) (*app.Dataset, error) {
	cfg := shared.Config{
		SourceKind: strings.ToLower(v.GetString("source-kind")),
		SourcePath: v.GetString("source"),
		SourceURL:  v.GetString("source-url"),
		FetchRPS:   5,
	}
	var db *sql.DB
	if cfg.SourceKind == shared.SourceMySQL {
		var err error
		if db, err = sql.Open("mysql", v.GetString("mysql-dsn")); err != nil {
			return nil, err
		}
		defer db.Close()
	}
	src, err := sources.Open(cfg, db)
	if err != nil {
		return nil, err
	}
	return app.LoadDataset(cmd.Context(), src, nil)
}
