// Package sources builds the configured review source.
package sources

import (
	"database/sql"
	"fmt"

	"resto_dashboard/internal/adapters/csvfile"
	"resto_dashboard/internal/adapters/remote"
	"resto_dashboard/internal/domain"
	"resto_dashboard/internal/shared"
	mysqlrepo "resto_dashboard/internal/storage/mysql"
)

// Open returns the source named by cfg.SourceKind. db is only used for mysql.
func Open(cfg shared.Config, db *sql.DB) (domain.ReviewSource, error) {
	switch cfg.SourceKind {
	case shared.SourceFile, "":
		if cfg.SourcePath == "" {
			return nil, fmt.Errorf("SOURCE_PATH is required for file sources")
		}
		return csvfile.New(cfg.SourcePath), nil
	case shared.SourceHTTP:
		return remote.NewSource(cfg.SourceURL, remote.New(cfg.SourceToken, cfg.FetchRPS))
	case shared.SourceMySQL:
		if db == nil {
			return nil, fmt.Errorf("mysql source needs a database connection")
		}
		return mysqlrepo.New(db), nil
	default:
		return nil, fmt.Errorf("unknown SOURCE_KIND %q (want file, http or mysql)", cfg.SourceKind)
	}
}

// Watchable reports the file path to watch, if the source is a local file.
func Watchable(src domain.ReviewSource) (string, bool) {
	if f, ok := src.(*csvfile.Source); ok {
		return f.Path(), true
	}
	return "", false
}
