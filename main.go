package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-elements/internal/config"
	"github.com/robalobadob/wordle-elements/internal/db"
	"github.com/robalobadob/wordle-elements/internal/httpserver"
	"github.com/robalobadob/wordle-elements/internal/store"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

func main() {
	config.LoadDotenv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer conn.Close()
	if err := db.Migrate(context.Background(), conn, db.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	if err := tile.Default.Alias(cfg.TileAliases...); err != nil {
		log.Fatal().Err(err).Strs("aliases", cfg.TileAliases).Msg("define tile aliases")
	}

	srv := httpserver.New(cfg, boardStore(cfg, conn), conn, tile.Default)
	log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("starting wordle-elements server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// boardStore keeps boards in memory when the database itself is in memory;
// authors always live in conn.
func boardStore(cfg config.Config, conn *sql.DB) store.Store {
	if cfg.DBPath == ":memory:" {
		log.Debug().Msg("using in-memory board store")
		return store.NewMemoryStore()
	}
	return store.NewSQLStore(conn)
}
