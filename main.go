package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/config"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/httpserver"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/session"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/store"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg.Log)

	st, closeStore := openStore(cfg.Store)
	defer closeStore()

	mgr := session.NewManager(st, newValidator(cfg.Dictionary), log.Logger, session.Options{
		RequireValidWords: cfg.Game.RequireValidWords,
	})
	srv := httpserver.New(cfg, mgr, log.Logger)

	log.Info().Str("port", cfg.Server.Port).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(c config.LogConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// openStore picks SQLite when a database path is configured, memory otherwise.
func openStore(c config.StoreConfig) (store.Store, func()) {
	if c.DatabasePath == "" {
		log.Info().Msg("using in-memory game store")
		return store.NewMemoryStore(), func() {}
	}
	db, err := openDB(c.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", c.DatabasePath).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Str("path", c.DatabasePath).Msg("using sqlite game store")
	return store.NewSQLStore(db), func() { _ = db.Close() }
}

// newValidator wires the dictionary client behind an LRU cache. With the
// dictionary disabled only the local rule applies.
func newValidator(c config.DictionaryConfig) *words.Validator {
	if !c.Enabled {
		return words.NewValidator(nil, log.Logger)
	}
	cached, err := words.NewCachedLookup(words.NewClient(c.BaseURL, c.Timeout, log.Logger), c.CacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dictionary cache")
	}
	return words.NewValidator(cached, log.Logger)
}
