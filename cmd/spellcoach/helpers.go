package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/spellcoach/spellcoach/internal/config"
	"github.com/spellcoach/spellcoach/internal/database"
	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/study"
	"github.com/spellcoach/spellcoach/internal/word"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

type stores struct {
	db      *sqlx.DB
	words   word.Repository
	reviews review.Repository
	cards   srs.Repository
	study   *study.Service
}

func openStores(cfg *config.Config) (*stores, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open(%s) > %w", cfg.Database.Path, err)
	}

	words := word.NewDBRepository(db)
	reviews := review.NewDBRepository(db)
	cards := srs.NewDBRepository(db)
	return &stores{
		db:      db,
		words:   words,
		reviews: reviews,
		cards:   cards,
		study:   study.NewService(words, reviews, cards),
	}, nil
}

func (s *stores) Close() error {
	return s.db.Close()
}
