// Package server provides the HTTP JSON API for the browser front end.
package server

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/spellcoach/spellcoach/internal/inference"
	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/settings"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/study"
	"github.com/spellcoach/spellcoach/internal/transfer"
	"github.com/spellcoach/spellcoach/internal/word"
)

// API holds the handler dependencies.
type API struct {
	words        word.Repository
	reviews      review.Repository
	cards        srs.Repository
	study        *study.Service
	settings     *settings.FileRepository
	inference    inference.Client
	exporter     *transfer.Exporter
	importer     *transfer.Importer
	sessionLimit int
}

// NewAPI creates the API with its dependencies. inferenceClient may be nil
// when no API key is configured; the generate endpoint then returns an error.
func NewAPI(
	words word.Repository,
	reviews review.Repository,
	cards srs.Repository,
	studyService *study.Service,
	settingsRepo *settings.FileRepository,
	inferenceClient inference.Client,
	sessionLimit int,
) *API {
	return &API{
		words:        words,
		reviews:      reviews,
		cards:        cards,
		study:        studyService,
		settings:     settingsRepo,
		inference:    inferenceClient,
		exporter:     transfer.NewExporter(words, reviews, cards),
		importer:     transfer.NewImporter(words, reviews, cards),
		sessionLimit: sessionLimit,
	}
}

// NewRouter wires routes and CORS for the given allowed origins.
func NewRouter(api *API, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/words", api.HandleListWords)
	mux.HandleFunc("POST /api/words", api.HandleCreateWord)
	mux.HandleFunc("POST /api/words/batch", api.HandleCreateWordBatch)
	mux.HandleFunc("GET /api/words/{wordID}", api.HandleGetWord)
	mux.HandleFunc("PUT /api/words/{wordID}", api.HandleUpdateWord)
	mux.HandleFunc("DELETE /api/words/{wordID}", api.HandleDeleteWord)

	mux.HandleFunc("GET /api/study/next", api.HandleStudyNext)
	mux.HandleFunc("POST /api/study/attempts", api.HandleStudyAttempt)
	mux.HandleFunc("POST /api/study/ratings", api.HandleStudyRating)

	mux.HandleFunc("GET /api/settings", api.HandleGetSettings)
	mux.HandleFunc("PUT /api/settings", api.HandleUpdateSettings)

	mux.HandleFunc("POST /api/generate", api.HandleGenerate)

	mux.HandleFunc("GET /api/export", api.HandleExport)
	mux.HandleFunc("POST /api/import", api.HandleImport)

	mux.HandleFunc("GET /api/statistics", api.HandleStatistics)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	})
	return corsHandler.Handler(mux)
}
