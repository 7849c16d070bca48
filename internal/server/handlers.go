package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spellcoach/spellcoach/internal/inference"
	"github.com/spellcoach/spellcoach/internal/statistics"
	"github.com/spellcoach/spellcoach/internal/study"
	"github.com/spellcoach/spellcoach/internal/transfer"
	"github.com/spellcoach/spellcoach/internal/word"
)

// HandleListWords returns every word ordered by text.
func (a *API) HandleListWords(w http.ResponseWriter, r *http.Request) {
	words, err := a.words.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wordsResponse{Words: words})
}

// HandleGetWord returns a single word by ID.
func (a *API) HandleGetWord(w http.ResponseWriter, r *http.Request) {
	found, err := a.words.FindByID(r.Context(), r.PathValue("wordID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if found == nil {
		writeError(w, word.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// HandleCreateWord adds a single word.
func (a *API) HandleCreateWord(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request wordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	text := normalizeWordText(request.Text)
	if text == "" {
		writeBadRequest(w, "text is required")
		return
	}

	id, err := word.NewID()
	if err != nil {
		writeError(w, err)
		return
	}
	created := &word.Word{ID: id, Text: text, Hint: strings.TrimSpace(request.Hint)}
	if err := a.words.Create(r.Context(), created); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleCreateWordBatch adds several words at once, typically accepted
// LLM suggestions. Duplicates are reported, not treated as errors.
func (a *API) HandleCreateWordBatch(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request wordBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if len(request.Words) == 0 {
		writeBadRequest(w, "words is required")
		return
	}

	response := wordBatchResponse{}
	for _, entry := range request.Words {
		text := normalizeWordText(entry.Text)
		if text == "" {
			continue
		}

		existing, err := a.words.FindByText(r.Context(), text)
		if err != nil {
			writeError(w, err)
			return
		}
		if existing != nil {
			response.Skipped = append(response.Skipped, text)
			continue
		}

		id, err := word.NewID()
		if err != nil {
			writeError(w, err)
			return
		}
		created := word.Word{ID: id, Text: text, Hint: strings.TrimSpace(entry.Hint)}
		if err := a.words.Create(r.Context(), &created); err != nil {
			writeError(w, err)
			return
		}
		response.Created = append(response.Created, created)
	}

	writeJSON(w, http.StatusCreated, response)
}

// HandleUpdateWord updates a word's text and hint.
func (a *API) HandleUpdateWord(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request wordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	text := normalizeWordText(request.Text)
	if text == "" {
		writeBadRequest(w, "text is required")
		return
	}

	updated := &word.Word{
		ID:   r.PathValue("wordID"),
		Text: text,
		Hint: strings.TrimSpace(request.Hint),
	}
	if err := a.words.Update(r.Context(), updated); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDeleteWord deletes a word with its reviews and card.
func (a *API) HandleDeleteWord(w http.ResponseWriter, r *http.Request) {
	if err := a.study.DeleteWord(r.Context(), r.PathValue("wordID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStudyNext returns due items in presentation order.
func (a *API) HandleStudyNext(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitParam(r, a.sessionLimit)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	items, err := a.study.Next(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, studyNextResponse{Items: items})
}

// HandleStudyAttempt auto-rates a typed attempt.
func (a *API) HandleStudyAttempt(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if request.WordID == "" {
		writeBadRequest(w, "word_id is required")
		return
	}

	result, err := a.study.SubmitAttempt(r.Context(), request.WordID, request.Attempt, request.ResponseTimeMs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attemptResponse{
		Outcome:  result.Outcome,
		Quality:  result.Quality,
		Recorded: result.Recorded,
		Answer:   result.Word.Text,
		Card:     result.Card,
	})
}

// HandleStudyRating records a manual self-assessment after a reveal.
func (a *API) HandleStudyRating(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if request.WordID == "" {
		writeBadRequest(w, "word_id is required")
		return
	}

	card, err := a.study.RateManually(r.Context(), request.WordID, request.Quality)
	if err != nil {
		if errors.Is(err, study.ErrInvalidQuality) {
			writeBadRequest(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratingResponse{Card: *card})
}

// HandleGetSettings returns the stored learner settings.
func (a *API) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := a.settings.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

// HandleUpdateSettings replaces the learner settings.
func (a *API) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	current, err := a.settings.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&current); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := a.settings.Save(current); err != nil {
		writeError(w, err)
		return
	}

	saved, err := a.settings.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleGenerate asks the language model for new word/hint suggestions.
// Nothing is persisted; accepted suggestions go through the batch endpoint.
func (a *API) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if a.inference == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "word generation is not configured"})
		return
	}

	defer r.Body.Close()

	var request generateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	current, err := a.settings.Load()
	if err != nil {
		writeError(w, err)
		return
	}

	existing, err := a.words.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	avoid := make([]string, 0, len(existing))
	for _, known := range existing {
		avoid = append(avoid, known.Text)
	}

	result, err := a.inference.GenerateWords(r.Context(), inference.GenerateWordsRequest{
		Topic:          request.Topic,
		Count:          request.Count,
		Age:            request.Age,
		AvoidWords:     avoid,
		PromptTemplate: current.PromptTemplate,
	})
	if err != nil {
		slog.Default().Error("word generation failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "word generation failed"})
		return
	}

	response := generateResponse{Suggestions: make([]suggestionResponse, 0, len(result.Suggestions))}
	for _, s := range result.Suggestions {
		response.Suggestions = append(response.Suggestions, suggestionResponse{Word: s.Word, Hint: s.Hint})
	}
	writeJSON(w, http.StatusOK, response)
}

// HandleExport streams the full JSON backup.
func (a *API) HandleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "spellcoach-backup-"+time.Now().Format("2006-01-02")+".json"))
	if err := a.exporter.Export(r.Context(), w); err != nil {
		slog.Default().Error("export failed", "error", err)
	}
}

// HandleImport merges an uploaded JSON backup.
func (a *API) HandleImport(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	result, err := a.importer.Import(r.Context(), r.Body)
	if err != nil {
		if errors.Is(err, transfer.ErrInvalidBackup) {
			writeBadRequest(w, "invalid backup document")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Result: *result})
}

// HandleStatistics returns the progress summary and per-day review counts.
func (a *API) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	words, err := a.words.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	cards, err := a.cards.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	reviews, err := a.reviews.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	writeJSON(w, http.StatusOK, statisticsResponse{
		Summary: statistics.Summarize(words, cards, reviews, now),
		ByDay:   statistics.ReviewsByDay(reviews),
		Now:     now,
	})
}
