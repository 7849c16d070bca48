package server

import (
	"time"

	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/statistics"
	"github.com/spellcoach/spellcoach/internal/study"
	"github.com/spellcoach/spellcoach/internal/transfer"
	"github.com/spellcoach/spellcoach/internal/word"
)

type wordRequest struct {
	Text string `json:"text"`
	Hint string `json:"hint"`
}

type wordBatchRequest struct {
	Words []wordRequest `json:"words"`
}

type wordBatchResponse struct {
	Created []word.Word `json:"created"`
	Skipped []string    `json:"skipped,omitempty"`
}

type wordsResponse struct {
	Words []word.Word `json:"words"`
}

type studyNextResponse struct {
	Items []study.Item `json:"items"`
}

type attemptRequest struct {
	WordID         string `json:"word_id"`
	Attempt        string `json:"attempt"`
	ResponseTimeMs int64  `json:"response_time_ms,omitempty"`
}

type attemptResponse struct {
	Outcome  study.Outcome `json:"outcome"`
	Quality  int           `json:"quality"`
	Recorded bool          `json:"recorded"`
	Answer   string        `json:"answer"`
	Card     *srs.Card     `json:"card,omitempty"`
}

type ratingRequest struct {
	WordID  string `json:"word_id"`
	Quality int    `json:"quality"`
}

type ratingResponse struct {
	Card srs.Card `json:"card"`
}

type generateRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count,omitempty"`
	Age   int    `json:"age,omitempty"`
}

type generateResponse struct {
	Suggestions []suggestionResponse `json:"suggestions"`
}

type suggestionResponse struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

type importResponse struct {
	Result transfer.ImportResult `json:"result"`
}

type statisticsResponse struct {
	Summary statistics.Summary    `json:"summary"`
	ByDay   []statistics.DayCount `json:"by_day"`
	Now     time.Time             `json:"now"`
}

type errorResponse struct {
	Error string `json:"error"`
}
