package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/CTAG07/Babble/pkg/markov"
)

const (
	// maxSentencesPerRequest bounds the count parameter of /api/markov/generate.
	maxSentencesPerRequest = 100
	// defaultMaxTokens caps sentence length when no --max-length is given, so a
	// looping corpus cannot hold the model lock forever.
	defaultMaxTokens = 1000
)

// MarkovAPI holds the dependencies for the Markov model API handlers.
// The model is not safe for concurrent use, so every request holds mu while
// it touches it.
type MarkovAPI struct {
	mu        sync.Mutex
	model     *markov.Model
	maxLength int
	logger    *slog.Logger
}

// NewMarkovAPI creates a new instance of the MarkovAPI. A maxLength of 0
// applies defaultMaxTokens.
func NewMarkovAPI(model *markov.Model, maxLength int, logger *slog.Logger) *MarkovAPI {
	if maxLength <= 0 {
		maxLength = defaultMaxTokens
	}
	return &MarkovAPI{
		model:     model,
		maxLength: maxLength,
		logger:    logger,
	}
}

// RegisterRoutes sets up the routing for all /api/markov endpoints.
func (m *MarkovAPI) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/markov/generate", m.handleGenerate)
	e.GET("/api/markov/stats", m.handleStats)
}

// GenerateResponse is the body returned by /api/markov/generate.
type GenerateResponse struct {
	ID        string   `json:"id"`
	Sentences []string `json:"sentences"`
}

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(c *echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorResponse{Error: msg})
}

// handleGenerate handles GET for generating one or more sentences.
func (m *MarkovAPI) handleGenerate(c *echo.Context) error {
	count := 1
	if raw := c.QueryParam("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSentencesPerRequest {
			return respondWithError(c, http.StatusBadRequest, "count must be an integer between 1 and "+strconv.Itoa(maxSentencesPerRequest))
		}
		count = n
	}

	ctx := c.Request().Context()
	m.mu.Lock()
	sentences, err := m.model.GenerateN(ctx, count, markov.WithMaxLength(m.maxLength))
	m.mu.Unlock()
	if err != nil {
		m.logger.Warn("Generation interrupted", "count", count, "error", err)
		return respondWithError(c, http.StatusServiceUnavailable, "generation interrupted")
	}

	resp := GenerateResponse{ID: uuid.NewString(), Sentences: sentences}
	m.logger.Debug("Sentences generated", "id", resp.ID, "count", count)
	return c.JSON(http.StatusOK, resp)
}

// handleStats handles GET for the model statistics.
func (m *MarkovAPI) handleStats(c *echo.Context) error {
	m.mu.Lock()
	stats := m.model.Stats()
	m.mu.Unlock()
	return c.JSON(http.StatusOK, stats)
}
