package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
	"github.com/xiaot623/gogo/studybuddy/internal/service"
)

const pageTemplate = "page.html"

// Handler serves the HTML page and its form posts.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new page handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the page routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/explain", h.Explain)
	e.POST("/summarize", h.Summarize)
	e.POST("/quiz", h.Quiz)
	e.POST("/flashcards", h.Flashcards)
}

// form holds the submitted values so the page can be re-filled.
type form struct {
	Topic        string
	Notes        string
	Complexity   domain.Complexity
	Format       domain.SummaryFormat
	Difficulty   domain.Difficulty
	NumQuestions int
	NumCards     int
}

type pageData struct {
	Page         domain.Feature
	Pages        []domain.Feature
	Status       domain.StatusResponse
	Complexities []domain.Complexity
	Formats      []domain.SummaryFormat
	Difficulties []domain.Difficulty
	Form         form
	Warnings     []string
	Result       *domain.FeatureResult
	History      []domain.StudySession
	Error        string
}

func (h *Handler) newPage(page domain.Feature) *pageData {
	return &pageData{
		Page:         page,
		Pages:        domain.Features,
		Status:       h.service.Status(),
		Complexities: []domain.Complexity{domain.ComplexitySimple, domain.ComplexityIntermediate, domain.ComplexityAdvanced},
		Formats:      []domain.SummaryFormat{domain.SummaryFormatBulletPoints, domain.SummaryFormatParagraph, domain.SummaryFormatKeyPointsOnly},
		Difficulties: []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard},
		Form: form{
			Complexity:   domain.DefaultComplexity,
			Format:       domain.DefaultSummaryFormat,
			Difficulty:   domain.DefaultDifficulty,
			NumQuestions: domain.DefaultQuizQuestions,
			NumCards:     domain.DefaultFlashcards,
		},
	}
}

// Index renders the page chosen by the page query parameter.
// GET /?page=
func (h *Handler) Index(c echo.Context) error {
	page, err := domain.ParseFeature(c.QueryParam("page"))
	if err != nil {
		page = domain.FeatureHome
	}

	data := h.newPage(page)
	if page == domain.FeatureHistory {
		sessions, err := h.service.History(c.Request().Context())
		if err != nil {
			data.Error = err.Error()
			return c.Render(http.StatusInternalServerError, pageTemplate, data)
		}
		data.History = sessions
	}
	return c.Render(http.StatusOK, pageTemplate, data)
}

// Explain handles the explainer form.
// POST /explain
func (h *Handler) Explain(c echo.Context) error {
	var req domain.ExplainRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid form")
	}
	data := h.newPage(domain.FeatureExplain)
	data.Form.Topic = req.Topic
	if req.Complexity != "" {
		data.Form.Complexity = domain.NormalizeComplexity(string(req.Complexity))
	}
	return h.render(c, data, func(ctx context.Context) (*domain.FeatureResult, error) {
		return h.service.Explain(ctx, req)
	})
}

// Summarize handles the summarizer form.
// POST /summarize
func (h *Handler) Summarize(c echo.Context) error {
	var req domain.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid form")
	}
	data := h.newPage(domain.FeatureSummarize)
	data.Form.Notes = req.Notes
	if req.Format != "" {
		data.Form.Format = domain.NormalizeSummaryFormat(string(req.Format))
	}
	return h.render(c, data, func(ctx context.Context) (*domain.FeatureResult, error) {
		return h.service.Summarize(ctx, req)
	})
}

// Quiz handles the quiz form.
// POST /quiz
func (h *Handler) Quiz(c echo.Context) error {
	var req domain.QuizRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid form")
	}
	data := h.newPage(domain.FeatureQuiz)
	data.Form.Topic = req.Topic
	if req.Difficulty != "" {
		data.Form.Difficulty = domain.NormalizeDifficulty(string(req.Difficulty))
	}
	n, err := formCount(c, "num_questions")
	if err != nil {
		return c.String(http.StatusBadRequest, "invalid num_questions")
	}
	req.NumQuestions = n
	if n != nil {
		data.Form.NumQuestions = *n
	}
	return h.render(c, data, func(ctx context.Context) (*domain.FeatureResult, error) {
		return h.service.Quiz(ctx, req)
	})
}

// Flashcards handles the flashcards form.
// POST /flashcards
func (h *Handler) Flashcards(c echo.Context) error {
	var req domain.FlashcardsRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid form")
	}
	data := h.newPage(domain.FeatureFlashcards)
	data.Form.Topic = req.Topic
	n, err := formCount(c, "num_cards")
	if err != nil {
		return c.String(http.StatusBadRequest, "invalid num_cards")
	}
	req.NumCards = n
	if n != nil {
		data.Form.NumCards = *n
	}
	return h.render(c, data, func(ctx context.Context) (*domain.FeatureResult, error) {
		return h.service.Flashcards(ctx, req)
	})
}

// formCount reads an optional integer field. A blank field yields nil so the
// default applies.
func formCount(c echo.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// render runs the feature and re-renders the page with its output or warning.
func (h *Handler) render(c echo.Context, data *pageData, run func(context.Context) (*domain.FeatureResult, error)) error {
	result, err := run(c.Request().Context())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			data.Warnings = verr.Warnings
			return c.Render(http.StatusUnprocessableEntity, pageTemplate, data)
		}
		data.Error = err.Error()
		return c.Render(http.StatusInternalServerError, pageTemplate, data)
	}
	data.Result = result
	return c.Render(http.StatusOK, pageTemplate, data)
}
