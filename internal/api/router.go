// internal/api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pdf2quiz/backend/docs" // swagger docs
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	// RequestTimeout bounds each request, AI calls included. Zero disables it.
	RequestTimeout time.Duration
}

// NewRouter builds the chi router with every API route mounted.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, Logging(h.logger), middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/", h.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		// Quizzes
		r.Post("/quizzes", h.createQuiz)
		r.Get("/quizzes/{quizID}", h.getQuiz)
		r.Get("/quizzes/{quizID}/questions", h.listQuestions)
		r.Post("/quizzes/{quizID}/attempts", h.createAttempt)
		r.Post("/quizzes/{quizID}/regrade", h.regradeQuiz)

		// Parsing
		r.Post("/parse-pdf", h.parsePDF)
		r.Post("/parse-pdf-upload", h.parsePDFUpload)
		r.Post("/parse-answer-key", h.parseAnswerKey)
		r.Post("/parse-answer-key-upload", h.parseAnswerKeyUpload)
		r.Post("/extract-basic", h.extractBasic)

		// Grading
		r.Post("/grade-quiz", h.gradeQuiz)
	})

	return r
}

// healthCheck reports that the service is up.
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "PDF-to-Quiz API",
	})
}
