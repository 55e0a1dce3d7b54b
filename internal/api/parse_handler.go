package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
	"github.com/pdf2quiz/backend/internal/service"
	"github.com/pdf2quiz/backend/internal/structurer"
)

// ── Request / Response types ────────────────────────────────────────────────

type ParsePDFRequest struct {
	PDFURL string `json:"pdf_url"`
	QuizID string `json:"quiz_id"`
}

func (r *ParsePDFRequest) Validate() error {
	if strings.TrimSpace(r.PDFURL) == "" {
		return errors.New("pdf_url is required")
	}
	if strings.TrimSpace(r.QuizID) == "" {
		return errors.New("quiz_id is required")
	}
	return nil
}

type ParsePDFResponse struct {
	Success        bool            `json:"success"`
	QuizID         string          `json:"quiz_id"`
	Status         quiz.Status     `json:"status"`
	TotalQuestions int             `json:"total_questions"`
	Questions      []quiz.Question `json:"questions"`
}

type ParseAnswerKeyResponse struct {
	Success          bool                    `json:"success"`
	QuizID           string                  `json:"quiz_id"`
	Status           quiz.Status             `json:"status"`
	TotalAnswers     int                     `json:"total_answers"`
	UpdatedQuestions int                     `json:"updated_questions"`
	AnswerMap        quiz.AnswerMap          `json:"answer_map"`
	Source           structurer.AnswerSource `json:"source"`
}

type ExtractBasicRequest struct {
	Text string `json:"text"`
}

type ExtractBasicResponse struct {
	TotalAnswers int            `json:"total_answers"`
	AnswerMap    quiz.AnswerMap `json:"answer_map"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// parsePDF downloads a question paper and stores its questions.
// @Summary      Parse questions from a PDF URL
// @Description  Download the PDF, extract its text and let the AI chain structure the questions.
// @Tags         Parsing
// @Accept       json
// @Produce      json
// @Param        body  body      ParsePDFRequest  true  "PDF location and target quiz"
// @Success      200   {object}  ParsePDFResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse  "quiz not found"
// @Failure      502   {object}  ErrorResponse  "All AI providers failed"
// @Router       /api/parse-pdf [post]
func (h *Handler) parsePDF(w http.ResponseWriter, r *http.Request) {
	var req ParsePDFRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.importQuestions(w, r, req.QuizID, service.Source{URL: req.PDFURL})
}

// @Summary      Parse questions from an uploaded PDF
// @Tags         Parsing
// @Accept       mpfd
// @Produce      json
// @Param        file     formData  file    true  "Question paper PDF"
// @Param        quiz_id  formData  string  true  "Quiz ID"
// @Success      200      {object}  ParsePDFResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "quiz not found"
// @Failure      413      {object}  ErrorResponse  "file too large"
// @Failure      502      {object}  ErrorResponse  "All AI providers failed"
// @Router       /api/parse-pdf-upload [post]
func (h *Handler) parsePDFUpload(w http.ResponseWriter, r *http.Request) {
	quizID, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	h.importQuestions(w, r, quizID, service.Source{Data: data})
}

// parseAnswerKey downloads an answer key and applies it to the quiz.
// @Summary      Parse an answer key from a PDF URL
// @Description  Tries the AI chain first and falls back to pattern matching when it yields nothing.
// @Tags         Parsing
// @Accept       json
// @Produce      json
// @Param        body  body      ParsePDFRequest  true  "PDF location and target quiz"
// @Success      200   {object}  ParseAnswerKeyResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse  "quiz not found"
// @Router       /api/parse-answer-key [post]
func (h *Handler) parseAnswerKey(w http.ResponseWriter, r *http.Request) {
	var req ParsePDFRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.importAnswerKey(w, r, req.QuizID, service.Source{URL: req.PDFURL})
}

// @Summary      Parse an answer key from an uploaded PDF
// @Tags         Parsing
// @Accept       mpfd
// @Produce      json
// @Param        file     formData  file    true  "Answer key PDF"
// @Param        quiz_id  formData  string  true  "Quiz ID"
// @Success      200      {object}  ParseAnswerKeyResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "quiz not found"
// @Failure      413      {object}  ErrorResponse  "file too large"
// @Router       /api/parse-answer-key-upload [post]
func (h *Handler) parseAnswerKeyUpload(w http.ResponseWriter, r *http.Request) {
	quizID, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	h.importAnswerKey(w, r, quizID, service.Source{Data: data})
}

// @Summary      Extract an answer key with pattern matching only
// @Tags         Parsing
// @Accept       json
// @Produce      json
// @Param        body  body      ExtractBasicRequest  true  "Raw answer key text"
// @Success      200   {object}  ExtractBasicResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /api/extract-basic [post]
func (h *Handler) extractBasic(w http.ResponseWriter, r *http.Request) {
	var req ExtractBasicRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	answers := quiz.AnswerMapFromInts(structurer.ExtractBasic(req.Text))
	respondJSON(w, http.StatusOK, ExtractBasicResponse{
		TotalAnswers: len(answers),
		AnswerMap:    answers,
	})
}

func (h *Handler) importQuestions(w http.ResponseWriter, r *http.Request, quizID string, src service.Source) {
	res, err := h.quizzes.ImportQuestions(r.Context(), quizID, src)
	if h.handleError(w, r, err, "quiz") {
		return
	}

	respondJSON(w, http.StatusOK, ParsePDFResponse{
		Success:        true,
		QuizID:         res.QuizID,
		Status:         res.Status,
		TotalQuestions: len(res.Questions),
		Questions:      res.Questions,
	})
}

func (h *Handler) importAnswerKey(w http.ResponseWriter, r *http.Request, quizID string, src service.Source) {
	res, err := h.quizzes.ImportAnswerKey(r.Context(), quizID, src)
	if h.handleError(w, r, err, "quiz") {
		return
	}

	respondJSON(w, http.StatusOK, ParseAnswerKeyResponse{
		Success:          true,
		QuizID:           res.QuizID,
		Status:           res.Status,
		TotalAnswers:     len(res.Answers),
		UpdatedQuestions: res.UpdatedQuestions,
		AnswerMap:        res.Answers,
		Source:           res.Source,
	})
}

// readUpload reads the multipart "file" and "quiz_id" fields.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return "", nil, false
	}

	quizID := strings.TrimSpace(r.FormValue("quiz_id"))
	if quizID == "" {
		respondError(w, http.StatusBadRequest, "quiz_id is required")
		return "", nil, false
	}

	f, hdr, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return "", nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return "", nil, false
	}
	if len(data) > maxUploadSize {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large")
		return "", nil, false
	}

	h.logger.Info("received upload", "quiz_id", quizID, "filename", hdr.Filename, "bytes", len(data))
	return quizID, data, true
}
