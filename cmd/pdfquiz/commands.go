package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pdf2quiz/backend/internal/ai"
	"github.com/pdf2quiz/backend/internal/domain/quiz"
	"github.com/pdf2quiz/backend/internal/grader"
	"github.com/pdf2quiz/backend/internal/infrastructure/config"
	"github.com/pdf2quiz/backend/internal/pdftext"
	"github.com/pdf2quiz/backend/internal/structurer"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "pdfquiz",
		Usage:   "turn exam PDFs into structured quizzes and grade answers offline",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:      "questions",
				Usage:     "extract multiple-choice questions from a PDF",
				ArgsUsage: "<file.pdf>",
				Action:    runQuestions,
			},
			{
				Name:      "answers",
				Usage:     "extract an answer key from a PDF",
				ArgsUsage: "<file.pdf>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "basic",
						Usage: "use pattern matching only, without calling an AI provider",
					},
				},
				Action: runAnswers,
			},
			{
				Name:  "grade",
				Usage: "grade an answers file against an answer key file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "answer key JSON `FILE`", Required: true},
					&cli.StringFlag{Name: "answers", Usage: "user answers JSON `FILE`", Required: true},
				},
				Action: runGrade,
			},
		},
	}
}

// pipeline holds the wiring shared by the AI-backed commands.
type pipeline struct {
	extractor  *pdftext.Extractor
	structurer *structurer.Structurer
	close      func() error
}

func newPipeline() *pipeline {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	chain, closeAI := ai.NewDefaultChain(cfg.ChainConfig(), logger)

	return &pipeline{
		extractor:  pdftext.NewExtractor(cfg.PDFFetchTimeout, logger),
		structurer: structurer.New(chain, logger),
		close:      closeAI,
	}
}

func (p *pipeline) text(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return p.extractor.FromBytes(data)
}

func pdfArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one PDF path", cmd.Name)
	}
	return cmd.Args().First(), nil
}

func runQuestions(ctx context.Context, cmd *cli.Command) error {
	path, err := pdfArg(cmd)
	if err != nil {
		return err
	}

	p := newPipeline()
	defer p.close()

	text, err := p.text(path)
	if err != nil {
		return err
	}

	questions, err := p.structurer.StructureQuestions(ctx, text)
	if err != nil {
		return err
	}
	return writeJSON(cmd.Root().Writer, questions)
}

func runAnswers(ctx context.Context, cmd *cli.Command) error {
	path, err := pdfArg(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("basic") {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text, err := pdftext.NewExtractor(0, nil).FromBytes(data)
		if err != nil {
			return err
		}
		return writeJSON(cmd.Root().Writer, quiz.AnswerMapFromInts(structurer.ExtractBasic(text)))
	}

	p := newPipeline()
	defer p.close()

	text, err := p.text(path)
	if err != nil {
		return err
	}

	key, err := p.structurer.ParseAnswerKey(ctx, text)
	if err != nil {
		return err
	}

	return writeJSON(cmd.Root().Writer, map[string]any{
		"source":     key.Source,
		"answer_map": key.Answers,
	})
}

func runGrade(ctx context.Context, cmd *cli.Command) error {
	key, err := readAnswerFile(cmd.String("key"))
	if err != nil {
		return fmt.Errorf("read answer key: %w", err)
	}
	if len(key) == 0 {
		return errors.New("answer key has no valid answers")
	}

	answers, err := readAnswerFile(cmd.String("answers"))
	if err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	return writeJSON(cmd.Root().Writer, grader.Grade(answers, key))
}

// readAnswerFile loads a {"1": "A", ...} JSON object.
func readAnswerFile(path string) (quiz.AnswerMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return quiz.SanitizeAnswers(raw), nil
}

func writeJSON(w io.Writer, v any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
