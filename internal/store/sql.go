package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	"github.com/pdf2quiz/backend/internal/domain/quiz"
	"github.com/pdf2quiz/backend/internal/id"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS quizzes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    status TEXT NOT NULL,
    total_questions INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    quiz_id TEXT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
    question_number INTEGER NOT NULL,
    question_text TEXT NOT NULL,
    options TEXT NOT NULL,
    correct_option TEXT,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
    id TEXT PRIMARY KEY,
    quiz_id TEXT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
    answers TEXT NOT NULL,
    score INTEGER,
    is_graded INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS quizzes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    status TEXT NOT NULL,
    total_questions INTEGER NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    quiz_id TEXT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
    question_number INTEGER NOT NULL,
    question_text TEXT NOT NULL,
    options TEXT NOT NULL,
    correct_option TEXT,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
    id TEXT PRIMARY KEY,
    quiz_id TEXT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
    answers TEXT NOT NULL,
    score INTEGER,
    is_graded BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL
);
`

// SQLStore implements Store on database/sql. Queries use $N placeholders,
// which both the pgx and modernc sqlite drivers accept.
type SQLStore struct {
	db *sql.DB
}

// Compile-time check: *SQLStore satisfies the Store interface.
var _ Store = (*SQLStore)(nil)

// Open opens a database and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*SQLStore, error) {
	var drvName, schema string
	switch driver {
	case DriverSQLite, "":
		drvName, schema = "sqlite", schemaSQLite
	case DriverPostgres:
		drvName, schema = "pgx", schemaPostgres
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
	if dsn == "" {
		dsn = DefaultDSN(driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver != DriverPostgres {
		// One connection keeps in-memory databases shared and avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// DefaultDSN is the connection string used when none is configured.
func DefaultDSN(driver Driver) string {
	if driver == DriverPostgres {
		return "postgres://localhost:5432/pdf2quiz?sslmode=disable"
	}
	return "file:pdf2quiz.db?_pragma=busy_timeout(5000)"
}

// NewSQLite opens a sqlite database at path.
func NewSQLite(ctx context.Context, path string) (*SQLStore, error) {
	return Open(ctx, DriverSQLite, path)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Quizzes
// ============================================================================

func (s *SQLStore) CreateQuiz(ctx context.Context, q *quiz.Quiz) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, title, status, total_questions, created_at) VALUES ($1, $2, $3, $4, $5)`,
		q.ID, q.Title, string(q.Status), q.TotalQuestions, q.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (*quiz.Quiz, error) {
	var q quiz.Quiz
	var status string
	var createdAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, status, total_questions, created_at FROM quizzes WHERE id = $1`, id,
	).Scan(&q.ID, &q.Title, &status, &q.TotalQuestions, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	q.Status = quiz.Status(status)
	q.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &q, nil
}

func (s *SQLStore) UpdateQuizStatus(ctx context.Context, id string, status quiz.Status, totalQuestions int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE quizzes SET status = $1, total_questions = $2 WHERE id = $3`,
		string(status), totalQuestions, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz status: %w", err)
	}
	return requireRow(result)
}

// ============================================================================
// Questions
// ============================================================================

func (s *SQLStore) SaveQuestions(ctx context.Context, quizID string, questions []quiz.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = $1`, quizID); err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}

	for i, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions (id, quiz_id, question_number, question_text, options, correct_option, position)
			 VALUES ($1, $2, $3, $4, $5, NULL, $6)`,
			id.GenerateID(), quizID, q.QuestionNumber, q.QuestionText, string(options), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question %d: %w", q.QuestionNumber, err)
		}
	}

	return tx.Commit()
}

func (s *SQLStore) ListQuestions(ctx context.Context, quizID string) ([]StoredQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, question_number, question_text, options, correct_option
		 FROM questions WHERE quiz_id = $1 ORDER BY position`, quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []StoredQuestion
	for rows.Next() {
		var sq StoredQuestion
		var options string
		var correct sql.NullString
		if err := rows.Scan(&sq.ID, &sq.QuizID, &sq.QuestionNumber, &sq.QuestionText, &options, &correct); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &sq.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options: %w", err)
		}
		if correct.Valid {
			o := quiz.Option(correct.String)
			sq.CorrectOption = &o
		}
		questions = append(questions, sq)
	}
	return questions, rows.Err()
}

func (s *SQLStore) ApplyAnswerKey(ctx context.Context, quizID string, answers quiz.AnswerMap) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id, question_number FROM questions WHERE quiz_id = $1`, quizID)
	if err != nil {
		return 0, fmt.Errorf("failed to load questions: %w", err)
	}

	type row struct {
		id     string
		number int
	}
	var pending []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.number); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan question: %w", err)
		}
		pending = append(pending, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	updated := 0
	for _, r := range pending {
		option, ok := answers[strconv.Itoa(r.number)]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE questions SET correct_option = $1 WHERE id = $2`, string(option), r.id); err != nil {
			return 0, fmt.Errorf("failed to update question %d: %w", r.number, err)
		}
		updated++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *SQLStore) CorrectAnswers(ctx context.Context, quizID string) (quiz.AnswerMap, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_number, correct_option FROM questions
		 WHERE quiz_id = $1 AND correct_option IS NOT NULL AND correct_option <> ''`, quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer key: %w", err)
	}
	defer rows.Close()

	answers := quiz.AnswerMap{}
	for rows.Next() {
		var number int
		var option string
		if err := rows.Scan(&number, &option); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers[strconv.Itoa(number)] = quiz.Option(option)
	}
	return answers, rows.Err()
}

// ============================================================================
// Attempts
// ============================================================================

func (s *SQLStore) CreateAttempt(ctx context.Context, a *quiz.Attempt) error {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, quiz_id, answers, score, is_graded, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.QuizID, string(answers), a.Score, a.IsGraded, a.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

const attemptColumns = `id, quiz_id, answers, score, is_graded, created_at`

func (s *SQLStore) GetAttempt(ctx context.Context, id string) (*quiz.Attempt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+attemptColumns+` FROM attempts WHERE id = $1`, id)
	a, err := scanAttempt(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return a, nil
}

func (s *SQLStore) ListAttempts(ctx context.Context, quizID string) ([]*quiz.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+attemptColumns+` FROM attempts WHERE quiz_id = $1 ORDER BY created_at, id`, quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*quiz.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *SQLStore) SaveAttemptScore(ctx context.Context, attemptID string, score int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE attempts SET score = $1, is_graded = $2 WHERE id = $3`, score, true, attemptID,
	)
	if err != nil {
		return fmt.Errorf("failed to save attempt score: %w", err)
	}
	return requireRow(result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(sc scanner) (*quiz.Attempt, error) {
	var a quiz.Attempt
	var answers string
	var score sql.NullInt64
	var createdAt int64

	if err := sc.Scan(&a.ID, &a.QuizID, &answers, &score, &a.IsGraded, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if a.Answers == nil {
		a.Answers = quiz.AnswerMap{}
	}
	if score.Valid {
		v := int(score.Int64)
		a.Score = &v
	}
	a.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &a, nil
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
