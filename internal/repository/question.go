package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-game/internal/domain/entities"
)

var ErrMalformedQuestion = errors.New("malformed question record")

const maxLineSize = 1 << 20

// QuestionRepository keeps the question bank in memory and mirrors every
// change to a JSON-lines file, one record per line in presentation order.
// The whole file is rewritten on each mutation.
type QuestionRepository struct {
	path      string
	logger    *zap.Logger
	questions []entities.Question
}

// NewQuestionRepository creates a repository backed by the file at path and
// loads it. A missing or corrupt file yields the built-in default questions.
func NewQuestionRepository(path string, logger *zap.Logger) *QuestionRepository {
	r := &QuestionRepository{
		path:   path,
		logger: logger,
	}
	r.questions = r.load()
	return r
}

// Reload re-reads the question file, replacing the in-memory bank.
// It returns the number of questions now in the bank.
func (r *QuestionRepository) Reload(_ context.Context) int {
	r.questions = r.load()
	return len(r.questions)
}

// GetAll returns a copy of the bank in presentation order.
func (r *QuestionRepository) GetAll(_ context.Context) ([]entities.Question, error) {
	out := make([]entities.Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

// Count returns the number of questions in the bank.
func (r *QuestionRepository) Count(_ context.Context) int {
	return len(r.questions)
}

// Add appends a question and saves the bank.
func (r *QuestionRepository) Add(_ context.Context, q entities.Question) error {
	return r.save(append(slices.Clone(r.questions), q))
}

// Edit replaces the question at index and saves the bank.
// An out-of-range index is a no-op.
func (r *QuestionRepository) Edit(_ context.Context, index int, q entities.Question) error {
	if index < 0 || index >= len(r.questions) {
		return nil
	}
	next := slices.Clone(r.questions)
	next[index] = q
	return r.save(next)
}

// Remove deletes the question at index and saves the bank.
// An out-of-range index is a no-op.
func (r *QuestionRepository) Remove(_ context.Context, index int) error {
	if index < 0 || index >= len(r.questions) {
		return nil
	}
	return r.save(slices.Delete(slices.Clone(r.questions), index, index+1))
}

func (r *QuestionRepository) load() []entities.Question {
	questions, err := ReadQuestions(r.path)
	if err != nil {
		r.logger.Warn("question file unavailable, using default questions",
			zap.String("path", r.path),
			zap.Error(err),
		)
		return entities.DefaultQuestions()
	}

	r.logger.Info("questions loaded",
		zap.String("path", r.path),
		zap.Int("count", len(questions)),
	)
	return questions
}

// save writes next to disk and only then makes it the in-memory bank.
func (r *QuestionRepository) save(next []entities.Question) error {
	if err := WriteQuestions(r.path, next); err != nil {
		return fmt.Errorf("save questions to %s: %w", r.path, err)
	}
	r.questions = next

	r.logger.Debug("questions saved",
		zap.String("path", r.path),
		zap.Int("count", len(r.questions)),
	)
	return nil
}

// questionRecord tells a missing field apart from an empty string.
type questionRecord struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// ReadQuestions parses a JSON-lines question file. Blank lines are skipped.
// Every other line must be an object carrying both string fields; empty
// strings are valid values.
func ReadQuestions(path string) ([]entities.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	questions := make([]entities.Question, 0)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec questionRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", lineNum, ErrMalformedQuestion, err)
		}
		if rec.Question == nil || rec.Answer == nil {
			return nil, fmt.Errorf("line %d: %w: missing question or answer", lineNum, ErrMalformedQuestion)
		}

		questions = append(questions, entities.Question{Question: *rec.Question, Answer: *rec.Answer})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return questions, nil
}

// WriteQuestions overwrites path with one JSON record per line.
func WriteQuestions(path string, questions []entities.Question) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, q := range questions {
		if err := enc.Encode(q); err != nil {
			return err
		}
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
