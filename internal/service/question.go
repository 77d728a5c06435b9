package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-game/internal/domain/entities"
)

var (
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrQuestionNotFound = errors.New("question not found")
)

var bannedWords = []string{"fuck", "shit", "damn"}

// QuestionService manages the question bank on behalf of the player.
type QuestionService struct {
	repository QuestionRepository
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewQuestionService(repository QuestionRepository, logger *zap.Logger) (*QuestionService, error) {
	v, err := newQuestionValidator()
	if err != nil {
		return nil, err
	}

	return &QuestionService{
		repository: repository,
		validate:   v,
		logger:     logger,
	}, nil
}

// newQuestionValidator returns a validator that understands the notblank tag.
func newQuestionValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		return nil, fmt.Errorf("register notblank validation: %w", err)
	}
	return v, nil
}

func (s *QuestionService) List(ctx context.Context) ([]entities.Question, error) {
	return s.repository.GetAll(ctx)
}

// Add censors, validates and appends a question to the bank.
func (s *QuestionService) Add(ctx context.Context, question, answer string) (entities.Question, error) {
	q, err := s.prepare(question, answer)
	if err != nil {
		return entities.Question{}, err
	}

	if err := s.repository.Add(ctx, q); err != nil {
		return entities.Question{}, err
	}

	s.logger.Info("question added", zap.String("question", q.Question))
	return q, nil
}

// Edit replaces the question at the zero-based index.
func (s *QuestionService) Edit(ctx context.Context, index int, question, answer string) (entities.Question, error) {
	if !s.exists(ctx, index) {
		return entities.Question{}, fmt.Errorf("%w: #%d", ErrQuestionNotFound, index+1)
	}

	q, err := s.prepare(question, answer)
	if err != nil {
		return entities.Question{}, err
	}

	if err := s.repository.Edit(ctx, index, q); err != nil {
		return entities.Question{}, err
	}

	s.logger.Info("question edited",
		zap.Int("index", index),
		zap.String("question", q.Question),
	)
	return q, nil
}

// Remove deletes the question at the zero-based index.
func (s *QuestionService) Remove(ctx context.Context, index int) error {
	if !s.exists(ctx, index) {
		return fmt.Errorf("%w: #%d", ErrQuestionNotFound, index+1)
	}

	if err := s.repository.Remove(ctx, index); err != nil {
		return err
	}

	s.logger.Info("question removed", zap.Int("index", index))
	return nil
}

// Reload re-reads the bank from disk and returns its size.
func (s *QuestionService) Reload(ctx context.Context) int {
	return s.repository.Reload(ctx)
}

func (s *QuestionService) exists(ctx context.Context, index int) bool {
	return index >= 0 && index < s.repository.Count(ctx)
}

func (s *QuestionService) prepare(question, answer string) (entities.Question, error) {
	q := entities.Question{
		Question: censor(strings.TrimSpace(question)),
		Answer:   censor(strings.TrimSpace(answer)),
	}

	if err := s.validate.Struct(q); err != nil {
		return entities.Question{}, fmt.Errorf("%w: %s", ErrInvalidQuestion, formatValidationError(err))
	}
	return q, nil
}

// censor masks banned words with asterisks.
func censor(text string) string {
	for _, word := range bannedWords {
		text = strings.ReplaceAll(text, word, "***")
	}
	return text
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required", "notblank":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
