package service

import (
	"context"
	"time"

	"github.com/aliskhannn/quiz-game/internal/domain/entities"
)

type QuestionRepository interface {
	GetAll(ctx context.Context) ([]entities.Question, error)
	Count(ctx context.Context) int
	Add(ctx context.Context, q entities.Question) error
	Edit(ctx context.Context, index int, q entities.Question) error
	Remove(ctx context.Context, index int) error
	Reload(ctx context.Context) int
}

type BestScoreRepository interface {
	Get(ctx context.Context) int
	Save(ctx context.Context, score int) error
}

// CooldownStore tracks when trivia questions were last presented.
type CooldownStore interface {
	Eligible(question string, now time.Time, cooldown time.Duration) bool
	MarkShown(question string, at time.Time)
}
