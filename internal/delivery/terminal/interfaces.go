package terminal

import (
	"context"

	"github.com/aliskhannn/quiz-game/internal/domain/entities"
)

type GameService interface {
	Start(ctx context.Context) (entities.Question, error)
	Submit(ctx context.Context, answer string) (entities.AnswerResult, entities.Question, error)
	Timeout(ctx context.Context) (entities.AnswerResult, entities.Question, error)
	Restart(ctx context.Context, resetScore bool) (entities.Question, error)
	Session() entities.GameSession
}

type QuestionService interface {
	List(ctx context.Context) ([]entities.Question, error)
	Add(ctx context.Context, question, answer string) (entities.Question, error)
	Edit(ctx context.Context, index int, question, answer string) (entities.Question, error)
	Remove(ctx context.Context, index int) error
	Reload(ctx context.Context) int
}
