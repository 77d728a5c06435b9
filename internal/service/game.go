package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-game/internal/domain/entities"
)

var ErrGameOver = errors.New("game is over")

// GameService drives one player's session: it presents questions, checks
// answers, counts lives and keeps the best score on disk.
type GameService struct {
	questions  QuestionRepository
	bestScores BestScoreRepository
	cooldowns  CooldownStore
	selector   *QuestionSelector
	validator  *AnswerValidator
	logger     *zap.Logger
	now        func() time.Time

	lives   int
	session *entities.GameSession
}

func NewGameService(
	questions QuestionRepository,
	bestScores BestScoreRepository,
	cooldowns CooldownStore,
	selector *QuestionSelector,
	lives int,
	logger *zap.Logger,
	now func() time.Time,
) *GameService {
	if now == nil {
		now = time.Now
	}

	return &GameService{
		questions:  questions,
		bestScores: bestScores,
		cooldowns:  cooldowns,
		selector:   selector,
		validator:  NewAnswerValidator(),
		logger:     logger,
		now:        now,
		lives:      lives,
	}
}

// Start opens a new session with the persisted best score and presents the
// first question.
func (s *GameService) Start(ctx context.Context) (entities.Question, error) {
	best := s.bestScores.Get(ctx)
	s.session = entities.NewGameSession(uuid.NewString(), s.lives, best)

	s.logger.Info("game started",
		zap.String("session_id", s.session.ID),
		zap.Int("best_score", best),
		zap.Int("lives", s.lives),
	)

	return s.next(ctx)
}

// Session returns a copy of the current session state.
func (s *GameService) Session() entities.GameSession {
	if s.session == nil {
		return entities.GameSession{}
	}
	return *s.session
}

// Submit checks an answer to the current question and moves the session on.
// While the game is still running the next question is presented and
// returned alongside the result.
func (s *GameService) Submit(ctx context.Context, answer string) (entities.AnswerResult, entities.Question, error) {
	if err := s.ensurePlaying(); err != nil {
		return entities.AnswerResult{}, entities.Question{}, err
	}

	correct := s.validator.IsCorrect(answer, s.session.Current.Answer)
	return s.resolve(ctx, correct, false)
}

// Timeout handles an expired countdown exactly like a wrong answer.
func (s *GameService) Timeout(ctx context.Context) (entities.AnswerResult, entities.Question, error) {
	if err := s.ensurePlaying(); err != nil {
		return entities.AnswerResult{}, entities.Question{}, err
	}

	return s.resolve(ctx, false, true)
}

// Restart refills lives and presents a new question. The score is kept
// unless resetScore is set.
func (s *GameService) Restart(ctx context.Context, resetScore bool) (entities.Question, error) {
	if s.session == nil {
		return s.Start(ctx)
	}

	s.session.Restart(resetScore)

	s.logger.Info("game restarted",
		zap.String("session_id", s.session.ID),
		zap.Bool("reset_score", resetScore),
		zap.Int("score", s.session.Score),
	)

	return s.next(ctx)
}

func (s *GameService) ensurePlaying() error {
	if s.session == nil || s.session.IsOver() {
		return ErrGameOver
	}
	return nil
}

func (s *GameService) resolve(ctx context.Context, correct, timedOut bool) (entities.AnswerResult, entities.Question, error) {
	gs := s.session
	result := entities.AnswerResult{
		Correct:  correct,
		TimedOut: timedOut,
		Expected: gs.Current.Answer,
	}

	if correct {
		if gs.RecordCorrect() {
			result.NewBest = true
			if err := s.bestScores.Save(ctx, gs.BestScore); err != nil {
				return entities.AnswerResult{}, entities.Question{}, fmt.Errorf("persist best score: %w", err)
			}
		}
	} else {
		gs.RecordIncorrect()
	}

	result.Score = gs.Score
	result.Lives = gs.Lives
	result.BestScore = gs.BestScore
	result.Status = gs.Status

	s.logger.Debug("answer resolved",
		zap.String("session_id", gs.ID),
		zap.String("kind", string(gs.CurrentKind)),
		zap.Bool("correct", correct),
		zap.Bool("timed_out", timedOut),
		zap.Int("score", gs.Score),
		zap.Int("lives", gs.Lives),
	)

	if gs.IsOver() {
		s.logger.Info("game over",
			zap.String("session_id", gs.ID),
			zap.Int("score", gs.Score),
			zap.Int("best_score", gs.BestScore),
			zap.Int("questions", gs.QuestionsRun),
		)
		return result, entities.Question{}, nil
	}

	next, err := s.next(ctx)
	if err != nil {
		return entities.AnswerResult{}, entities.Question{}, err
	}
	return result, next, nil
}

func (s *GameService) next(ctx context.Context) (entities.Question, error) {
	pool, err := s.questions.GetAll(ctx)
	if err != nil {
		return entities.Question{}, fmt.Errorf("get questions: %w", err)
	}

	q, kind := s.selector.NextQuestion(pool, s.cooldowns, s.now())
	s.session.Current = q
	s.session.CurrentKind = kind
	s.session.QuestionsRun++

	return q, nil
}
