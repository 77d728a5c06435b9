package service

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/aliskhannn/quiz-game/internal/config"
	"github.com/aliskhannn/quiz-game/internal/domain/entities"
)

// QuestionSelector decides which question is presented next. It alternates
// randomly between a generated arithmetic problem and a trivia question
// from the bank whose cooldown has elapsed.
type QuestionSelector struct {
	cooldown              time.Duration
	arithmeticProbability float64
	maxRerolls            int
	operandMin            int
	operandMax            int

	rng *rand.Rand
}

// NewQuestionSelector creates a QuestionSelector. A nil rng is replaced by
// one seeded from the current time.
func NewQuestionSelector(cfg config.Rotation, rng *rand.Rand) *QuestionSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &QuestionSelector{
		cooldown:              cfg.Cooldown,
		arithmeticProbability: cfg.ArithmeticProbability,
		maxRerolls:            cfg.MaxRerolls,
		operandMin:            cfg.OperandMin,
		operandMax:            cfg.OperandMax,
		rng:                   rng,
	}
}

// NextQuestion picks the next question. When the coin lands on trivia but
// every bank question is still cooling down, the coin is flipped again, at
// most maxRerolls times; after that an arithmetic question is returned.
// The chosen trivia question is marked as shown at now.
func (s *QuestionSelector) NextQuestion(
	pool []entities.Question,
	cooldowns CooldownStore,
	now time.Time,
) (entities.Question, entities.QuestionKind) {
	for attempt := 0; attempt <= s.maxRerolls; attempt++ {
		if s.flipArithmetic() {
			return s.Arithmetic(), entities.KindArithmetic
		}

		eligible := s.eligible(pool, cooldowns, now)
		if len(eligible) == 0 {
			continue
		}

		q := eligible[s.rng.Intn(len(eligible))]
		cooldowns.MarkShown(q.Question, now)
		return q, entities.KindTrivia
	}

	return s.Arithmetic(), entities.KindArithmetic
}

// Arithmetic generates "<a> + <b> = ?" with both operands drawn uniformly
// from the configured range.
func (s *QuestionSelector) Arithmetic() entities.Question {
	a := s.operand()
	b := s.operand()

	return entities.Question{
		Question: fmt.Sprintf("%d + %d = ?", a, b),
		Answer:   strconv.Itoa(a + b),
	}
}

func (s *QuestionSelector) flipArithmetic() bool {
	return s.rng.Float64() < s.arithmeticProbability
}

func (s *QuestionSelector) operand() int {
	return s.operandMin + s.rng.Intn(s.operandMax-s.operandMin+1)
}

// eligible returns the bank questions whose cooldown has elapsed.
func (s *QuestionSelector) eligible(pool []entities.Question, cooldowns CooldownStore, now time.Time) []entities.Question {
	out := make([]entities.Question, 0, len(pool))
	for _, q := range pool {
		if cooldowns.Eligible(q.Question, now, s.cooldown) {
			out = append(out, q)
		}
	}
	return out
}
