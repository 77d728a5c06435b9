package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-game/internal/domain/entities"
	"github.com/aliskhannn/quiz-game/internal/repository"
	"github.com/aliskhannn/quiz-game/internal/service"
)

// fakeGame accepts "right" as the only correct answer.
type fakeGame struct {
	mu        sync.Mutex
	session   entities.GameSession
	timeouts  int
	submitErr error
}

func newFakeGame() *fakeGame {
	return &fakeGame{}
}

func (g *fakeGame) question() entities.Question {
	return entities.Question{Question: "Say right", Answer: "right"}
}

func (g *fakeGame) Start(context.Context) (entities.Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = *entities.NewGameSession("test", 3, 0)
	g.session.Current = g.question()
	return g.session.Current, nil
}

func (g *fakeGame) Submit(_ context.Context, answer string) (entities.AnswerResult, entities.Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.submitErr != nil {
		return entities.AnswerResult{}, entities.Question{}, g.submitErr
	}
	return g.resolve(strings.TrimSpace(answer) == "right", false)
}

func (g *fakeGame) Timeout(context.Context) (entities.AnswerResult, entities.Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timeouts++
	return g.resolve(false, true)
}

func (g *fakeGame) Restart(_ context.Context, resetScore bool) (entities.Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.Restart(resetScore)
	return g.question(), nil
}

func (g *fakeGame) Session() entities.GameSession {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

func (g *fakeGame) Timeouts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timeouts
}

func (g *fakeGame) resolve(correct, timedOut bool) (entities.AnswerResult, entities.Question, error) {
	gs := &g.session
	res := entities.AnswerResult{Correct: correct, TimedOut: timedOut, Expected: "right"}
	if correct {
		res.NewBest = gs.RecordCorrect()
	} else {
		gs.RecordIncorrect()
	}
	res.Score, res.Lives, res.BestScore, res.Status = gs.Score, gs.Lives, gs.BestScore, gs.Status
	if gs.IsOver() {
		return res, entities.Question{}, nil
	}
	return res, g.question(), nil
}

// syncBuffer lets the test read output while the loop is still writing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestQuestionService(t *testing.T) (*service.QuestionService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.txt")
	repo := repository.NewQuestionRepository(path, zap.NewNop())
	svc, err := service.NewQuestionService(repo, zap.NewNop())
	require.NoError(t, err)
	return svc, path
}

func runScript(t *testing.T, game GameService, questions QuestionService, script string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	h := NewHandler(strings.NewReader(script), &out, zap.NewNop(), game, questions, Options{
		AnswerTimeout: 15,
		TickInterval:  time.Hour,
	})

	err := h.Run(context.Background())
	return out.String(), err
}

func TestHandler_AnswersAndQuit(t *testing.T) {
	questions, _ := newTestQuestionService(t)

	out, err := runScript(t, newFakeGame(), questions, "right\n wrong \n/status\n/quit\nright\n")
	require.NoError(t, err)

	assert.Contains(t, out, "❓ Say right")
	assert.Contains(t, out, "⏳ 15 s")
	assert.Contains(t, out, "✅ Correct! Score: 1")
	assert.Contains(t, out, "🏆 New best score: 1")
	assert.Contains(t, out, "❌ Wrong! The answer was \"right\". Lives left: 2")
	assert.Contains(t, out, "Score: 1 | Best: 1 | Lives: 2")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"), "lines after /quit are not processed")
}

func TestHandler_GameOverAndRestart(t *testing.T) {
	questions, _ := newTestQuestionService(t)
	game := newFakeGame()

	out, err := runScript(t, game, questions, "right\nwrong\nwrong\nwrong\nanything\n/restart\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Game over! Best score: 1")
	assert.Contains(t, out, msgGameOverHint)

	gs := game.Session()
	assert.Equal(t, entities.StatusPlaying, gs.Status)
	assert.Equal(t, 3, gs.Lives)
	assert.Equal(t, 1, gs.Score)
	assert.True(t, strings.HasSuffix(out, "⏳ 15 s\n"), "restart presents a new question")

	out, err = runScript(t, game, questions, "right\n/new\n")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Correct! Score: 1")
	assert.Equal(t, 0, game.Session().Score)
	assert.Equal(t, 3, game.Session().Lives)
}

func TestHandler_QuestionCommands(t *testing.T) {
	questions, path := newTestQuestionService(t)

	script := strings.Join([]string{
		"/add 2 * 2 = ? | 4",
		"/edit 4 Two times two? | four",
		"/remove 1",
		"/remove 9",
		"/edit x foo | bar",
		"/add no separator",
		"/add | answer only",
		"/list",
		"/bogus",
	}, "\n")

	out, err := runScript(t, newFakeGame(), questions, script)
	require.NoError(t, err)

	assert.Contains(t, out, msgQuestionAdded)
	assert.Contains(t, out, "Question #4 updated.")
	assert.Contains(t, out, "Question #1 removed.")
	assert.Contains(t, out, "There is no question #9.")
	assert.Contains(t, out, msgUseEdit)
	assert.Contains(t, out, msgUseAdd)
	assert.Contains(t, out, "question is required")
	assert.Contains(t, out, "1. Apple manosi nima?\n2. Python qanday til?\n3. Two times two?")
	assert.Contains(t, out, msgUnknownCommand)

	onDisk, err := repository.ReadQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []entities.Question{
		{Question: "Apple manosi nima?", Answer: "olma"},
		{Question: "Python qanday til?", Answer: "dasturlash"},
		{Question: "Two times two?", Answer: "four"},
	}, onDisk)
}

func TestHandler_TimeoutCountsAsWrongAnswer(t *testing.T) {
	questions, _ := newTestQuestionService(t)
	game := newFakeGame()
	out := &syncBuffer{}

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	h := NewHandler(pr, out, zap.NewNop(), game, questions, Options{
		AnswerTimeout: 3,
		TickInterval:  time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	require.Eventually(t, func() bool {
		gs := game.Session()
		return gs.IsOver()
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, 3, game.Timeouts())
	assert.Equal(t, 3, strings.Count(out.String(), msgTimeUp))
	assert.Contains(t, out.String(), "Lives left: 2")
	assert.Contains(t, out.String(), "Game over!")
}

func TestHandler_AnswerStopsCountdown(t *testing.T) {
	questions, _ := newTestQuestionService(t)
	game := newFakeGame()
	out := &syncBuffer{}

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	h := NewHandler(pr, out, zap.NewNop(), game, questions, Options{
		AnswerTimeout: 1000,
		TickInterval:  time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	_, err := io.WriteString(pw, "right\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return game.Session().Score == 1
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, game.Timeouts())
}

func TestHandler_ReloadsQuestionBank(t *testing.T) {
	questions, path := newTestQuestionService(t)
	reloads := make(chan struct{}, 1)
	out := &syncBuffer{}

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	h := NewHandler(pr, out, zap.NewNop(), newFakeGame(), questions, Options{
		AnswerTimeout: 15,
		TickInterval:  time.Hour,
	}).WithReloads(reloads)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	require.NoError(t, repository.WriteQuestions(path, []entities.Question{{Question: "Only one?", Answer: "yes"}}))
	reloads <- struct{}{}

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Question bank reloaded: 1 questions.")
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	all, err := questions.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entities.Question{{Question: "Only one?", Answer: "yes"}}, all)
}

func TestHandler_SubmitErrorEndsLoop(t *testing.T) {
	questions, _ := newTestQuestionService(t)
	game := newFakeGame()
	diskFull := errors.New("disk full")
	game.submitErr = diskFull

	_, err := runScript(t, game, questions, "right\n")
	require.ErrorIs(t, err, diskFull)
}

func TestSplitQuestionAnswer(t *testing.T) {
	tests := []struct {
		in       string
		question string
		answer   string
		ok       bool
	}{
		{in: "2 + 2 = ? | 4", question: "2 + 2 = ?", answer: "4", ok: true},
		{in: "a | b | c", question: "a | b", answer: "c", ok: true},
		{in: "no separator", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, a, ok := splitQuestionAnswer(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.question, q)
			assert.Equal(t, tt.answer, a)
		})
	}
}

func TestShouldRenderCountdown(t *testing.T) {
	rendered := make([]int, 0)
	for remaining := 15; remaining >= 1; remaining-- {
		if shouldRenderCountdown(remaining, 15) {
			rendered = append(rendered, remaining)
		}
	}
	assert.Equal(t, []int{15, 10, 5, 4, 3, 2, 1}, rendered)
}
