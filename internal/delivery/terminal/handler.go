package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-game/internal/domain/entities"
)

// errQuit stops the event loop without reporting a failure.
var errQuit = errors.New("quit")

// Options configures the per-question countdown.
type Options struct {
	AnswerTimeout int           // ticks per question
	TickInterval  time.Duration // duration of one tick
}

// Handler is the game's single event loop. Input lines, countdown ticks and
// question file changes all arrive over channels and are processed one at a
// time, so the services it drives are never called concurrently.
type Handler struct {
	in              io.Reader
	out             io.Writer
	logger          *zap.Logger
	gameService     GameService
	questionService QuestionService
	opts            Options

	countdown entities.Countdown
	ticks     chan uint64
	reloads   <-chan struct{}
}

func NewHandler(
	in io.Reader,
	out io.Writer,
	logger *zap.Logger,
	gameService GameService,
	questionService QuestionService,
	opts Options,
) *Handler {
	return &Handler{
		in:              in,
		out:             out,
		logger:          logger,
		gameService:     gameService,
		questionService: questionService,
		opts:            opts,
		ticks:           make(chan uint64),
	}
}

// WithReloads makes the loop reload the question bank whenever a value
// arrives on changes.
func (h *Handler) WithReloads(changes <-chan struct{}) *Handler {
	h.reloads = changes
	return h
}

// Run starts the game and processes events until the player quits, input
// ends or ctx is cancelled. Errors persisting game data end the loop.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("terminal handler started")
	defer h.logger.Info("terminal handler stopped")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go readLines(ctx, h.in, lines)

	h.println(msgWelcome)

	q, err := h.gameService.Start(ctx)
	if err != nil {
		return err
	}
	h.println(formatStatus(h.gameService.Session()))
	h.present(ctx, q)

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := h.handleLine(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					h.println(msgBye)
					return nil
				}
				return err
			}

		case gen := <-h.ticks:
			if err := h.handleTick(ctx, gen); err != nil {
				return err
			}

		case <-h.reloads:
			h.handleReload(ctx)
		}
	}
}

// present shows a question and restarts the countdown for it.
func (h *Handler) present(ctx context.Context, q entities.Question) {
	h.println(formatQuestion(q))

	gen := h.countdown.Start(h.opts.AnswerTimeout)
	h.println(formatCountdown(h.countdown.Remaining()))
	h.scheduleTick(ctx, gen)
}

// scheduleTick delivers one tick for generation gen after the tick interval.
func (h *Handler) scheduleTick(ctx context.Context, gen uint64) {
	time.AfterFunc(h.opts.TickInterval, func() {
		select {
		case h.ticks <- gen:
		case <-ctx.Done():
		}
	})
}

func (h *Handler) handleTick(ctx context.Context, gen uint64) error {
	if !h.countdown.Running() || gen != h.countdown.Generation() {
		return nil
	}

	remaining, expired := h.countdown.Tick(gen)
	if !expired {
		if shouldRenderCountdown(remaining, h.opts.AnswerTimeout) {
			h.println(formatCountdown(remaining))
		}
		h.scheduleTick(ctx, gen)
		return nil
	}

	h.println(msgTimeUp)
	res, next, err := h.gameService.Timeout(ctx)
	if err != nil {
		return fmt.Errorf("handle timeout: %w", err)
	}
	h.afterAnswer(ctx, res, next)
	return nil
}

func (h *Handler) handleAnswer(ctx context.Context, answer string) error {
	if gs := h.gameService.Session(); gs.IsOver() {
		h.println(msgGameOverHint)
		return nil
	}

	h.countdown.Stop()

	res, next, err := h.gameService.Submit(ctx, answer)
	if err != nil {
		return fmt.Errorf("submit answer: %w", err)
	}
	h.afterAnswer(ctx, res, next)
	return nil
}

func (h *Handler) afterAnswer(ctx context.Context, res entities.AnswerResult, next entities.Question) {
	if res.Correct {
		h.printf(msgCorrect, res.Score)
		if res.NewBest {
			h.printf(msgNewBest, res.BestScore)
		}
	} else {
		h.printf(msgIncorrect, res.Expected, res.Lives)
	}

	if res.Status == entities.StatusGameOver {
		h.countdown.Stop()
		h.printf(msgGameOver, res.BestScore)
		return
	}

	h.println(formatStatus(h.gameService.Session()))
	h.present(ctx, next)
}

func (h *Handler) handleReload(ctx context.Context) {
	before, _ := h.questionService.List(ctx)
	count := h.questionService.Reload(ctx)

	h.logger.Debug("question bank reloaded", zap.Int("count", count))
	if count != len(before) {
		h.printf(msgBankReloaded, count)
	}
}

func (h *Handler) println(s string) {
	_, _ = fmt.Fprintln(h.out, s)
}

func (h *Handler) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(h.out, format+"\n", args...)
}

// readLines forwards input lines until EOF, then closes lines.
func readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}
