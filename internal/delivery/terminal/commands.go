package terminal

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-game/internal/service"
)

// handleLine dispatches a command or treats the line as an answer.
func (h *Handler) handleLine(ctx context.Context, line string) error {
	if !strings.HasPrefix(strings.TrimSpace(line), "/") {
		return h.handleAnswer(ctx, line)
	}

	command, args := splitCommand(line)
	h.logger.Debug("command received",
		zap.String("command", command),
		zap.String("args", args),
	)

	switch command {
	case "quit", "exit":
		return errQuit
	case "help":
		h.println(msgHelp)
	case "status":
		h.println(formatStatus(h.gameService.Session()))
	case "restart":
		return h.handleRestart(ctx, false)
	case "new":
		return h.handleRestart(ctx, true)
	case "list":
		return h.handleList(ctx)
	case "add":
		return h.handleAdd(ctx, args)
	case "edit":
		return h.handleEdit(ctx, args)
	case "remove":
		return h.handleRemove(ctx, args)
	default:
		h.println(msgUnknownCommand)
	}

	return nil
}

func (h *Handler) handleRestart(ctx context.Context, resetScore bool) error {
	q, err := h.gameService.Restart(ctx, resetScore)
	if err != nil {
		return err
	}

	h.println(formatStatus(h.gameService.Session()))
	h.present(ctx, q)
	return nil
}

func (h *Handler) handleList(ctx context.Context) error {
	questions, err := h.questionService.List(ctx)
	if err != nil {
		return err
	}

	h.println(formatQuestionList(questions))
	return nil
}

func (h *Handler) handleAdd(ctx context.Context, args string) error {
	question, answer, ok := splitQuestionAnswer(args)
	if !ok {
		h.println(msgUseAdd)
		return nil
	}

	_, err := h.questionService.Add(ctx, question, answer)
	if err != nil {
		return h.userError(err)
	}

	h.println(msgQuestionAdded)
	return nil
}

func (h *Handler) handleEdit(ctx context.Context, args string) error {
	numStr, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	n, err := strconv.Atoi(numStr)
	if err != nil {
		h.println(msgUseEdit)
		return nil
	}

	question, answer, ok := splitQuestionAnswer(rest)
	if !ok {
		h.println(msgUseEdit)
		return nil
	}

	if _, err := h.questionService.Edit(ctx, n-1, question, answer); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			h.printf(msgQuestionNotFound, numStr)
			return nil
		}
		return h.userError(err)
	}

	h.printf(msgQuestionEdited, n)
	return nil
}

func (h *Handler) handleRemove(ctx context.Context, args string) error {
	numStr := strings.TrimSpace(args)
	n, err := strconv.Atoi(numStr)
	if err != nil {
		h.println(msgUseRemove)
		return nil
	}

	if err := h.questionService.Remove(ctx, n-1); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			h.printf(msgQuestionNotFound, numStr)
			return nil
		}
		return err
	}

	h.printf(msgQuestionRemoved, n)
	return nil
}

// userError prints validation problems and passes everything else up.
func (h *Handler) userError(err error) error {
	if errors.Is(err, service.ErrInvalidQuestion) {
		h.println(err.Error())
		return nil
	}
	return err
}

// splitCommand turns "/edit 2 foo" into ("edit", "2 foo").
func splitCommand(line string) (string, string) {
	line = strings.TrimPrefix(strings.TrimSpace(line), "/")
	command, args, _ := strings.Cut(line, " ")
	return strings.ToLower(command), strings.TrimSpace(args)
}

// splitQuestionAnswer splits "question | answer" on the last separator,
// so questions may contain "|" themselves.
func splitQuestionAnswer(s string) (string, string, bool) {
	i := strings.LastIndex(s, "|")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}
