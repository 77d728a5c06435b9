package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-game/internal/config"
	"github.com/aliskhannn/quiz-game/internal/delivery/terminal"
	"github.com/aliskhannn/quiz-game/internal/infra/watcher"
	"github.com/aliskhannn/quiz-game/internal/logger"
	"github.com/aliskhannn/quiz-game/internal/repository"
	"github.com/aliskhannn/quiz-game/internal/service"
	"github.com/aliskhannn/quiz-game/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories and services.
	questionRepo := repository.NewQuestionRepository(cfg.Questions.Path, lg)
	bestScoreRepo := repository.NewBestScoreRepository(cfg.BestScorePath, lg)

	selector := service.NewQuestionSelector(cfg.Rotation, nil)
	gameService := service.NewGameService(
		questionRepo,
		bestScoreRepo,
		storage.NewCooldownStorage(),
		selector,
		cfg.Game.Lives,
		lg,
		nil,
	)
	questionService, err := service.NewQuestionService(questionRepo, lg)
	if err != nil {
		lg.Fatal("failed to create question service", zap.Error(err))
	}

	handler := terminal.NewHandler(os.Stdin, os.Stdout, lg, gameService, questionService, terminal.Options{
		AnswerTimeout: cfg.Game.AnswerTimeout,
		TickInterval:  cfg.Game.TickInterval,
	})

	if cfg.Questions.Watch {
		w, err := watcher.NewQuestionFileWatcher(cfg.Questions.Path, watcher.DefaultDebounce, lg)
		if err != nil {
			lg.Warn("question file watching disabled", zap.Error(err))
		} else {
			go func() {
				if err := w.Run(ctx); err != nil {
					lg.Error("question file watcher stopped", zap.Error(err))
				}
			}()
			handler.WithReloads(w.Changes())
		}
	}

	if err := handler.Run(ctx); err != nil {
		lg.Error("game stopped", zap.Error(err))
		stop()
		_ = lg.Sync()
		os.Exit(1)
	}
}
