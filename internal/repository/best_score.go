package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var ErrInvalidBestScore = errors.New("invalid best score")

// BestScoreRepository persists the best score as a single decimal integer.
type BestScoreRepository struct {
	path   string
	logger *zap.Logger
}

func NewBestScoreRepository(path string, logger *zap.Logger) *BestScoreRepository {
	return &BestScoreRepository{
		path:   path,
		logger: logger,
	}
}

// Get returns the stored best score, or 0 when the file is missing or corrupt.
func (r *BestScoreRepository) Get(_ context.Context) int {
	score, err := readBestScore(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.logger.Warn("best score file unreadable, starting from zero",
				zap.String("path", r.path),
				zap.Error(err),
			)
		}
		return 0
	}
	return score
}

// Save overwrites the best score file.
func (r *BestScoreRepository) Save(_ context.Context, score int) error {
	if score < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBestScore, score)
	}
	if err := os.WriteFile(r.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("save best score to %s: %w", r.path, err)
	}
	return nil
}

func readBestScore(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidBestScore, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBestScore, score)
	}
	return score, nil
}
