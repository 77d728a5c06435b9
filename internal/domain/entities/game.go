package entities

// GameStatus is the state of a play-through.
type GameStatus string

const (
	StatusPlaying  GameStatus = "playing"
	StatusGameOver GameStatus = "game_over"
)

// GameSession holds the mutable state of one player's game.
// It tracks the score, remaining lives, best score and the question on screen.
type GameSession struct {
	ID           string       // session id used in logs
	Score        int          // correct answers in the current run
	Lives        int          // remaining lives
	StartLives   int          // lives granted on (re)start
	BestScore    int          // best score ever reached, persisted
	Status       GameStatus   // playing or game over
	Current      Question     // question currently presented
	CurrentKind  QuestionKind // arithmetic or trivia
	QuestionsRun int          // questions presented since the last restart
}

// NewGameSession creates a session in the playing state.
func NewGameSession(id string, lives, bestScore int) *GameSession {
	return &GameSession{
		ID:         id,
		Lives:      lives,
		StartLives: lives,
		BestScore:  bestScore,
		Status:     StatusPlaying,
	}
}

// IsOver reports whether the session has run out of lives.
func (gs *GameSession) IsOver() bool {
	return gs.Status == StatusGameOver
}

// RecordCorrect adds a point and reports whether the best score was beaten.
func (gs *GameSession) RecordCorrect() bool {
	gs.Score++
	if gs.Score > gs.BestScore {
		gs.BestScore = gs.Score
		return true
	}
	return false
}

// RecordIncorrect takes a life and ends the game when none are left.
func (gs *GameSession) RecordIncorrect() {
	gs.Lives--
	if gs.Lives <= 0 {
		gs.Lives = 0
		gs.Status = StatusGameOver
	}
}

// Restart returns the session to the playing state with full lives.
func (gs *GameSession) Restart(resetScore bool) {
	if resetScore {
		gs.Score = 0
	}
	gs.Lives = gs.StartLives
	gs.Status = StatusPlaying
	gs.QuestionsRun = 0
}

// AnswerResult describes the outcome of one answer or timeout.
type AnswerResult struct {
	Correct   bool
	TimedOut  bool
	Expected  string // answer the player should have given
	NewBest   bool   // the best score was raised by this answer
	Score     int
	Lives     int
	BestScore int
	Status    GameStatus
}
