// messages.go contains message templates and formatting functions for the terminal.

package terminal

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/quiz-game/internal/domain/entities"
)

const (
	msgWelcome = "Math & General Quiz\nType your answer and press Enter. /help lists the commands."
	msgHelp    = `Commands:
  /restart                       refill lives and keep the score
  /new                           start over from zero
  /status                        show score, best score and lives
  /list                          list the question bank
  /add <question> | <answer>     add a question
  /edit <n> <question> | <answer> replace question n
  /remove <n>                    delete question n
  /quit                          leave the game`

	msgCorrect          = "✅ Correct! Score: %d"
	msgNewBest          = "🏆 New best score: %d"
	msgIncorrect        = "❌ Wrong! The answer was %q. Lives left: %d"
	msgTimeUp           = "⏰ Time is up!"
	msgGameOver         = "Game over! Best score: %d\nType /restart to continue or /new to start over."
	msgGameOverHint     = "The game is over. Type /restart, /new or /quit."
	msgUnknownCommand   = "Unknown command. Type /help for the list of commands."
	msgUseAdd           = "Usage: /add <question> | <answer>"
	msgUseEdit          = "Usage: /edit <n> <question> | <answer>"
	msgUseRemove        = "Usage: /remove <n>"
	msgQuestionAdded    = "Question added."
	msgQuestionEdited   = "Question #%d updated."
	msgQuestionRemoved  = "Question #%d removed."
	msgQuestionNotFound = "There is no question #%s."
	msgEmptyBank        = "The question bank is empty."
	msgBankReloaded     = "Question bank reloaded: %d questions."
	msgBye              = "Bye!"
)

func formatQuestion(q entities.Question) string {
	return "\n❓ " + q.Question
}

func formatCountdown(remaining int) string {
	return fmt.Sprintf("⏳ %d s", remaining)
}

func formatStatus(gs entities.GameSession) string {
	return fmt.Sprintf("Score: %d | Best: %d | Lives: %d", gs.Score, gs.BestScore, gs.Lives)
}

func formatQuestionList(questions []entities.Question) string {
	if len(questions) == 0 {
		return msgEmptyBank
	}

	var sb strings.Builder
	for i, q := range questions {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, q.Question)
	}
	return sb.String()
}

// shouldRenderCountdown keeps the terminal readable by printing only the
// start value, 10 and the last five seconds.
func shouldRenderCountdown(remaining, total int) bool {
	return remaining == total || remaining == 10 || remaining <= 5
}
