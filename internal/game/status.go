package game

import (
	"fmt"

	"shellgame/models"
)

// StatusText はフェーズと役割に応じた案内文を返す
func StatusText(s models.GameState) string {
	hider := s.Players.Name(s.Hider)
	guesser := s.Players.Name(s.Guesser)

	switch s.Phase {
	case models.PhaseMove:
		return fmt.Sprintf("Hider: %s — Move the boxes (drag). Then tap Done Moving.", hider)
	case models.PhasePickWinner:
		return fmt.Sprintf("Hider: %s — Select the winning case (glows), then Lock Winning Case.", hider)
	case models.PhaseGuess:
		return fmt.Sprintf("Guesser: %s — Select a case (glows), then Lock In Guess.", guesser)
	case models.PhaseWin:
		return fmt.Sprintf("%s wins!", s.Players.Name(s.Winner))
	case models.PhaseCoin:
		return "Flipping coin…"
	default:
		return "Ready…"
	}
}

// LockButton はロックボタンのラベルと有効状態
func LockButton(s models.GameState) (string, bool) {
	switch s.Phase {
	case models.PhasePickWinner:
		return "Lock Winning Case", s.SelectedWinningCaseID != 0
	case models.PhaseGuess:
		return "Lock In Guess", s.SelectedGuessCaseID != 0
	default:
		return "Lock In", false
	}
}
