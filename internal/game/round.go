package game

import (
	"shellgame/models"

	"go.uber.org/zap"
)

// assignRoles はコイントスの勝者を最初の当てる側にする
func (e *Engine) assignRoles(coinWinner models.Seat) {
	e.state.CoinWinner = coinWinner
	e.state.Guesser = coinWinner
	e.state.Hider = coinWinner.Other()
	e.logger.Info("Coin flip resolved",
		zap.String("guesser", string(e.state.Guesser)),
		zap.String("hider", string(e.state.Hider)),
	)
}

// swapRoles は当てる側と隠す側を入れ替える
func (e *Engine) swapRoles() {
	e.state.Guesser, e.state.Hider = e.state.Hider, e.state.Guesser
}

// lockGuess resolves the guesser's pending pick. A hit ends the game; a miss
// eliminates the picked case for good, swaps roles and starts a new round.
func (e *Engine) lockGuess() {
	picked := e.state.SelectedGuessCaseID
	if picked == 0 || !e.board.IsAlive(picked) || e.state.WinningCaseID == 0 {
		e.ignored("lockIn")
		return
	}

	if picked == e.state.WinningCaseID {
		e.state.Winner = e.state.Guesser
		e.clearSelections()
		e.logger.Info("Guesser found the winning case",
			zap.String("winner", string(e.state.Winner)),
			zap.Int("round", e.state.Round),
		)
		e.setPhase(models.PhaseWin)

		e.renderer.Cue(CueWin)
		e.after(WinGlowDuration, func() { e.renderer.Cue(CueWinClear) })
		e.showOverlay(Overlay{
			Kind: OverlayWin,
			Seat: e.state.Winner,
			Name: e.state.Players.Name(e.state.Winner),
		})
		return
	}

	winning := e.state.WinningCaseID
	e.renderer.Cue(CueWrong)
	e.after(WrongCueDuration, func() { e.renderer.Cue(CueWrongClear) })

	e.eliminate(picked)
	e.swapRoles()
	e.state.Round++
	e.state.RevealCaseID = winning
	e.state.RevealShown = false
	e.logger.Info("Wrong guess",
		zap.Int("picked", picked),
		zap.Int("round", e.state.Round),
		zap.Int("alive", e.board.Len()),
	)

	e.hideOverlay()
	e.beginRound()

	// 少し待ってから当たりのケースを見せる
	e.after(WrongRevealDelay, func() {
		if e.state.Phase != models.PhaseLookAwayForMove || e.state.RevealCaseID == 0 {
			return
		}
		e.state.RevealShown = true
		e.showOverlay(Overlay{Kind: OverlayWrongGuess, CaseID: e.state.RevealCaseID})
	})
}

// eliminate はケースを盤面から永久に取り除く。表示の削除は少し遅らせる
func (e *Engine) eliminate(caseID int) {
	if !e.board.Remove(caseID) {
		return
	}
	e.after(CaseRemovalDelay, func() {
		if e.rendered[caseID] {
			e.renderer.RemoveCase(caseID)
			delete(e.rendered, caseID)
		}
	})
}

// hardReset はラウンド・名前・盤面をすべて初期化して NAMES に戻る
func (e *Engine) hardReset() {
	e.cancelTimers()
	e.renderer.Cue(CueClearAll)

	e.state = models.NewGameState()
	e.coin = coinFlip{}
	e.board = NewAssignment()
	e.board.Resize(e.width, e.height)
	e.drag.Reset(e.board)

	e.logger.Info("Game reset")
	e.hideOverlay()
	e.clearSelections()
	e.placeAllCases()
	e.setPhase(models.PhaseNames)
	e.showOverlay(Overlay{Kind: OverlayNames})
}
