package game

import (
	"shellgame/models"

	"go.uber.org/zap"
)

// setPhase is the only place the phase changes. It applies the entry
// effects every time, even when p equals the current phase: drag input is
// armed only in MOVE, and disarming resolves any drag still in progress.
func (e *Engine) setPhase(p models.Phase) {
	prev := e.state.Phase
	e.state.Phase = p

	armed := p == models.PhaseMove
	if caseID, slotID, ok := e.drag.SetArmed(armed); ok {
		e.logger.Info("Drag resolved on disarm", zap.Int("caseID", caseID), zap.Int("slotID", slotID))
		e.placeCase(caseID)
	}
	e.renderer.SetDragEnabled(armed)

	e.logger.Info("Phase changed",
		zap.String("from", prev.String()),
		zap.String("to", p.String()),
		zap.Int("round", e.state.Round),
		zap.Int("alive", e.board.Len()),
	)
	e.render()
}

// NamesConfirmed は NAMES でのみ有効。名前が不正なら何もしない
func (e *Engine) NamesConfirmed(nameA, nameB string) {
	if e.state.Phase != models.PhaseNames {
		e.ignored("namesConfirmed")
		return
	}
	a, b, ok := ValidateNames(nameA, nameB)
	if !ok {
		e.logger.Debug("Names rejected", zap.String("nameA", a), zap.String("nameB", b))
		return
	}
	e.state.Players = models.Players{A: a, B: b}
	e.logger.Info("Players registered", zap.String("A", a), zap.String("B", b))
	e.hideOverlay()
	e.startCoinFlip()
}

func (e *Engine) startCoinFlip() {
	e.coin = coinFlip{}
	e.setPhase(models.PhaseCoin)
	names := e.state.Players
	e.showOverlay(Overlay{Kind: OverlayCoin, Names: &names})
	e.coin.flip = e.after(CoinFlipDelay, e.finishCoinFlip)
}

// CoinFlipResolved はコイントスのタイマー満了と同じ扱い
func (e *Engine) CoinFlipResolved() {
	if e.state.Phase != models.PhaseCoin {
		e.ignored("coinFlipResolved")
		return
	}
	e.finishCoinFlip()
}

// CoinFlipSkipped はタイマーを取り消して即座に結果を出す
func (e *Engine) CoinFlipSkipped() {
	if e.state.Phase != models.PhaseCoin {
		e.ignored("coinFlipSkipped")
		return
	}
	e.cancel(e.coin.flip)
	e.finishCoinFlip()
}

// finishCoinFlip は1ゲームにつき一度だけ結果を確定させる
func (e *Engine) finishCoinFlip() {
	if e.coin.resolved {
		return
	}
	e.coin.resolved = true

	winner := models.SeatB
	if e.rng.Intn(2) == 0 {
		winner = models.SeatA
	}
	e.assignRoles(winner)

	names := e.state.Players
	e.showOverlay(Overlay{
		Kind:      OverlayCoinResult,
		Seat:      e.state.Guesser,
		Name:      e.state.Players.Name(e.state.Guesser),
		Other:     e.state.Hider,
		OtherName: e.state.Players.Name(e.state.Hider),
		Names:     &names,
	})
	e.render()

	e.after(CoinResultHold, func() {
		if e.state.Phase != models.PhaseCoin {
			return
		}
		e.hideOverlay()
		e.beginRound()
	})
}

// beginRound は隠す側が並べ替える前の「見ないで」画面に進む
func (e *Engine) beginRound() {
	e.state.WinningCaseID = 0
	e.clearSelections()
	e.setPhase(models.PhaseLookAwayForMove)
	if e.state.RevealCaseID == 0 {
		e.showLookAway()
	}
}

func (e *Engine) showLookAway() {
	e.showOverlay(Overlay{
		Kind:      OverlayLookAway,
		Seat:      e.state.Hider,
		Name:      e.state.Players.Name(e.state.Hider),
		Other:     e.state.Guesser,
		OtherName: e.state.Players.Name(e.state.Guesser),
	})
}

// ReadyAcknowledged は「準備できた」ボタン。見ないで画面とデバイス受け渡し画面の両方で使う
func (e *Engine) ReadyAcknowledged() {
	switch e.state.Phase {
	case models.PhaseLookAwayForMove:
		// 外れの公開ダイアログが残っている間は無効
		if e.state.RevealCaseID != 0 {
			e.ignored("readyAcknowledged")
			return
		}
		e.hideOverlay()
		e.clearSelections()
		e.setPhase(models.PhaseMove)
	case models.PhasePassToGuess:
		e.hideOverlay()
		e.clearSelections()
		e.setPhase(models.PhaseGuess)
	default:
		e.ignored("readyAcknowledged")
	}
}

// ContinuePressed は外れ公開ダイアログを閉じて見ないで画面を出す
func (e *Engine) ContinuePressed() {
	if e.state.Phase != models.PhaseLookAwayForMove || !e.state.RevealShown {
		e.ignored("continue")
		return
	}
	e.state.RevealCaseID = 0
	e.state.RevealShown = false
	e.showLookAway()
}

// DoneMoving は MOVE でのみ有効
func (e *Engine) DoneMoving() {
	if e.state.Phase != models.PhaseMove {
		e.ignored("doneMoving")
		return
	}
	e.clearSelections()
	e.setPhase(models.PhasePickWinner)
}

// CaseSelected は PICK_WINNER と GUESS でのみ有効。確定はロックボタンで行う
func (e *Engine) CaseSelected(caseID int) {
	if !e.board.IsAlive(caseID) {
		e.logger.Debug("Selection of unknown case ignored", zap.Int("caseID", caseID))
		return
	}
	switch e.state.Phase {
	case models.PhasePickWinner:
		e.state.SelectedWinningCaseID = caseID
	case models.PhaseGuess:
		e.state.SelectedGuessCaseID = caseID
	default:
		e.ignored("caseSelected")
		return
	}
	e.renderer.RenderSelection(caseID)
	label, enabled := LockButton(e.state)
	e.renderer.RenderLockButton(label, enabled)
}

// LockInPressed はフェーズに応じて当たりケースか予想を確定する
func (e *Engine) LockInPressed() {
	switch e.state.Phase {
	case models.PhasePickWinner:
		e.lockWinningCase()
	case models.PhaseGuess:
		e.lockGuess()
	default:
		e.ignored("lockIn")
	}
}

func (e *Engine) lockWinningCase() {
	picked := e.state.SelectedWinningCaseID
	if picked == 0 || !e.board.IsAlive(picked) {
		e.ignored("lockIn")
		return
	}
	e.state.WinningCaseID = picked
	// 受け渡し画面の前に選択の光を消す
	e.clearSelections()
	e.logger.Info("Winning case locked", zap.String("hider", string(e.state.Hider)), zap.Int("round", e.state.Round))

	e.setPhase(models.PhasePassToGuess)
	e.showOverlay(Overlay{
		Kind:      OverlayPassDevice,
		Seat:      e.state.Guesser,
		Name:      e.state.Players.Name(e.state.Guesser),
		Other:     e.state.Hider,
		OtherName: e.state.Players.Name(e.state.Hider),
	})
}

// PlayAgainPressed は WIN でのみ有効
func (e *Engine) PlayAgainPressed() {
	if e.state.Phase != models.PhaseWin {
		e.ignored("playAgain")
		return
	}
	e.hardReset()
}

// ResetPressed はどのフェーズでも最初からやり直す
func (e *Engine) ResetPressed() {
	e.hardReset()
}

// DragStarted は MOVE でのみ有効
func (e *Engine) DragStarted(caseID int, pointer Point) {
	if e.state.Phase != models.PhaseMove {
		e.ignored("dragStarted")
		return
	}
	if !e.drag.Start(caseID, pointer) {
		e.logger.Debug("Drag not started", zap.Int("caseID", caseID))
		return
	}
	s := e.drag.Active()
	e.renderer.PlaceCase(caseID, topLeft(s.Position), true)
}

// DragMoved は表示位置だけを更新する
func (e *Engine) DragMoved(pointer Point) {
	s, ok := e.drag.Move(pointer)
	if !ok {
		e.ignored("dragMoved")
		return
	}
	e.renderer.PlaceCase(s.CaseID, topLeft(s.Position), true)
}

// DragReleased は最寄りの空きスロットに確定させる
func (e *Engine) DragReleased(pointer Point) {
	caseID, slotID, ok := e.drag.Release(pointer)
	if !ok {
		e.ignored("dragReleased")
		return
	}
	e.logger.Info("Case moved", zap.Int("caseID", caseID), zap.Int("slotID", slotID))
	e.placeCase(caseID)
	e.render()
}

// DragCancelled はポインタを失った場合。最後の位置で離したものとして扱う
func (e *Engine) DragCancelled() {
	caseID, slotID, ok := e.drag.Cancel()
	if !ok {
		e.ignored("dragCancelled")
		return
	}
	e.logger.Info("Drag cancelled", zap.Int("caseID", caseID), zap.Int("slotID", slotID))
	e.placeCase(caseID)
	e.render()
}
