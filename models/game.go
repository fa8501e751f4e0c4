package models

// Seat はプレイヤーの席（A または B）
type Seat string

const (
	SeatA Seat = "A"
	SeatB Seat = "B"
)

// Other は反対側の席を返す
func (s Seat) Other() Seat {
	if s == SeatA {
		return SeatB
	}
	return SeatA
}

// Phase はゲームの進行段階。各アクションはひとつのPhaseでのみ有効
type Phase string

const (
	PhaseNames           Phase = "NAMES"
	PhaseCoin            Phase = "COIN"
	PhaseLookAwayForMove Phase = "LOOK_AWAY_FOR_MOVE"
	PhaseMove            Phase = "MOVE"
	PhasePickWinner      Phase = "PICK_WINNER" // 隠す側が当たりのケースを選ぶ
	PhasePassToGuess     Phase = "PASS_TO_GUESS"
	PhaseGuess           Phase = "GUESS"
	PhaseWin             Phase = "WIN"
)

func (p Phase) String() string {
	return string(p)
}

// Label はフェーズ表示用の短いラベル
func (p Phase) Label() string {
	switch p {
	case PhaseMove:
		return "MOVE"
	case PhasePickWinner:
		return "PICK"
	case PhaseGuess:
		return "GUESS"
	case PhaseWin:
		return "WIN"
	default:
		return "—"
	}
}

// Players は2つの席の表示名。ゲーム開始時に一度だけ設定される
type Players struct {
	A string `json:"A"`
	B string `json:"B"`
}

// Name は席に対応する名前を返す
func (p Players) Name(s Seat) string {
	if s == SeatB {
		return p.B
	}
	return p.A
}

// GameState はゲーム全体の状態。Engineが唯一の所有者
type GameState struct {
	Phase   Phase   `json:"phase"`
	Players Players `json:"players"`
	Round   int     `json:"round"`

	CoinWinner Seat `json:"coinWinner"` // 最初の当てる側
	Guesser    Seat `json:"guesser"`
	Hider      Seat `json:"hider"`

	WinningCaseID         int `json:"-"` // 0 は未設定
	SelectedWinningCaseID int `json:"selectedWinningCaseId,omitempty"`
	SelectedGuessCaseID   int `json:"selectedGuessCaseId,omitempty"`

	// 外れた直後に公開する当たりケース。Continue で消える
	RevealCaseID int  `json:"revealCaseId,omitempty"`
	RevealShown  bool `json:"revealShown,omitempty"`

	Winner Seat `json:"winner,omitempty"`
}

// NewGameState は初期状態（NAMES、ラウンド1、A が当てる側）を返す
func NewGameState() GameState {
	return GameState{
		Phase:      PhaseNames,
		Round:      1,
		CoinWinner: SeatA,
		Guesser:    SeatA,
		Hider:      SeatB,
	}
}

// ClearSelections は保留中の選択をすべて消す
func (g *GameState) ClearSelections() {
	g.SelectedWinningCaseID = 0
	g.SelectedGuessCaseID = 0
}
