package game

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultBoardSize は BoardResized が届くまで使う盤面サイズ
const DefaultBoardSize = 640.0

var (
	ErrUnknownCase  = errors.New("case is not alive")
	ErrUnknownSlot  = errors.New("slot does not exist")
	ErrSlotOccupied = errors.New("slot is occupied by another case")
)

// Assignment は生きているケースとスロットの一対一対応を管理する。
// ドラッグ中のケース（lifted）は元のスロットを指したまま、そのスロットは空き扱いになる。
type Assignment struct {
	slots      [SlotCount]Slot
	caseToSlot map[int]int
	slotToCase map[int]int
	lifted     int
}

// NewAssignment はケース 1..10 を外周スロット 1..10 に置いた状態を作る
func NewAssignment() *Assignment {
	a := &Assignment{
		slots:      ComputeSlots(DefaultBoardSize, DefaultBoardSize),
		caseToSlot: make(map[int]int, CaseCount),
		slotToCase: make(map[int]int, CaseCount),
	}
	for i := 1; i <= CaseCount; i++ {
		a.caseToSlot[i] = i
		a.slotToCase[i] = i
	}
	return a
}

// Resize は盤面サイズに合わせてスロット座標を再計算する。割り当ては変わらない
func (a *Assignment) Resize(width, height float64) {
	a.slots = ComputeSlots(width, height)
}

// Slots は現在のスロット一覧（正規順）
func (a *Assignment) Slots() [SlotCount]Slot {
	return a.slots
}

// Slot はIDからスロットを引く
func (a *Assignment) Slot(slotID int) (Slot, bool) {
	if slotID < 1 || slotID > SlotCount {
		return Slot{}, false
	}
	return a.slots[slotID-1], true
}

// IsAlive はケースが盤上に残っているか
func (a *Assignment) IsAlive(caseID int) bool {
	_, ok := a.caseToSlot[caseID]
	return ok
}

// Len は生きているケースの数
func (a *Assignment) Len() int {
	return len(a.caseToSlot)
}

// Alive は生きているケースIDを昇順で返す
func (a *Assignment) Alive() []int {
	ids := make([]int, 0, len(a.caseToSlot))
	for id := range a.caseToSlot {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SlotOf はケースが割り当てられているスロット
func (a *Assignment) SlotOf(caseID int) (int, bool) {
	slotID, ok := a.caseToSlot[caseID]
	return slotID, ok
}

// CaseAt はスロットを占有しているケース。ドラッグ中に空けたスロットは空として扱う
func (a *Assignment) CaseAt(slotID int) (int, bool) {
	caseID, ok := a.slotToCase[slotID]
	return caseID, ok
}

// Lifted はドラッグ中で持ち上げられているケース（なければ0）
func (a *Assignment) Lifted() int {
	return a.lifted
}

// Place moves caseID into slotID and frees whatever slot it held before.
// The target must be empty or already held by the same case.
func (a *Assignment) Place(caseID, slotID int) error {
	if _, ok := a.Slot(slotID); !ok {
		return fmt.Errorf("place case %d: %w", caseID, ErrUnknownSlot)
	}
	oldSlot, ok := a.caseToSlot[caseID]
	if !ok {
		return fmt.Errorf("place case %d: %w", caseID, ErrUnknownCase)
	}
	if occupant, taken := a.slotToCase[slotID]; taken && occupant != caseID {
		return fmt.Errorf("place case %d in slot %d: %w", caseID, slotID, ErrSlotOccupied)
	}

	if a.slotToCase[oldSlot] == caseID {
		delete(a.slotToCase, oldSlot)
	}
	a.slotToCase[slotID] = caseID
	a.caseToSlot[caseID] = slotID
	if a.lifted == caseID {
		a.lifted = 0
	}
	return nil
}

// Lift はドラッグ開始時にケースのスロットを空ける。ケース自体は盤上に残る
func (a *Assignment) Lift(caseID int) (int, bool) {
	slotID, ok := a.caseToSlot[caseID]
	if !ok {
		return 0, false
	}
	if a.slotToCase[slotID] == caseID {
		delete(a.slotToCase, slotID)
	}
	a.lifted = caseID
	return slotID, true
}

// Remove はケースを完全に取り除き、スロットを解放する（脱落時）
func (a *Assignment) Remove(caseID int) bool {
	slotID, ok := a.caseToSlot[caseID]
	if !ok {
		return false
	}
	if a.slotToCase[slotID] == caseID {
		delete(a.slotToCase, slotID)
	}
	delete(a.caseToSlot, caseID)
	if a.lifted == caseID {
		a.lifted = 0
	}
	return true
}

// NearestFreeSlot returns the unoccupied slot closest to p. A slot held by
// excludingCaseID counts as free. Ties go to the slot that comes first in
// canonical order. ok is false when every slot is taken.
func (a *Assignment) NearestFreeSlot(p Point, excludingCaseID int) (slotID int, ok bool) {
	best := 0
	var bestD float64
	for _, s := range a.slots {
		if occupant, taken := a.slotToCase[s.ID]; taken && occupant != excludingCaseID {
			continue
		}
		d := s.Center.DistSq(p)
		if best == 0 || d < bestD {
			best = s.ID
			bestD = d
		}
	}
	return best, best != 0
}

// Validate は一対一対応が崩れていないか確認する
func (a *Assignment) Validate() error {
	for caseID, slotID := range a.caseToSlot {
		if _, ok := a.Slot(slotID); !ok {
			return fmt.Errorf("case %d: %w", caseID, ErrUnknownSlot)
		}
		occupant, ok := a.slotToCase[slotID]
		if !ok {
			if caseID == a.lifted {
				continue
			}
			return fmt.Errorf("case %d maps to slot %d but slot is empty", caseID, slotID)
		}
		if occupant != caseID {
			return fmt.Errorf("case %d maps to slot %d held by case %d", caseID, slotID, occupant)
		}
	}
	for slotID, caseID := range a.slotToCase {
		if a.caseToSlot[caseID] != slotID {
			return fmt.Errorf("slot %d holds case %d which maps elsewhere", slotID, caseID)
		}
	}
	return nil
}

// Positions はケースIDごとの配置スロット（スナップショット用コピー）
func (a *Assignment) Positions() map[int]int {
	out := make(map[int]int, len(a.caseToSlot))
	for caseID, slotID := range a.caseToSlot {
		out[caseID] = slotID
	}
	return out
}
