package game

import (
	"sort"
	"sync"
	"time"
)

// 固定の待ち時間
const (
	CoinFlipDelay     = 6500 * time.Millisecond
	CoinResultHold    = 5200 * time.Millisecond // 結果の名前を最低5秒は見せる
	WrongRevealDelay  = 450 * time.Millisecond
	WrongCueDuration  = 1100 * time.Millisecond
	WinGlowDuration   = 1000 * time.Millisecond
	CaseRemovalDelay  = 220 * time.Millisecond
	VisualSweepPeriod = 200 * time.Millisecond
)

// Task は予約済みの継続処理
type Task interface {
	// Cancel は未実行なら実行を取り消す。すでに実行済みなら何もしない
	Cancel()
}

// Scheduler runs fn once after d. Implementations must run fn on the same
// goroutine that drives the Engine.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

// LoopScheduler は実時間のタイマー。発火時の処理は post 経由でセッションのループに戻す
type LoopScheduler struct {
	post func(func())
}

// NewLoopScheduler は post（セッションのイベントループへの投入関数）を使うスケジューラを作る
func NewLoopScheduler(post func(func())) *LoopScheduler {
	return &LoopScheduler{post: post}
}

type loopTask struct {
	mu       sync.Mutex
	timer    *time.Timer
	canceled bool
}

func (t *loopTask) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.canceled = true
	t.timer.Stop()
}

func (t *loopTask) isCanceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// Schedule はタイマーを予約する。Cancel 済みならループ上でも実行しない
func (s *LoopScheduler) Schedule(d time.Duration, fn func()) Task {
	t := &loopTask{}
	t.mu.Lock()
	t.timer = time.AfterFunc(d, func() {
		s.post(func() {
			if t.isCanceled() {
				return
			}
			fn()
		})
	})
	t.mu.Unlock()
	return t
}

// ManualScheduler は時間を手動で進めるスケジューラ。Advance を呼んだゴルーチン上で順に実行する
type ManualScheduler struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
	done     bool
}

func (t *manualTask) Cancel() {
	t.canceled = true
}

// NewManualScheduler は時刻0のスケジューラを作る
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule は now+d に実行するタスクを登録する
func (s *ManualScheduler) Schedule(d time.Duration, fn func()) Task {
	s.seq++
	t := &manualTask{at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Now は経過時間
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending は未実行・未取消のタスク数
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done && !t.canceled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running due tasks in time order.
// Tasks scheduled by a running task fire in the same call if they fall due.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.done = true
		next.fn()
	}
	s.now = target
	s.compact()
}

func (s *ManualScheduler) nextDue(limit time.Duration) *manualTask {
	var due []*manualTask
	for _, t := range s.tasks {
		if !t.done && !t.canceled && t.at <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (s *ManualScheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done && !t.canceled {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}
