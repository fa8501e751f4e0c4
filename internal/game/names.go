package game

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// MaxNameLength は名前入力欄の最大文字数
const MaxNameLength = 18

var randomNamePool = []string{"Nova", "Blaze", "Shadow", "Rogue", "Pixel", "Viper", "Koda", "Skye", "Atlas", "Echo", "Jinx", "River"}

// 乱数はコイントスとランダム名の決定に使用
func NewRandGenerator() *rand.Rand {
	source := rand.NewSource(time.Now().UnixNano())
	return rand.New(source)
}

// ValidateNames trims both names and reports whether they can start a game:
// both non-empty, at most MaxNameLength runes, and different under Unicode
// case folding.
func ValidateNames(nameA, nameB string) (string, string, bool) {
	a := strings.TrimSpace(nameA)
	b := strings.TrimSpace(nameB)
	if a == "" || b == "" {
		return a, b, false
	}
	if utf8.RuneCountInString(a) > MaxNameLength || utf8.RuneCountInString(b) > MaxNameLength {
		return a, b, false
	}
	fold := cases.Fold()
	if fold.String(a) == fold.String(b) {
		return a, b, false
	}
	return a, b, true
}

// RandomNames はプールから重複しない名前を2つ選ぶ
func RandomNames(rng *rand.Rand) (string, string) {
	perm := rng.Perm(len(randomNamePool))
	return randomNamePool[perm[0]], randomNamePool[perm[1]]
}

// RandomNames はエンジンの乱数で名前を2つ選ぶ（名前入力の「ランダム」ボタン用）
func (e *Engine) RandomNames() (string, string) {
	return RandomNames(e.rng)
}
