package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNames(t *testing.T) {
	a, b, ok := ValidateNames("  Ann ", "\tBo")
	assert.True(t, ok)
	assert.Equal(t, "Ann", a)
	assert.Equal(t, "Bo", b)

	_, _, ok = ValidateNames("Ann", "ann")
	assert.False(t, ok)

	// 18文字ちょうどは許可（マルチバイトも1文字として数える）
	_, _, ok = ValidateNames("あいうえおかきくけこさしすせそたちつ", "Bo")
	assert.True(t, ok)
	_, _, ok = ValidateNames("あいうえおかきくけこさしすせそたちつて", "Bo")
	assert.False(t, ok)
}

func TestRandomNames(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		a, b := RandomNames(rng)
		assert.NotEqual(t, a, b)
		assert.Contains(t, randomNamePool, a)
		assert.Contains(t, randomNamePool, b)

		_, _, ok := ValidateNames(a, b)
		assert.True(t, ok)
	}
}
