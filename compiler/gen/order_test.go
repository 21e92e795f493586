package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsParens(t *testing.T) {
	tests := []struct {
		name         string
		inner, outer Order
		want         bool
	}{
		{"atomic never wraps", OrderAtomic, 1, false},
		{"same tier does not wrap", 5, 5, false},
		{"tighter does not wrap", 3, 5, false},
		{"looser wraps", 6, 5, true},
		{"none requirement never wraps", 42, OrderNone, false},
		{"none expression wraps under any requirement", OrderNone, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsParens(tt.inner, tt.outer))
		})
	}
}

func TestBinary(t *testing.T) {
	const additive Order = 6

	t.Run("left associative", func(t *testing.T) {
		b := LeftAssoc(" - ", additive)
		assert.Equal(t, additive, b.Order)
		// a - b - c keeps its left operand bare and wraps a right operand
		// of the same tier.
		assert.False(t, NeedsParens(additive, b.Left))
		assert.True(t, NeedsParens(additive, b.Right))
	})

	t.Run("right associative", func(t *testing.T) {
		b := RightAssoc(" ** ", 3)
		assert.True(t, NeedsParens(3, b.Left))
		assert.False(t, NeedsParens(3, b.Right))
	})

	t.Run("non associative", func(t *testing.T) {
		b := NonAssoc(" == ", 10)
		assert.True(t, NeedsParens(10, b.Left))
		assert.True(t, NeedsParens(10, b.Right))
		assert.False(t, NeedsParens(9, b.Right))
	})
}

func TestE(t *testing.T) {
	assert.Equal(t, Expr{Code: "x", Order: OrderAtomic}, E("x", OrderAtomic))
}
