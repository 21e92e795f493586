package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameDB(t *testing.T) {
	t.Run("stable within a pass", func(t *testing.T) {
		n := NewNameDB(nil, "")
		first := n.GetName("count", NameVariable)
		assert.Equal(t, "count", first)
		assert.Equal(t, first, n.GetName("count", NameVariable))
		assert.Equal(t, first, n.GetName("COUNT", NameVariable), "names compare case-insensitively")
	})

	t.Run("reserved words are avoided", func(t *testing.T) {
		n := NewNameDB([]string{"for", "end"}, "")
		assert.Equal(t, "for2", n.GetName("for", NameVariable))
		assert.Equal(t, "end2", n.GetName("end", NameProcedure))
	})

	t.Run("roles never collide", func(t *testing.T) {
		n := NewNameDB(nil, "")
		v := n.GetName("total", NameVariable)
		p := n.GetName("total", NameProcedure)
		assert.Equal(t, "total", v)
		assert.Equal(t, "total2", p)
	})

	t.Run("distinct names differ on every call", func(t *testing.T) {
		n := NewNameDB(nil, "")
		a := n.GetDistinctName("math_isPrime", NameProcedure)
		b := n.GetDistinctName("math_isPrime", NameProcedure)
		assert.Equal(t, "math_isPrime", a)
		assert.Equal(t, "math_isPrime2", b)
	})

	t.Run("variable prefix", func(t *testing.T) {
		n := NewNameDB([]string{"this"}, "$")
		assert.Equal(t, "$x", n.GetName("x", NameVariable))
		assert.Equal(t, "$x", n.GetName("x", NameVariable))
		assert.Equal(t, "$dev", n.GetName("dev", NameDeveloperVariable))
		assert.Equal(t, "helper", n.GetName("helper", NameProcedure))
		assert.Equal(t, "$this2", n.GetName("this", NameVariable))
	})

	t.Run("reset", func(t *testing.T) {
		n := NewNameDB(nil, "")
		n.GetName("a", NameVariable)
		assert.Equal(t, "a2", n.GetDistinctName("a", NameVariable))
		n.Reset()
		assert.Equal(t, "a", n.GetDistinctName("a", NameVariable))
	})
}

func TestSafeName(t *testing.T) {
	n := NewNameDB(nil, "")
	tests := []struct {
		in, want string
	}{
		{"", "unnamed"},
		{"item", "item"},
		{"my item", "my_item"},
		{"a-b.c", "a_b_c"},
		{"1st", "my_1st"},
		{"é", "_C3_A9"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, n.SafeName(tt.in))
		})
	}
}

func TestNameStyle(t *testing.T) {
	assert.True(t, StyleSnake.Valid())
	assert.False(t, NameStyle("kebab").Valid())

	n := NewNameDB(nil, "")
	n.SetStyle(StyleSnake)
	assert.Equal(t, "my_var", n.GetName("myVar", NameVariable))

	n = NewNameDB(nil, "")
	n.SetStyle(StyleCamel)
	assert.Equal(t, "myVar", n.GetName("my_var", NameVariable))

	n.SetStyle("kebab")
	assert.Equal(t, "otherVar", n.GetName("other_var", NameVariable), "invalid styles are ignored")
}
