package randstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorRange(t *testing.T) {
	g := NewDefault(1)
	for i := 0; i < 10000; i++ {
		s := g.String()
		if len(s) < DefaultMin || len(s) >= DefaultMax {
			t.Fatalf("len(%q) = %d, want in [%d, %d)", s, len(s), DefaultMin, DefaultMax)
		}
		for j := 0; j < len(s); j++ {
			if s[j] < ' ' || s[j] > '~' {
				t.Fatalf("byte %d of sample %d = %#x, not printable ASCII", j, i, s[j])
			}
		}
	}
	assert.Equal(t, uint64(10000), g.Generated())
}

func TestGeneratorCoversLengthBounds(t *testing.T) {
	g, err := New(1, 3, 7)
	require.NoError(t, err)

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		seen[len(g.String())] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, seen)
}

func TestGeneratorInvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"negative min", -1, 10},
		{"empty range", 5, 5},
		{"inverted", 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.min, tt.max, 1)
			assert.Error(t, err)
		})
	}
}

func TestGeneratorFill(t *testing.T) {
	g := NewDefault(42)
	pool := g.Fill(100)
	assert.Len(t, pool, 100)
	assert.Equal(t, uint64(100), g.Generated())
}

func TestGeneratorSeedDeterministic(t *testing.T) {
	a, b := NewDefault(3), NewDefault(3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.String(), b.String())
	}
}
