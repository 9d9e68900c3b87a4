package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicFromSeed(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NextByte(), b.NextByte())
	}
}

func TestZeroSeedCoercedToOne(t *testing.T) {
	zero := New(0)
	one := New(1)
	assert.Equal(t, one.NextWord(), zero.NextWord())
}

func TestSequenceIsNotConstant(t *testing.T) {
	s := New(7)
	first := s.NextWord()
	second := s.NextWord()
	assert.NotEqual(t, first, second)
}
