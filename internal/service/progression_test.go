package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredExpIsMonotonic(t *testing.T) {
	for level := 0; level < 100; level++ {
		assert.Less(t, RequiredExp(level), RequiredExp(level+1))
	}
}

func TestApplyGainKeepsExpBelowThreshold(t *testing.T) {
	now := time.Now()

	for level := 0; level < 20; level++ {
		for _, gain := range []int{0, 1, 149, 150, 151, 500, 5000} {
			exp, newLevel, _ := ApplyGain("s1", 0, level, gain, now)

			assert.GreaterOrEqual(t, exp, 0)
			assert.Less(t, exp, RequiredExp(newLevel))
			assert.GreaterOrEqual(t, newLevel, level)
		}
	}
}

func TestApplyGainMultiLevelOverflow(t *testing.T) {
	now := time.Now()

	// 150 + 160 + 170 = 480, remainder 20.
	exp, level, events := ApplyGain("s1", 0, 0, 500, now)

	assert.Equal(t, 3, level)
	assert.Equal(t, 20, exp)

	require.Len(t, events, 3)
	for i, ev := range events {
		assert.Equal(t, i, ev.FromLevel)
		assert.Equal(t, i+1, ev.ToLevel)
		assert.Equal(t, "s1", ev.StudentID)
	}
}

func TestApplyGainZeroAmountIsNoop(t *testing.T) {
	exp, level, events := ApplyGain("s1", 42, 3, 0, time.Now())

	assert.Equal(t, 42, exp)
	assert.Equal(t, 3, level)
	assert.Empty(t, events)
}

func TestApplyGainExactThreshold(t *testing.T) {
	exp, level, events := ApplyGain("s1", 0, 0, RequiredExp(0), time.Now())

	assert.Equal(t, 0, exp)
	assert.Equal(t, 1, level)
	assert.Len(t, events, 1)
}
