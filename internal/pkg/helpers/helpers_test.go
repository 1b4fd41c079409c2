package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Equal(t, 8.17, Round2(24.5/3))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 12.0, Round2(12))
}

func TestRound2_HalfUpOnDecimalForm(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 2.68, Round2(2.675))
	assert.Equal(t, 8.35, Round2(8.345))
	assert.Equal(t, 66.67, Round2(66.665))
	assert.Equal(t, 1.0, Round2(1.0049))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(4, 4))
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(3, 0))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 8.17, Average(8.0+9.0+7.5, 3))
	assert.Equal(t, 0.0, Average(12, 0))
}
