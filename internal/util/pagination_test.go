package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	offset, limit := Calculate(1, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Calculate(3, 25)
	assert.Equal(t, 50, offset)
	assert.Equal(t, 25, limit)

	// Out of range values clamp to defaults.
	offset, limit = Calculate(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Calculate(-5, 1000)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	pg := NewPagination(21, 2, 10)
	assert.EqualValues(t, 21, pg.Total)
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, 10, pg.Limit)
	assert.EqualValues(t, 3, pg.TotalPages)

	pg = NewPagination(0, 1, 10)
	assert.EqualValues(t, 0, pg.TotalPages)
}
