package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func partialBlock(start, end string) *AvailabilityException {
	return &AvailabilityException{
		DoctorID:  uuid.New(),
		Date:      time.Now(),
		Type:      ExceptionPartialDayBlock,
		StartTime: &start,
		EndTime:   &end,
	}
}

func TestBlocksInterval(t *testing.T) {
	ex := partialBlock("10:00", "12:00")

	// Fully inside the block.
	assert.True(t, ex.BlocksInterval("10:30", "11:00"))
	// Straddling the block edges.
	assert.True(t, ex.BlocksInterval("09:30", "10:30"))
	assert.True(t, ex.BlocksInterval("11:30", "12:30"))
	// Containing the whole block.
	assert.True(t, ex.BlocksInterval("09:00", "13:00"))

	// Touching boundaries do not overlap.
	assert.False(t, ex.BlocksInterval("09:30", "10:00"))
	assert.False(t, ex.BlocksInterval("12:00", "12:30"))
	// Disjoint.
	assert.False(t, ex.BlocksInterval("08:00", "09:00"))
}

func TestFullDayDoesNotBlockIntervals(t *testing.T) {
	ex := &AvailabilityException{
		DoctorID: uuid.New(),
		Date:     time.Now(),
		Type:     ExceptionFullDayBlock,
	}

	// Full-day exceptions remove the whole date elsewhere; interval
	// matching only applies to partial blocks.
	assert.True(t, ex.IsFullDay())
	assert.False(t, ex.BlocksInterval("10:00", "10:30"))
}
