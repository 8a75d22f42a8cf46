package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSequence(t *testing.T) {
	offsets, err := ParseSequence("3,7,14")
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 7, 14}, offsets)

	offsets, err = ParseSequence(" 1 , 2 ")
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, offsets)

	_, err = ParseSequence("3,abc,14")
	assert.Error(t, err)

	_, err = ParseSequence("")
	assert.Error(t, err)
}

func TestNewSequenceScheduleValidation(t *testing.T) {
	_, err := NewSequenceSchedule(nil, 9, 17)
	assert.Error(t, err)

	_, err = NewSequenceSchedule([]int{3, -1}, 9, 17)
	assert.Error(t, err)

	_, err = NewSequenceSchedule([]int{3}, -1, 17)
	assert.Error(t, err)

	_, err = NewSequenceSchedule([]int{3}, 9, 24)
	assert.Error(t, err)

	schedule, err := NewSequenceSchedule([]int{3, 7, 14}, 9, 17)
	assert.NoError(t, err)
	assert.Equal(t, 3, schedule.Len())
}

func TestInsideWindow(t *testing.T) {
	schedule, err := NewSequenceSchedule([]int{3}, 9, 17)
	assert.NoError(t, err)

	// Limites inclusivos dos dois lados
	assert.True(t, schedule.InsideWindow(9))
	assert.True(t, schedule.InsideWindow(13))
	assert.True(t, schedule.InsideWindow(17))

	assert.False(t, schedule.InsideWindow(8))
	assert.False(t, schedule.InsideWindow(18))
	assert.False(t, schedule.InsideWindow(0))
	assert.False(t, schedule.InsideWindow(23))
}

func TestNextSequence(t *testing.T) {
	task := EmailTask{}
	assert.Equal(t, 0, task.NextSequence())

	zero := 0
	task.Sequence = &zero
	assert.Equal(t, 1, task.NextSequence())

	two := 2
	task.Sequence = &two
	assert.Equal(t, 3, task.NextSequence())
}

func TestNewEmailTask(t *testing.T) {
	task := NewEmailTask("contact-1")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "contact-1", task.ContactID)
	assert.Nil(t, task.Sequence)
	assert.False(t, task.Origination.IsZero())
}
