package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleActivity() Activity {
	return Activity{
		ID:        "act-1",
		Name:      "Museum",
		StartDate: "2024-03-01",
		StartTime: "09:00",
		EndDate:   "2024-03-01",
		EndTime:   "10:30",
	}
}

func TestActivityValidate_OK(t *testing.T) {
	require.NoError(t, sampleActivity().Validate())
}

func TestActivityValidate_StartNotBeforeEnd(t *testing.T) {
	a := sampleActivity()
	a.EndTime = "09:00"
	err := a.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "endTime", verr.Field)
}

func TestActivityValidate_BadFields(t *testing.T) {
	cases := map[string]func(*Activity){
		"startDate": func(a *Activity) { a.StartDate = "2024-13-01" },
		"startTime": func(a *Activity) { a.StartTime = "" },
		"endDate":   func(a *Activity) { a.EndDate = "tomorrow" },
		"endTime":   func(a *Activity) { a.EndTime = "10:75" },
	}
	for field, mutate := range cases {
		a := sampleActivity()
		mutate(&a)
		var verr *ValidationError
		require.ErrorAs(t, a.Validate(), &verr, field)
		assert.Equal(t, field, verr.Field)
	}
}

func TestActivityNormalized_DefaultNameAndSentinel(t *testing.T) {
	a := sampleActivity()
	a.Name = "   "
	a.Notes = "  bring tickets \n"
	a.EndTime = "24:00"

	n, err := a.Normalized()
	require.NoError(t, err)
	assert.Equal(t, DefaultActivityName, n.Name)
	assert.Equal(t, "bring tickets", n.Notes)
	assert.Equal(t, "2024-03-02", n.EndDate, "24:00 canonicalizes to the next midnight")
	assert.Equal(t, "00:00", n.EndTime)
}

func TestActivityShiftTo_PreservesDuration(t *testing.T) {
	moved, err := sampleActivity().ShiftTo("2024-03-02", 14*60)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", moved.StartDate)
	assert.Equal(t, "14:00", moved.StartTime)
	assert.Equal(t, "2024-03-02", moved.EndDate)
	assert.Equal(t, "15:30", moved.EndTime)
	assert.Equal(t, "act-1", moved.ID)
}

func TestActivityShiftTo_CrossesMidnight(t *testing.T) {
	moved, err := sampleActivity().ShiftTo("2024-03-01", 23*60)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", moved.EndDate)
	assert.Equal(t, "00:30", moved.EndTime)
}

func TestActivityDuplicate_PlacedAfter(t *testing.T) {
	dup, err := sampleActivity().Duplicate()
	require.NoError(t, err)
	assert.Empty(t, dup.ID)
	assert.Equal(t, "Museum (copy)", dup.Name)
	assert.Equal(t, "10:30", dup.StartTime)
	assert.Equal(t, "12:00", dup.EndTime)
	assert.Equal(t, 90*time.Minute, dup.Duration())
}

func TestActivityTouchesDate(t *testing.T) {
	a := Activity{StartDate: "2024-01-01", StartTime: "22:00", EndDate: "2024-01-02", EndTime: "00:00"}
	assert.True(t, a.TouchesDate("2024-01-01"))
	assert.False(t, a.TouchesDate("2024-01-02"), "ending exactly at midnight does not touch the next day")
	assert.False(t, a.TouchesDate("2023-12-31"))
}

func TestCategoryValidate(t *testing.T) {
	assert.NoError(t, Category{Name: "Meals", Color: "#dc3545"}.Validate())
	assert.Error(t, Category{Name: "", Color: "#dc3545"}.Validate())
	assert.Error(t, Category{Name: "Meals", Color: "red"}.Validate())
}
