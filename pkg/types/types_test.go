package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_ParseAndFormat(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, ts.Minutes())
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("ten")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := MustTimeString("22:30")

	end, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "24:00", end.String())

	_, err = ts.AddMinutes(120)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	assert.True(t, MustTimeString("10:00").IsBefore(MustTimeString("10:30")))
	assert.True(t, MustTimeString("11:00").IsAfter(MustTimeString("10:30")))
	assert.True(t, TimeString{}.IsZero())
	assert.Error(t, TimeString{}.Validate())
}

func TestTimeString_Equality(t *testing.T) {
	a := MustTimeString("10:00")
	b, err := NewTimeStringFromMinutes(600)
	require.NoError(t, err)
	assert.True(t, a == b)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-02-24")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.February, Day: 24}, d)
	assert.Equal(t, time.Tuesday, d.Weekday())
	assert.Equal(t, "2026-03-01", d.AddDays(5).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.Equal(t, 0, d.Compare(NewDate(2026, time.January, 55)))

	loc := time.FixedZone("UTC+5", 5*3600)
	at := d.At(MustTimeString("10:30"), loc)
	assert.Equal(t, 10, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, d, DateOf(at))

	_, err = ParseDate("24/02/2026")
	assert.Error(t, err)
}
