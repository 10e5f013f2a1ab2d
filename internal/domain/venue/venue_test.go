//go:build unit

package venue_test

import (
	"testing"
	"time"

	"table-reserve/internal/domain/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	t.Run("five slots in chronological order", func(t *testing.T) {
		slots := venue.Slots()
		require.Len(t, slots, 5)
		assert.Equal(t, []venue.SlotID{
			venue.Slot1315, venue.Slot1517, venue.Slot1719, venue.Slot1921, venue.Slot2123,
		}, slots)
	})

	t.Run("five tables with fixed capacities", func(t *testing.T) {
		tables := venue.Tables()
		require.Len(t, tables, 5)

		expected := map[venue.TableID]int{1: 4, 2: 4, 3: 6, 4: 6, 5: 8}
		for _, table := range tables {
			assert.Equal(t, expected[table], venue.CapacityOf(table), "table %d", table)
		}
	})

	t.Run("unknown table has zero capacity", func(t *testing.T) {
		assert.Equal(t, 0, venue.CapacityOf(99))
		assert.False(t, venue.IsValidTable(0))
		assert.False(t, venue.IsValidTable(6))
	})

	t.Run("slot validation", func(t *testing.T) {
		assert.True(t, venue.IsValidSlot("15-17"))
		assert.False(t, venue.IsValidSlot("14-16"))
		assert.False(t, venue.IsValidSlot(""))
	})

	t.Run("slot windows", func(t *testing.T) {
		w, ok := venue.WindowOf(venue.Slot2123)
		require.True(t, ok)
		assert.Equal(t, 21, w.StartHour)
		assert.Equal(t, 23, w.EndHour)

		_, ok = venue.WindowOf("09-11")
		assert.False(t, ok)
	})
}

func TestIsOperatingDay(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		open bool
	}{
		{name: "monday closed", date: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), open: false},
		{name: "tuesday closed", date: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), open: false},
		{name: "wednesday open", date: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC), open: true},
		{name: "friday open", date: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), open: true},
		{name: "saturday open", date: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), open: true},
		{name: "sunday open", date: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), open: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.open, venue.IsOperatingDay(tc.date))
		})
	}
}
