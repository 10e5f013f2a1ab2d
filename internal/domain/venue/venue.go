// Package venue holds the static layout of the venue: bookable tables, time
// slots and operating days. Pure lookup data, no persistence behind it.
package venue

import "time"

type SlotID string

const (
	Slot1315 SlotID = "13-15"
	Slot1517 SlotID = "15-17"
	Slot1719 SlotID = "17-19"
	Slot1921 SlotID = "19-21"
	Slot2123 SlotID = "21-23"
)

type TableID int

type SlotWindow struct {
	StartHour int
	EndHour   int
}

var slotWindows = map[SlotID]SlotWindow{
	Slot1315: {StartHour: 13, EndHour: 15},
	Slot1517: {StartHour: 15, EndHour: 17},
	Slot1719: {StartHour: 17, EndHour: 19},
	Slot1921: {StartHour: 19, EndHour: 21},
	Slot2123: {StartHour: 21, EndHour: 23},
}

var slotOrder = []SlotID{Slot1315, Slot1517, Slot1719, Slot1921, Slot2123}

var tableCapacities = map[TableID]int{
	1: 4,
	2: 4,
	3: 6,
	4: 6,
	5: 8,
}

var tableOrder = []TableID{1, 2, 3, 4, 5}

// Closed Mondays and Tuesdays.
var operatingWeekdays = map[time.Weekday]bool{
	time.Wednesday: true,
	time.Thursday:  true,
	time.Friday:    true,
	time.Saturday:  true,
	time.Sunday:    true,
}

func Slots() []SlotID {
	out := make([]SlotID, len(slotOrder))
	copy(out, slotOrder)
	return out
}

func Tables() []TableID {
	out := make([]TableID, len(tableOrder))
	copy(out, tableOrder)
	return out
}

func IsValidSlot(s SlotID) bool {
	_, ok := slotWindows[s]
	return ok
}

func IsValidTable(t TableID) bool {
	_, ok := tableCapacities[t]
	return ok
}

func WindowOf(s SlotID) (SlotWindow, bool) {
	w, ok := slotWindows[s]
	return w, ok
}

// CapacityOf returns 0 for unknown tables.
func CapacityOf(t TableID) int {
	return tableCapacities[t]
}

func IsOperatingDay(date time.Time) bool {
	return operatingWeekdays[date.Weekday()]
}

func (s SlotID) String() string {
	return string(s)
}
