package main

import (
	"sort"
	"time"
)

// eventGapSeconds is the maximum capture-time gap between two consecutive
// files that still belong to the same event. A gap strictly greater than
// this starts a new event; a gap of exactly two hours does not.
const eventGapSeconds = 7200

// Event is a maximal contiguous run of time-sorted records whose adjacent
// capture-time gaps never exceed eventGapSeconds. Events partition the
// sorted input: every record belongs to exactly one event and events are
// ordered by start time.
type Event struct {
	Start   time.Time
	Records []*FileRecord
}

// Label derives the event's folder name from its earliest member.
func (e Event) Label() string {
	return e.Start.Format("2006-01-02_1504")
}

// sortByTaken orders records ascending by resolved shooting time, as
// clusterEvents requires.
func sortByTaken(records []*FileRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Taken.Before(records[j].Taken)
	})
}

// clusterEvents partitions time-sorted records into events with a single
// pass. The gap is measured against the previous record encountered, not
// the event's first member. Empty input yields no events.
func clusterEvents(sorted []*FileRecord) []Event {
	var events []Event
	var current []*FileRecord

	for _, rec := range sorted {
		if len(current) > 0 {
			prev := current[len(current)-1]
			if rec.Taken.Sub(prev.Taken) > eventGapSeconds*time.Second {
				events = append(events, Event{Start: current[0].Taken, Records: current})
				current = nil
			}
		}
		current = append(current, rec)
	}
	if len(current) > 0 {
		events = append(events, Event{Start: current[0].Taken, Records: current})
	}
	return events
}
