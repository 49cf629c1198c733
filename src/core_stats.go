package main

import (
	"time"
)

// LibraryStats summarizes a scanned collection without touching it.
type LibraryStats struct {
	Count     int
	Photos    int
	Videos    int
	TotalSize int64
	ByExt     map[string]int
	Oldest    time.Time
	Newest    time.Time
}

// collectLibraryStats resolves the shooting time of every scanned record and
// aggregates the counters the stats report prints.
func collectLibraryStats(records []*FileRecord) LibraryStats {
	stats := LibraryStats{ByExt: make(map[string]int)}

	for _, rec := range records {
		if _, err := fingerprint(rec); err != nil {
			continue
		}

		stats.Count++
		stats.TotalSize += rec.Size
		stats.ByExt[rec.Ext]++

		switch rec.Type {
		case TypePhoto:
			stats.Photos++
		case TypeVideo:
			stats.Videos++
		}

		if stats.Oldest.IsZero() || rec.Taken.Before(stats.Oldest) {
			stats.Oldest = rec.Taken
		}
		if stats.Newest.IsZero() || rec.Taken.After(stats.Newest) {
			stats.Newest = rec.Taken
		}
	}

	return stats
}
