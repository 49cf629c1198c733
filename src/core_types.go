package main

import (
	"time"
)

// MediaType represents the type of media file
type MediaType int

const (
	TypePhoto MediaType = iota
	TypeVideo
	TypeUnknown
)

func (mt MediaType) String() string {
	return [...]string{"Photo", "Video", "Unknown"}[mt]
}

// OrganizeMode selects how destination directories are derived.
type OrganizeMode int

const (
	ModeByDate OrganizeMode = iota
	ModeByEvent
	ModeByTemplate
)

func (m OrganizeMode) String() string {
	return [...]string{"date", "event", "template"}[m]
}

// FileRecord represents one candidate media file during a single run.
// Path, Size and Ext are fixed at scan time; Taken is resolved once during
// fingerprinting and never mutated afterwards.
type FileRecord struct {
	Path  string
	Size  int64
	Ext   string // lower-cased, with leading dot
	Type  MediaType
	Taken time.Time
}

// Fingerprint is the deduplication identity of a file: size plus shooting
// time at one-second resolution. Two files with equal fingerprints are
// duplicates of each other regardless of name or location.
type Fingerprint struct {
	Size  int64
	Taken int64 // unix seconds
}

// Stats holds the run-scoped counters reported in the final summary.
type Stats struct {
	Processed        int
	SkippedDuplicate int
	DeletedDuplicate int
	Moved            int
	Copied           int
	Renamed          int
	Errors           int
}

// RunConfig holds everything one organize run needs.
type RunConfig struct {
	Sources          []string
	Destination      string
	Mode             OrganizeMode
	Template         string // ModeByTemplate only
	CopyMode         bool   // copy instead of move
	RenameByDate     bool   // rename placed files to YYYYMMDD_HHMMSS.ext
	DeleteDuplicates bool   // move mode only: remove duplicate sources
	CleanEmptyDirs   bool   // move mode only: prune emptied source dirs
	DryRun           bool
}

// ProgressFunc receives per-file progress. Implementations must be safe to
// call from the worker goroutine and must not block it.
type ProgressFunc func(current, total int, status string)

// LogFunc receives human-readable action lines from the engine.
type LogFunc func(format string, args ...any)
