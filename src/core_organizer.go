package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Engine runs one organize pass: scan, fingerprint, deduplicate, resolve
// destinations, place files, report statistics. All run state (the
// processed-fingerprint set and the counters) lives on the engine and is
// reset by Run, so a second Run starts fresh.
type Engine struct {
	cfg       RunConfig
	stats     Stats
	processed ProcessedSet
	progress  ProgressFunc
	logf      LogFunc
}

// NewEngine creates an engine. progress and logf may be nil.
func NewEngine(cfg RunConfig, progress ProgressFunc, logf LogFunc) *Engine {
	e := &Engine{cfg: cfg, progress: progress, logf: logf}
	if e.progress == nil {
		e.progress = func(int, int, string) {}
	}
	if e.logf == nil {
		e.logf = func(string, ...any) {}
	}
	return e
}

// Run executes a full organize pass and returns the final counters. Only
// pre-flight failures (bad source, uncreatable destination) return an
// error; anything that goes wrong with an individual file is counted,
// logged and skipped.
func (e *Engine) Run() (Stats, error) {
	e.stats = Stats{}
	e.processed = make(ProcessedSet)

	if err := e.preflight(); err != nil {
		return e.stats, err
	}

	e.logf("scanning %d source(s)", len(e.cfg.Sources))
	records, err := ScanSources(e.cfg.Sources, func(found, _ int, path string) {
		e.progress(0, 0, fmt.Sprintf("scanning: %s", filepath.Base(path)))
	})
	if err != nil {
		return e.stats, err
	}
	e.logf("found %d media files", len(records))

	resolver := &pathResolver{mode: e.cfg.Mode, template: e.cfg.Template}

	if e.cfg.Mode == ModeByEvent {
		records = e.analyzeEvents(records, resolver)
	}

	total := len(records)
	for i, rec := range records {
		e.stats.Processed++
		if err := e.placeFile(rec, resolver); err != nil {
			e.stats.Errors++
			e.logf("error: %s: %v", rec.Path, err)
		}
		e.progress(i+1, total, filepath.Base(rec.Path))
	}

	if !e.cfg.CopyMode && e.cfg.CleanEmptyDirs && !e.cfg.DryRun {
		for _, src := range e.cfg.Sources {
			if n := cleanEmptyDirs(src); n > 0 {
				e.logf("removed %d empty directories under %s", n, src)
			}
		}
	}

	e.progress(total, total, "done")
	return e.stats, nil
}

// preflight validates the sources and creates the destination root. Failing
// here is fatal for the run; nothing has been touched yet.
func (e *Engine) preflight() error {
	if err := validateSources(e.cfg.Sources); err != nil {
		return err
	}
	if e.cfg.Destination == "" {
		return fmt.Errorf("no destination directory given")
	}
	if !e.cfg.DryRun {
		if err := os.MkdirAll(e.cfg.Destination, 0o755); err != nil {
			return fmt.Errorf("create destination %s: %w", e.cfg.Destination, err)
		}
	}
	return nil
}

// analyzeEvents fingerprints the whole batch up front, time-sorts it,
// clusters it into events and returns the records in cluster order. The
// resolver's label map routes each record to its event folder later.
func (e *Engine) analyzeEvents(records []*FileRecord, resolver *pathResolver) []*FileRecord {
	total := len(records)
	resolved := records[:0]
	for _, rec := range records {
		if _, err := fingerprint(rec); err != nil {
			e.stats.Processed++
			e.stats.Errors++
			e.logf("error: %s: %v", rec.Path, err)
			continue
		}
		resolved = append(resolved, rec)
		e.progress(0, total, fmt.Sprintf("analyzing: %s", filepath.Base(rec.Path)))
	}
	records = resolved

	sortByTaken(records)
	events := clusterEvents(records)
	e.logf("clustered %d files into %d events", len(records), len(events))

	resolver.labels = make(map[*FileRecord]string, len(records))
	ordered := make([]*FileRecord, 0, len(records))
	for _, ev := range events {
		for _, rec := range ev.Records {
			resolver.labels[rec] = ev.Label()
			ordered = append(ordered, rec)
		}
	}
	return ordered
}

// placeFile drives one record through the per-file state machine:
// fingerprint, duplicate check, destination resolution, collision handling,
// then the copy or move itself.
func (e *Engine) placeFile(rec *FileRecord, resolver *pathResolver) error {
	fp, err := fingerprint(rec)
	if err != nil {
		return err
	}

	if e.processed.Seen(fp) {
		return e.handleDuplicate(rec, "")
	}
	e.processed.Add(fp)

	relDir, terr := resolver.DestDir(rec)
	if terr != nil {
		e.logf("notice: %v, using date layout for %s", terr, filepath.Base(rec.Path))
	}
	destDir := filepath.Join(e.cfg.Destination, relDir)

	name := filepath.Base(rec.Path)
	if e.cfg.RenameByDate {
		name = dateName(rec)
	}

	// Deep scan for already-placed duplicates that carry a different name.
	// A scan failure falls through to optimistic placement.
	dupPath, err := findFolderDuplicate(destDir, name, fp)
	if err != nil {
		e.logf("notice: duplicate scan of %s failed: %v", destDir, err)
	} else if dupPath != "" {
		return e.handleDuplicate(rec, dupPath)
	}

	dest := filepath.Join(destDir, name)

	if e.cfg.DryRun {
		e.logf("[dry-run] %s: %s -> %s", e.verb(), rec.Path, dest)
		e.countPlacement()
		return nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", destDir, err)
	}

	final := uniquePath(dest)
	if final != dest {
		e.stats.Renamed++
		e.logf("renamed: %s -> %s", name, filepath.Base(final))
	}

	if e.cfg.CopyMode {
		if err := copyFile(rec.Path, final); err != nil {
			return err
		}
	} else {
		if err := moveFile(rec.Path, final); err != nil {
			return err
		}
	}
	e.countPlacement()
	e.logf("%s: %s -> %s", e.verb(), rec.Path, final)
	return nil
}

// handleDuplicate routes a file whose fingerprint is already claimed. In
// move mode with the delete policy enabled the source is removed; otherwise
// it is left behind and counted as skipped.
func (e *Engine) handleDuplicate(rec *FileRecord, of string) error {
	suffix := ""
	if of != "" {
		suffix = fmt.Sprintf(" (matches %s)", of)
	}

	if !e.cfg.CopyMode && e.cfg.DeleteDuplicates {
		if !e.cfg.DryRun {
			if err := os.Remove(rec.Path); err != nil {
				return fmt.Errorf("delete duplicate: %w", err)
			}
		}
		e.stats.DeletedDuplicate++
		e.logf("deleted duplicate: %s%s", rec.Path, suffix)
		return nil
	}

	e.stats.SkippedDuplicate++
	e.logf("skipping duplicate: %s%s", rec.Path, suffix)
	return nil
}

func (e *Engine) verb() string {
	if e.cfg.CopyMode {
		return "copied"
	}
	return "moved"
}

func (e *Engine) countPlacement() {
	if e.cfg.CopyMode {
		e.stats.Copied++
	} else {
		e.stats.Moved++
	}
}
