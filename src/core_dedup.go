package main

import (
	"os"
	"path/filepath"
	"strings"
)

// fingerprint resolves and memoizes the shooting time for a record and
// returns its deduplication identity. Computed exactly once per file; a file
// that vanished since the scan fails here instead of getting a made-up time.
func fingerprint(rec *FileRecord) (Fingerprint, error) {
	if rec.Taken.IsZero() {
		tm, err := resolveShootingTime(rec)
		if err != nil {
			return Fingerprint{}, err
		}
		rec.Taken = tm
	}
	return Fingerprint{Size: rec.Size, Taken: rec.Taken.Unix()}, nil
}

// ProcessedSet tracks fingerprints already claimed by a kept file within one
// run. It only grows and is discarded when the run ends.
type ProcessedSet map[Fingerprint]struct{}

func (s ProcessedSet) Seen(fp Fingerprint) bool {
	_, ok := s[fp]
	return ok
}

func (s ProcessedSet) Add(fp Fingerprint) {
	s[fp] = struct{}{}
}

// baseStem strips a single trailing _<digits> collision suffix from a
// filename stem, so photo_3 and photo compare as the same base.
func baseStem(stem string) string {
	i := strings.LastIndex(stem, "_")
	if i < 0 || i == len(stem)-1 {
		return stem
	}
	for _, r := range stem[i+1:] {
		if r < '0' || r > '9' {
			return stem
		}
	}
	return stem[:i]
}

// findFolderDuplicate scans the destination folder for an existing file that
// is a true duplicate of the incoming fingerprint: same extension, a stem
// equal to the proposed base stem or base_<digits>, and a matching
// (size, shooting time) identity. It catches duplicates that were renamed by
// earlier collision handling and would slip past the cheap existence check.
// Returns the path of the matching file, or "" if none.
func findFolderDuplicate(dir, proposedName string, fp Fingerprint) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(proposedName))
	base := baseStem(strings.TrimSuffix(proposedName, filepath.Ext(proposedName)))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.ToLower(filepath.Ext(name)) != ext {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem != base && baseStem(stem) != base {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.Size() != fp.Size {
			continue
		}
		existing := &FileRecord{
			Path: path,
			Size: info.Size(),
			Ext:  strings.ToLower(filepath.Ext(path)),
			Type: detectMediaType(path),
		}
		if efp, err := fingerprint(existing); err == nil && efp.Taken == fp.Taken {
			return path, nil
		}
	}
	return "", nil
}
