package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
)

var (
	photoExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".jpe": true, ".png": true,
		".gif": true, ".bmp": true, ".webp": true,
		".tiff": true, ".tif": true, ".heic": true, ".heif": true,
		// RAW camera formats
		".raw": true, ".cr2": true, ".cr3": true, ".crw": true,
		".nef": true, ".nrw": true, ".arw": true, ".srf": true,
		".sr2": true, ".orf": true, ".rw2": true, ".raf": true,
		".pef": true, ".dng": true, ".rwl": true, ".srw": true,
		".x3f": true, ".3fr": true, ".erf": true, ".kdc": true,
		".mrw": true, ".dcr": true, ".mos": true, ".iiq": true,
	}

	videoExtensions = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true, ".wmv": true,
		".mkv": true, ".m4v": true, ".mpg": true, ".mpeg": true,
		".flv": true, ".3gp": true, ".webm": true, ".mts": true,
		".m2ts": true,
	}
)

// detectMediaType detects the type of media file from extension
func detectMediaType(path string) MediaType {
	ext := strings.ToLower(filepath.Ext(path))

	if photoExtensions[ext] {
		return TypePhoto
	}
	if videoExtensions[ext] {
		return TypeVideo
	}
	return TypeUnknown
}

// validateSources checks every source directory before a run starts. A
// missing or non-directory source is fatal for the whole run.
func validateSources(sources []string) error {
	if len(sources) == 0 {
		return fmt.Errorf("no source directories given")
	}
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("source %s: %w", src, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("source %s: not a directory", src)
		}
	}
	return nil
}

// ScanSources walks every source tree in order and returns one FileRecord
// per recognized media file, in filesystem discovery order. Hidden files and
// directories are skipped; unreadable entries are skipped silently.
func ScanSources(sources []string, progress ProgressFunc) ([]*FileRecord, error) {
	var records []*FileRecord

	for _, src := range sources {
		err := godirwalk.Walk(src, &godirwalk.Options{
			Callback: func(path string, de *godirwalk.Dirent) error {
				name := filepath.Base(path)
				if strings.HasPrefix(name, ".") && path != src {
					if de.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				if de.IsDir() {
					return nil
				}

				mediaType := detectMediaType(path)
				if mediaType == TypeUnknown {
					return nil
				}

				info, err := os.Stat(path)
				if err != nil {
					return nil
				}

				records = append(records, &FileRecord{
					Path: path,
					Size: info.Size(),
					Ext:  strings.ToLower(filepath.Ext(path)),
					Type: mediaType,
				})

				if progress != nil {
					progress(len(records), 0, path)
				}
				return nil
			},
			Unsorted: true,
			ErrorCallback: func(_ string, _ error) godirwalk.ErrorAction {
				return godirwalk.SkipNode
			},
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", src, err)
		}
	}

	return records, nil
}
