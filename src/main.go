package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)

	var (
		srcFlag      = flag.String("src", "", "Comma-separated source directories (overrides config)")
		destFlag     = flag.String("dest", "", "Destination root for the organized library (overrides config)")
		modeFlag     = flag.String("mode", "", "Organization mode: date, event or template (overrides config)")
		templateFlag = flag.String("template", "", "Path template for template mode, e.g. {year}/{camera}/{month}")
		copyFlag     = flag.Bool("copy", false, "Copy files instead of moving them")
		renameFlag   = flag.Bool("rename", false, "Rename placed files to YYYYMMDD_HHMMSS.ext")
		deleteDups   = flag.Bool("delete-duplicates", false, "Move mode: delete duplicate source files instead of skipping")
		cleanEmpty   = flag.Bool("clean-empty", false, "Move mode: remove emptied source directories after the run")
		dryRun       = flag.Bool("dry-run", false, "Preview every action without touching the disk")
		statsFlag    = flag.Bool("stats", false, "Report library statistics and exit")
		listFlag     = flag.Bool("list", false, "List the scanned media files and exit")
		sortFlag     = flag.String("sort", "name", "Sort order for -list: name, size or date")
		reverseFlag  = flag.Bool("reverse", false, "Reverse the -list sort order")
		searchFlag   = flag.String("search", "", "Print files whose name contains the given text and exit")
		extFlag      = flag.String("ext", "", "Comma-separated extension filter for -search, e.g. jpg,cr2")
		infoFlag     = flag.String("info", "", "Report details of a single media file and exit")
		watchFlag    = flag.Bool("watch", false, "Keep running and re-organize when sources change")
		noTUI        = flag.Bool("no-tui", false, "Disable TUI, use plain log output")
		reconfigure  = flag.Bool("reconfigure", false, "Re-run the setup wizard")
	)
	flag.Parse()

	if *infoFlag != "" {
		if err := runInfo(*infoFlag); err != nil {
			klog.Exitf("info: %v", err)
		}
		return
	}

	cfg, err := resolveConfig(*srcFlag, *destFlag, *modeFlag, *templateFlag, *reconfigure)
	if err != nil {
		klog.Exitf("configuration: %v", err)
	}
	if *copyFlag {
		cfg.CopyMode = true
	}
	if *renameFlag {
		cfg.RenameByDate = true
	}
	if *deleteDups {
		cfg.DeleteDuplicates = true
	}
	if *cleanEmpty {
		cfg.CleanEmptyDirs = true
	}
	cfg.DryRun = *dryRun

	if *statsFlag {
		if err := runStats(cfg); err != nil {
			klog.Exitf("stats: %v", err)
		}
		return
	}

	if *listFlag {
		if err := runList(cfg, *sortFlag, *reverseFlag); err != nil {
			klog.Exitf("list: %v", err)
		}
		return
	}

	if *searchFlag != "" {
		if err := runSearch(cfg, *searchFlag, *extFlag); err != nil {
			klog.Exitf("search: %v", err)
		}
		return
	}

	if *watchFlag {
		if err := runWatch(cfg); err != nil {
			klog.Exitf("watch: %v", err)
		}
		return
	}

	if *noTUI {
		runCLI(cfg)
	} else {
		runTUI(cfg)
	}
}

// resolveConfig merges the saved YAML config with command-line overrides,
// running the setup wizard when neither exists.
func resolveConfig(src, dest, mode, template string, reconfigure bool) (RunConfig, error) {
	var file *ConfigFile

	switch {
	case reconfigure:
		f, err := runSetupWizard()
		if err != nil {
			return RunConfig{}, err
		}
		file = f
	case configExists():
		f, err := loadConfig()
		if err != nil {
			return RunConfig{}, fmt.Errorf("load %s: %w", getConfigPath(), err)
		}
		file = f
	case src == "" && dest == "":
		f, err := runSetupWizard()
		if err != nil {
			return RunConfig{}, err
		}
		file = f
	default:
		file = &ConfigFile{}
	}

	cfg := RunConfig{
		Sources:          file.Sources,
		Destination:      file.Destination,
		Template:         file.Template,
		CopyMode:         file.CopyMode,
		RenameByDate:     file.RenameByDate,
		DeleteDuplicates: file.DeleteDuplicates,
		CleanEmptyDirs:   file.CleanEmptyDirs,
	}

	modeStr := file.Mode
	if mode != "" {
		modeStr = mode
	}
	m, err := parseMode(modeStr)
	if err != nil {
		return RunConfig{}, err
	}
	cfg.Mode = m

	if src != "" {
		cfg.Sources = nil
		for _, s := range strings.Split(src, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Sources = append(cfg.Sources, s)
			}
		}
	}
	if dest != "" {
		cfg.Destination = dest
	}
	if template != "" {
		cfg.Template = template
	}

	return cfg, nil
}

func runCLI(cfg RunConfig) {
	klog.Infof("photohdler: %s -> %s (mode=%s copy=%v dry-run=%v)",
		strings.Join(cfg.Sources, ", "), cfg.Destination, cfg.Mode, cfg.CopyMode, cfg.DryRun)

	progress := func(current, total int, status string) {
		if total == 0 {
			return
		}
		percent := float64(current) * 100 / float64(total)
		fmt.Printf("\r  [%-50s] %3.0f%% (%d/%d) %s",
			progressBar(percent), percent, current, total, truncatePath(status, 40))
		if current == total {
			fmt.Printf("\r%s\r", strings.Repeat(" ", 130))
		}
	}

	engine := NewEngine(cfg, progress, klog.Infof)
	stats, err := engine.Run()
	if err != nil {
		klog.Exitf("run failed: %v", err)
	}
	printSummary(cfg, stats)
}

func printSummary(cfg RunConfig, stats Stats) {
	fmt.Println("Summary:")
	fmt.Printf("  Processed:          %d\n", stats.Processed)
	if cfg.CopyMode {
		fmt.Printf("  Copied:             %d\n", stats.Copied)
	} else {
		fmt.Printf("  Moved:              %d\n", stats.Moved)
	}
	fmt.Printf("  Duplicates skipped: %d\n", stats.SkippedDuplicate)
	if stats.DeletedDuplicate > 0 {
		fmt.Printf("  Duplicates deleted: %d\n", stats.DeletedDuplicate)
	}
	fmt.Printf("  Renamed:            %d\n", stats.Renamed)
	fmt.Printf("  Errors:             %d\n", stats.Errors)
}

// runStats scans the sources and reports collection statistics without
// moving anything.
func runStats(cfg RunConfig) error {
	if err := validateSources(cfg.Sources); err != nil {
		return err
	}

	records, err := ScanSources(cfg.Sources, nil)
	if err != nil {
		return err
	}
	stats := collectLibraryStats(records)

	fmt.Printf("Files:      %d (%d photos, %d videos)\n", stats.Count, stats.Photos, stats.Videos)
	fmt.Printf("Total size: %s\n", humanize.Bytes(uint64(stats.TotalSize)))
	if !stats.Oldest.IsZero() {
		fmt.Printf("Oldest:     %s\n", stats.Oldest.Format("2006-01-02 15:04:05"))
		fmt.Printf("Newest:     %s\n", stats.Newest.Format("2006-01-02 15:04:05"))
	}

	exts := make([]string, 0, len(stats.ByExt))
	for ext := range stats.ByExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		fmt.Printf("  %-8s %d\n", ext, stats.ByExt[ext])
	}
	return nil
}

// watchDebounce is how long the sources must stay quiet before a pass runs.
const watchDebounce = 2 * time.Second

// runList prints the scanned library as a table, sorted by name, size or
// shooting date.
func runList(cfg RunConfig, sortKey string, reverse bool) error {
	if err := validateSources(cfg.Sources); err != nil {
		return err
	}
	records, err := ScanSources(cfg.Sources, nil)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No media files found.")
		return nil
	}
	sortRecords(records, sortKey, reverse)

	fmt.Printf("%-40s %10s %8s  %s\n", "Name", "Size", "Type", "Taken")
	for _, rec := range records {
		taken := "unknown"
		if _, err := fingerprint(rec); err == nil {
			taken = rec.Taken.Format("2006-01-02 15:04")
		}
		fmt.Printf("%-40s %10s %8s  %s\n",
			truncatePath(filepath.Base(rec.Path), 40),
			humanize.Bytes(uint64(rec.Size)), rec.Type, taken)
	}
	fmt.Printf("\n%d files\n", len(records))
	return nil
}

// runSearch prints the paths of files whose name contains the query,
// optionally restricted to a comma-separated extension list.
func runSearch(cfg RunConfig, query, extList string) error {
	if err := validateSources(cfg.Sources); err != nil {
		return err
	}
	records, err := ScanSources(cfg.Sources, nil)
	if err != nil {
		return err
	}

	var exts []string
	if extList != "" {
		exts = strings.Split(extList, ",")
	}
	matches := filterRecords(records, query, exts)
	if len(matches) == 0 {
		fmt.Println("No matching files found.")
		return nil
	}
	for _, rec := range matches {
		fmt.Println(rec.Path)
	}
	fmt.Printf("\n%d matching files\n", len(matches))
	return nil
}

// runInfo reports everything known about a single media file.
func runInfo(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mediaType := detectMediaType(path)
	if mediaType == TypeUnknown {
		return fmt.Errorf("%s: not a recognized media file", path)
	}

	fmt.Printf("Path:     %s\n", path)
	fmt.Printf("Type:     %s\n", mediaType)
	fmt.Printf("Size:     %s\n", humanize.Bytes(uint64(info.Size())))
	fmt.Printf("Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))
	if mediaType == TypePhoto {
		if tm, ok := readCaptureTime(path); ok {
			fmt.Printf("Taken:    %s\n", tm.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Println("Taken:    no embedded timestamp")
		}
	}
	fmt.Printf("Camera:   %s\n", readDeviceModel(path))
	return nil
}

// runWatch performs one organize pass, then watches the source trees and
// re-runs whenever new files settle. Each pass is a fresh run; the deep
// duplicate scan keeps repeat passes idempotent against the destination.
func runWatch(cfg RunConfig) error {
	runCLI(cfg)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	for _, src := range cfg.Sources {
		if err := watchTree(w, src); err != nil {
			return err
		}
	}
	klog.Infof("watching %d source(s) ...", len(cfg.Sources))

	return watchLoop(w.Events, w.Errors, watchDebounce, func(dir string) error {
		return w.Add(dir)
	}, func() {
		runCLI(cfg)
	})
}

// watchTree registers a source root and every directory already beneath it.
func watchTree(w *fsnotify.Watcher, src string) error {
	if err := w.Add(src); err != nil {
		return fmt.Errorf("watch %s: %w", src, err)
	}
	filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err == nil && d.IsDir() && path != src {
			w.Add(path)
		}
		return nil
	})
	return nil
}

// watchLoop debounces filesystem events and runs organize passes one at a
// time, on the loop goroutine itself. A pass in flight is never overlapped:
// events arriving while it runs queue up on the watcher channel and arm the
// next pass after it returns. Directories created under a source are added
// to the watch so files dropped into fresh subtrees still trigger passes.
func watchLoop(events <-chan fsnotify.Event, errs <-chan error, debounce time.Duration, addDir func(string) error, run func()) error {
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addDir(event.Name); err != nil {
						klog.Warningf("watch %s: %v", event.Name, err)
					}
				}
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				pending = time.After(debounce)
			}
		case <-pending:
			pending = nil
			run()
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			klog.Warningf("watch error: %v", err)
		}
	}
}

func runTUI(cfg RunConfig) {
	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// progressBar creates a text progress bar
func progressBar(percent float64) string {
	const width = 50
	filled := int(percent / 2)
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "="
		} else if i == filled {
			bar += ">"
		} else {
			bar += " "
		}
	}
	return bar
}

// truncatePath shortens a file path for display
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen > 10 {
		return "..." + path[len(path)-maxLen+3:]
	}
	return path[:maxLen]
}
