package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile represents the YAML configuration
type ConfigFile struct {
	Sources          []string `yaml:"sources"`
	Destination      string   `yaml:"destination"`
	Mode             string   `yaml:"mode"` // date, event or template
	Template         string   `yaml:"template,omitempty"`
	CopyMode         bool     `yaml:"copy_mode"`
	RenameByDate     bool     `yaml:"rename_by_date"`
	DeleteDuplicates bool     `yaml:"delete_duplicates"`
	CleanEmptyDirs   bool     `yaml:"clean_empty_dirs"`
}

// getConfigPath returns the path to the config file
func getConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".photohdler.yaml"
	}
	return filepath.Join(home, ".photohdler.yaml")
}

// configExists checks if config file exists
func configExists() bool {
	_, err := os.Stat(getConfigPath())
	return err == nil
}

// loadConfig loads configuration from YAML file
func loadConfig() (*ConfigFile, error) {
	data, err := os.ReadFile(getConfigPath())
	if err != nil {
		return nil, err
	}

	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// saveConfig saves configuration to YAML file
func saveConfig(cfg *ConfigFile) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(getConfigPath(), data, 0o644)
}

// parseMode maps a config/flag mode string onto an OrganizeMode.
func parseMode(s string) (OrganizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date":
		return ModeByDate, nil
	case "event":
		return ModeByEvent, nil
	case "template":
		return ModeByTemplate, nil
	}
	return ModeByDate, fmt.Errorf("unknown mode %q (want date, event or template)", s)
}

// runSetupWizard runs interactive setup and creates config file
func runSetupWizard() (*ConfigFile, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("photohdler - First Time Setup")
	fmt.Println("=============================")
	fmt.Println()
	fmt.Println("This configuration will be saved to:", getConfigPath())
	fmt.Println()

	cfg := &ConfigFile{}

	fmt.Println("1. Which directories hold the photos and videos to organize?")
	fmt.Print("   Sources (comma separated): ")
	sources, _ := reader.ReadString('\n')
	for _, s := range strings.Split(sources, ",") {
		if s = strings.TrimSpace(s); s != "" {
			cfg.Sources = append(cfg.Sources, s)
		}
	}

	fmt.Println()
	fmt.Println("2. Where should the organized library be created?")
	fmt.Print("   Destination: ")
	dest, _ := reader.ReadString('\n')
	cfg.Destination = strings.TrimSpace(dest)

	fmt.Println()
	fmt.Println("3. How should destination folders be laid out?")
	fmt.Println("   date     YYYY/MM/DD by shooting time")
	fmt.Println("   event    one folder per time-clustered event")
	fmt.Println("   template custom layout, e.g. {year}/{camera}/{month}")
	fmt.Print("   Mode [date]: ")
	mode, _ := reader.ReadString('\n')
	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = "date"
	}
	if _, err := parseMode(mode); err != nil {
		return nil, err
	}
	cfg.Mode = mode

	if cfg.Mode == "template" {
		fmt.Print("   Template: ")
		tpl, _ := reader.ReadString('\n')
		cfg.Template = strings.TrimSpace(tpl)
	}

	fmt.Println()
	fmt.Print("4. Copy instead of move (keep originals)? [y/N]: ")
	copyAns, _ := reader.ReadString('\n')
	cfg.CopyMode = isYes(copyAns)

	fmt.Println()
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Sources:     %s\n", strings.Join(cfg.Sources, ", "))
	fmt.Printf("  Destination: %s\n", cfg.Destination)
	fmt.Printf("  Mode:        %s\n", cfg.Mode)
	if cfg.Template != "" {
		fmt.Printf("  Template:    %s\n", cfg.Template)
	}
	fmt.Printf("  Copy mode:   %v\n", cfg.CopyMode)
	fmt.Println()

	fmt.Print("Save this configuration? [Y/n]: ")
	confirm, _ := reader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))
	if confirm == "n" || confirm == "no" {
		fmt.Println("\nSetup cancelled.")
		os.Exit(0)
	}

	if err := saveConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved to:", getConfigPath())
	fmt.Println("Edit the file manually or run with --reconfigure to change settings.")
	fmt.Println()

	return cfg, nil
}

func isYes(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "y" || s == "yes"
}
