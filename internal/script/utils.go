package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GeneratePath creates a timestamped script filename
func GeneratePath() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("scripts", fmt.Sprintf("script_%s.yaml", timestamp))
}

// FindLatest finds the most recent script file in the scripts directory
func FindLatest() (string, error) {
	scriptsDir := "scripts"

	entries, err := os.ReadDir(scriptsDir)
	if err != nil {
		return "", fmt.Errorf("failed to read scripts directory: %w", err)
	}

	var scripts []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			scripts = append(scripts, filepath.Join(scriptsDir, entry.Name()))
		}
	}

	if len(scripts) == 0 {
		return "", fmt.Errorf("no script files found in %s", scriptsDir)
	}

	// Sort by modification time (newest first)
	sort.Slice(scripts, func(i, j int) bool {
		infoI, _ := os.Stat(scripts[i])
		infoJ, _ := os.Stat(scripts[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return scripts[0], nil
}
