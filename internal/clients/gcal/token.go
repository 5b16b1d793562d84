package gcal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HamzterDev/Calender/internal/domain"
)

// TokenPaths are the candidate locations for the authorized-user token
// file, tried in order.
var TokenPaths = []string{
	"token.json",
	"./config/token.json",
	"~/.config/calendar_bot/token.json",
}

// FindTokenFile returns the first candidate path that exists. A "~/"
// prefix expands to the user's home directory. Absence is a startup
// error, not a per-command one.
func FindTokenFile(paths []string) (string, error) {
	for _, p := range paths {
		expanded := expandHome(p)
		if info, err := os.Stat(expanded); err == nil && !info.IsDir() {
			return expanded, nil
		}
	}
	return "", fmt.Errorf("token file (looked in %v): %w", paths, domain.ErrNotFound)
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
