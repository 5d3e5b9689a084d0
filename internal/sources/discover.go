package sources

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/agentstation/tallysheet/pkg/constants"
	"github.com/agentstation/tallysheet/pkg/errors"
)

var fold = cases.Fold()

// Discover returns the most recently modified supported file in dir whose
// name contains token, compared case-insensitively. Ties on modification
// time go to the lexically greatest name so the choice is stable. Files
// named in exclude, and their base_vN.ext archives, are never picked.
func Discover(dir, token string, exclude ...string) (string, error) {
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &errors.MissingInputError{Source: token, Dir: dir, Pattern: pattern(token), Err: err}
		}
		return "", errors.WrapIO("read", dir, err)
	}

	want := fold.String(token)
	var (
		best     string
		bestTime time.Time
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		// Office lock files
		if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
			continue
		}
		if !Supported(name) || !strings.Contains(fold.String(name), want) {
			continue
		}
		if excluded(filepath.Join(dir, name), exclude) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if best == "" || mod.After(bestTime) || (mod.Equal(bestTime) && name > best) {
			best, bestTime = name, mod
		}
	}

	if best == "" {
		return "", errors.NewMissingInputError(token, dir, pattern(token))
	}
	return filepath.Join(dir, best), nil
}

// Supported reports whether a file has an extension the readers handle.
func Supported(name string) bool {
	return slices.Contains(constants.SupportedExtensions, strings.ToLower(filepath.Ext(name)))
}

// excluded reports whether path is one of the excluded files or an archive
// of one, compared case-insensitively on cleaned absolute paths.
func excluded(path string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	path = absFold(path)
	for _, ex := range exclude {
		if strings.TrimSpace(ex) == "" {
			continue
		}
		ex = absFold(ex)
		if path == ex {
			return true
		}
		ext := filepath.Ext(ex)
		prefix := strings.TrimSuffix(ex, ext) + "_v"
		if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, ext) {
			continue
		}
		n := strings.TrimSuffix(strings.TrimPrefix(path, prefix), ext)
		if n != "" && strings.Trim(n, "0123456789") == "" {
			return true
		}
	}
	return false
}

func absFold(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return fold.String(filepath.Clean(path))
}

func pattern(token string) string {
	return "*" + token + "*{" + strings.Join(constants.SupportedExtensions, ",") + "}"
}
