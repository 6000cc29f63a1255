// Package crawler holds the toolkit of instrument crawlers: change detection
// over data directories, PID locking so only one crawler instance runs per
// instrument, and an fsnotify watch mode.
package crawler

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// fileState is the persisted fingerprint of one seen file. The mtime is
// checked first; the MD5 catches touched-but-unchanged files.
type fileState struct {
	MTime time.Time `json:"mtime"`
	MD5   string    `json:"md5"`
}

// Scanner finds new and changed files under instrument data directories,
// keeping its state in a JSON file between runs.
type Scanner struct {
	logger logger.Logger
}

// NewScanner creates a Scanner.
func NewScanner(logger logger.Logger) (*Scanner, error) {
	return &Scanner{logger: logger}, nil
}

// FindChangedFiles walks root and returns the files matching pattern (a
// regexp applied to the base name; empty matches everything) that are new or
// changed since the previous run recorded in stateFile. The state file is
// updated atomically on success.
func (s *Scanner) FindChangedFiles(root, stateFile, pattern string) ([]string, error) {
	var matcher *regexp.Regexp
	if pattern != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid file pattern: %w", err)
		}
		matcher = compiled
	}

	state, err := loadState(stateFile)
	if err != nil {
		return nil, err
	}

	var changed []string
	seen := make(map[string]struct{})

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if matcher != nil && !matcher.MatchString(entry.Name()) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		seen[path] = struct{}{}

		previous, known := state[path]
		if known && previous.MTime.Equal(info.ModTime()) {
			return nil
		}

		checksum, err := md5OfFile(path)
		if err != nil {
			return err
		}
		if known && previous.MD5 == checksum {
			// Touched but identical. Remember the new mtime so the next run
			// skips the checksum.
			state[path] = fileState{MTime: info.ModTime(), MD5: checksum}
			return nil
		}

		state[path] = fileState{MTime: info.ModTime(), MD5: checksum}
		changed = append(changed, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	// Forget files that disappeared so a re-appearing file counts as new.
	for path := range state {
		if _, ok := seen[path]; !ok {
			delete(state, path)
		}
	}

	if err := saveState(stateFile, state); err != nil {
		return nil, err
	}

	sort.Strings(changed)
	s.logger.Info(fmt.Sprintf("scanned %s: %d changed files", root, len(changed)))
	return changed, nil
}

// DeferFiles drops the given paths from the state file so the next scan
// reports them again. Crawlers call it for files whose import failed.
func (s *Scanner) DeferFiles(stateFile string, paths []string) error {
	state, err := loadState(stateFile)
	if err != nil {
		return err
	}
	for _, path := range paths {
		delete(state, path)
	}
	if err := saveState(stateFile, state); err != nil {
		return err
	}
	s.logger.Info(fmt.Sprintf("deferred %d files", len(paths)))
	return nil
}

func loadState(stateFile string) (map[string]fileState, error) {
	state := make(map[string]fileState)
	content, err := os.ReadFile(stateFile)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(content, &state); err != nil {
		return nil, fmt.Errorf("corrupt state file %s: %w", stateFile, err)
	}
	return state, nil
}

// saveState writes the state to a sibling temp file and renames it over the
// old one, so a crash never leaves a half-written state.
func saveState(stateFile string, state map[string]fileState) error {
	content, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmpFile := stateFile + ".tmp"
	if err := os.WriteFile(tmpFile, content, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmpFile, stateFile); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func md5OfFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
