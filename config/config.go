package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"menukit/log"
)

const (
	// StateFileName is the persisted menu UI state file
	StateFileName = "state.json"
	// LockFileName coordinates state access across processes
	LockFileName = "state.lock"
	// DefaultLockTimeout is the default timeout for acquiring locks
	DefaultLockTimeout = 5 * time.Second
	// DefaultRecentLimit bounds the recent-commands list
	DefaultRecentLimit = 50
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".menukit"), nil
}

// State is the menu UI state that persists between sessions: which groups
// the user collapsed per menu location, and the most recently invoked
// commands (newest first).
type State struct {
	// CollapsedGroups maps a location id to the group keys collapsed there
	CollapsedGroups map[string][]string `json:"collapsed_groups"`
	// RecentCommands holds recently invoked command ids, newest first
	RecentCommands []string `json:"recent_commands"`

	dir         string        `json:"-"`
	lockFile    *flock.Flock  `json:"-"`
	lockTimeout time.Duration `json:"-"`
}

// DefaultState returns an empty state rooted in the default config directory.
func DefaultState() *State {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		// Minimal state without locking if we can't resolve the config dir
		return &State{
			CollapsedGroups: make(map[string][]string),
		}
	}
	return DefaultStateIn(configDir)
}

// DefaultStateIn returns an empty state rooted in dir. Used directly by
// tests and by hosts that keep their own config location.
func DefaultStateIn(dir string) *State {
	return &State{
		CollapsedGroups: make(map[string][]string),
		dir:             dir,
		lockFile:        flock.New(filepath.Join(dir, LockFileName)),
		lockTimeout:     DefaultLockTimeout,
	}
}

// LoadState loads the state from disk with locking. If it cannot be done, we
// return the default state.
func LoadState() *State {
	state := DefaultState()
	if err := state.loadFromDisk(); err != nil {
		log.WarningLog.Printf("failed to load menu state from disk: %v", err)
	}
	return state
}

// LoadStateIn is LoadState rooted in an explicit directory.
func LoadStateIn(dir string) *State {
	state := DefaultStateIn(dir)
	if err := state.loadFromDisk(); err != nil {
		log.WarningLog.Printf("failed to load menu state from disk: %v", err)
	}
	return state
}

// loadFromDisk loads state from disk with a shared read lock
func (s *State) loadFromDisk() error {
	if s.lockFile == nil {
		log.WarningLog.Printf("lock file not initialized, loading state without locking")
		return s.loadFromDiskWithoutLocking()
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := s.lockFile.TryRLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire read lock within timeout")
	}
	defer s.lockFile.Unlock()

	return s.loadFromDiskWithoutLocking()
}

func (s *State) loadFromDiskWithoutLocking() error {
	data, err := os.ReadFile(filepath.Join(s.dir, StateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - keep the default state
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	s.CollapsedGroups = loaded.CollapsedGroups
	if s.CollapsedGroups == nil {
		s.CollapsedGroups = make(map[string][]string)
	}
	s.RecentCommands = loaded.RecentCommands
	return nil
}

// SaveState saves the state to disk with locking
func SaveState(state *State) error {
	if state.lockFile == nil {
		log.WarningLog.Printf("lock file not initialized, saving state without locking")
		return state.saveToDiskWithoutLocking()
	}

	if err := os.MkdirAll(state.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), state.lockTimeout)
	defer cancel()

	locked, err := state.lockFile.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire write lock within timeout")
	}
	defer state.lockFile.Unlock()

	return state.saveToDiskWithoutLocking()
}

func (s *State) saveToDiskWithoutLocking() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(filepath.Join(s.dir, StateFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// IsGroupCollapsed reports whether the user collapsed group at location.
func (s *State) IsGroupCollapsed(location, group string) bool {
	for _, g := range s.CollapsedGroups[location] {
		if g == group {
			return true
		}
	}
	return false
}

// SetGroupCollapsed records or clears the collapsed flag for group at
// location.
func (s *State) SetGroupCollapsed(location, group string, collapsed bool) {
	groups := s.CollapsedGroups[location]
	for i, g := range groups {
		if g != group {
			continue
		}
		if !collapsed {
			s.CollapsedGroups[location] = append(groups[:i], groups[i+1:]...)
		}
		return
	}
	if collapsed {
		s.CollapsedGroups[location] = append(groups, group)
	}
}

// TouchRecentCommand moves id to the front of the recent-commands list,
// keeping the list bounded and free of duplicates.
func (s *State) TouchRecentCommand(id string) {
	recent := make([]string, 0, len(s.RecentCommands)+1)
	recent = append(recent, id)
	for _, r := range s.RecentCommands {
		if r == id {
			continue
		}
		recent = append(recent, r)
	}
	if len(recent) > DefaultRecentLimit {
		recent = recent[:DefaultRecentLimit]
	}
	s.RecentCommands = recent
}
