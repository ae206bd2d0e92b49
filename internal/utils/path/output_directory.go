package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant      = "~"
	homeShortcutSlashConstant = "~/"
	currentDirectoryConstant  = "."
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// EnvironmentLookup resolves an environment variable.
type EnvironmentLookup func(name string) (string, bool)

// OutputDirectoryNormalizer turns operator-supplied output directories into clean paths.
// It trims whitespace, expands environment variables and a leading home shortcut,
// and falls back to the current directory for empty input.
type OutputDirectoryNormalizer struct {
	homeDirectoryProvider HomeDirectoryProvider
	environmentLookup     EnvironmentLookup
	homeDirectory         string
	homeDirectoryError    error
	homeDirectoryOnce     sync.Once
}

// NewOutputDirectoryNormalizer constructs a normalizer backed by the operating system.
func NewOutputDirectoryNormalizer() *OutputDirectoryNormalizer {
	return NewOutputDirectoryNormalizerWithLookups(os.UserHomeDir, os.LookupEnv)
}

// NewOutputDirectoryNormalizerWithLookups constructs a normalizer with custom lookups.
func NewOutputDirectoryNormalizerWithLookups(homeProvider HomeDirectoryProvider, environmentLookup EnvironmentLookup) *OutputDirectoryNormalizer {
	if homeProvider == nil {
		homeProvider = os.UserHomeDir
	}
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	return &OutputDirectoryNormalizer{homeDirectoryProvider: homeProvider, environmentLookup: environmentLookup}
}

// Normalize returns the cleaned form of candidatePath.
func (normalizer *OutputDirectoryNormalizer) Normalize(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return currentDirectoryConstant
	}
	if normalizer == nil {
		return filepath.Clean(trimmedPath)
	}

	expandedPath := os.Expand(trimmedPath, func(variableName string) string {
		value, _ := normalizer.environmentLookup(variableName)
		return value
	})
	return filepath.Clean(normalizer.expandHome(expandedPath))
}

func (normalizer *OutputDirectoryNormalizer) expandHome(candidatePath string) string {
	if !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}
	isBareShortcut := candidatePath == homeShortcutConstant
	hasSeparator := strings.HasPrefix(candidatePath, homeShortcutSlashConstant) ||
		strings.HasPrefix(candidatePath, homeShortcutConstant+string(os.PathSeparator))
	if !isBareShortcut && !hasSeparator {
		return candidatePath
	}

	homeDirectory := normalizer.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}
	if isBareShortcut {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, candidatePath[len(homeShortcutSlashConstant):])
}

func (normalizer *OutputDirectoryNormalizer) resolveHomeDirectory() string {
	normalizer.homeDirectoryOnce.Do(func() {
		normalizer.homeDirectory, normalizer.homeDirectoryError = normalizer.homeDirectoryProvider()
	})
	if normalizer.homeDirectoryError != nil {
		return ""
	}
	return normalizer.homeDirectory
}
