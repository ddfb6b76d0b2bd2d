package app

import (
	"os"
	"sync"
	"sync/atomic"
)

const testModeEnv = "BREWSTOCK_TEST_MODE"

// StoreMode selects where a Session keeps its data.
type StoreMode int

const (
	// StoreFiles loads and saves the flat text stores under DataDir.
	StoreFiles StoreMode = iota
	// StoreMemory keeps everything in memory and never touches the disk.
	StoreMemory
)

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

func detectTestMode() {
	testModeFlag.Store(os.Getenv(testModeEnv) == "1")
}

// InTestMode reports whether BREWSTOCK_TEST_MODE=1 was set.
func InTestMode() bool {
	testModeOnce.Do(detectTestMode)
	return testModeFlag.Load()
}

// RefreshTestMode updates the cached flag after environment changes.
func RefreshTestMode() {
	detectTestMode()
}

// DefaultStoreMode is StoreMemory in test mode and StoreFiles otherwise.
func DefaultStoreMode() StoreMode {
	if InTestMode() {
		return StoreMemory
	}
	return StoreFiles
}
