package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

// ensureTestMode keeps test binaries that import this package away from the
// real data files: sessions open in memory and stores point at a scratch dir.
func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("BREWSTOCK_TEST_MODE", "1")
		if os.Getenv("BREWSTOCK_DATA_DIR") == "" {
			_ = os.Setenv("BREWSTOCK_DATA_DIR", os.TempDir())
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
