// Package guard forces test mode before any package init can observe it.
// Import it for side effects from _test.go files.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("PRESSGATE_TEST_MODE") == "" {
			_ = os.Setenv("PRESSGATE_TEST_MODE", "1")
		}
	})
}
