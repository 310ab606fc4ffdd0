//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/medium2md/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alive reports whether a process with pid exists. Signal 0 performs the
// existence check without delivering anything.
func alive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_CloseStopsBrowser(t *testing.T) {
	t.Parallel()

	for _, stealth := range []bool{false, true} {
		name := "plain"
		if stealth {
			name = "stealth"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// Given a running browser
			fetcher, err := rod.NewFetcher(rod.WithStealth(stealth))
			require.NoError(t, err)
			pid := fetcher.LauncherPID()
			require.NotZero(t, pid)
			require.True(t, alive(pid), "browser should run before Close")

			// When the fetcher is closed twice
			require.NoError(t, fetcher.Close())
			require.NoError(t, fetcher.Close())

			// Then the browser process is gone
			assert.Eventually(t, func() bool { return !alive(pid) },
				2*time.Second, 50*time.Millisecond, "browser should stop after Close")
		})
	}
}
