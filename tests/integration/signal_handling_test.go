//go:build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServerGracefulShutdown(t *testing.T) {
	binary := filepath.Join(t.TempDir(), "kubectl-sandbox-test")

	buildCmd := exec.Command("go", "build", "-o", binary, ".")
	buildCmd.Dir = "../../"
	out, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "Failed to build server: %s", out)

	t.Run("SIGTERM handling", func(t *testing.T) {
		testSignalHandling(t, binary, syscall.SIGTERM)
	})

	t.Run("SIGINT handling", func(t *testing.T) {
		testSignalHandling(t, binary, syscall.SIGINT)
	})
}

func testSignalHandling(t *testing.T, binary string, signal syscall.Signal) {
	cmd := exec.Command(binary, "serve", "--http-addr", "127.0.0.1:0", "--metrics=false")
	cmd.Env = append(os.Environ(), "INSTRUMENTATION_ENABLED=false")
	require.NoError(t, cmd.Start(), "Failed to start server")

	// Give the server a moment to start up
	time.Sleep(300 * time.Millisecond)

	require.NoError(t, cmd.Process.Signal(signal), "Failed to send %s signal", signal)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		require.NoError(t, err, "server should exit cleanly after %s", signal)
		t.Logf("Server gracefully handled %s signal", signal)
	case <-time.After(5 * time.Second):
		if err := cmd.Process.Kill(); err != nil {
			t.Logf("Failed to force kill process: %v", err)
		}
		t.Fatalf("Server did not exit within 5 seconds after %s signal", signal)
	}
}
