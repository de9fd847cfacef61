package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDisabledWritesNothing(t *testing.T) {
	SetOutput(nil)
	if Enabled() {
		t.Fatal("enabled after SetOutput(nil)")
	}
	Log("hidden %d", 1)
	LogEnterExit("hidden")()
}

func TestOutputCarriesMessages(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Log("loaded %d terms", 3)
	LogTiming("sync", 2*time.Millisecond)
	Section("reload")
	Dump("count", 7)
	With("resize", "w", 80)

	out := buf.String()
	for _, want := range []string{"loaded 3 terms", "sync", "=== reload ===", "count: int = 7", "w=80"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
