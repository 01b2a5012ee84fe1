package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogbook(t *testing.T) *Logbook {
	t.Helper()
	lb, err := New(filepath.Join(t.TempDir(), "logs", "console.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	return lb
}

func TestAppendWritesFileAndTail(t *testing.T) {
	lb := testLogbook(t)
	lb.Info("bridge listening on %s", "127.0.0.1:7861")
	lb.Warn("slow dispatch")
	lb.Error("decode failed")

	tail := lb.Tail(10)
	if len(tail) != 3 {
		t.Fatalf("expected 3 tail lines, got %d", len(tail))
	}
	if !strings.Contains(tail[0], "INFO") || !strings.Contains(tail[0], "bridge listening on 127.0.0.1:7861") {
		t.Fatalf("unexpected first line %q", tail[0])
	}
	if !strings.Contains(tail[1], "WARN") || !strings.Contains(tail[2], "ERROR") {
		t.Fatalf("levels not recorded: %v", tail)
	}

	raw, err := os.ReadFile(lb.Path())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 file lines, got %d", len(lines))
	}
	if lines[2] != tail[2] {
		t.Fatalf("file and tail disagree: %q vs %q", lines[2], tail[2])
	}
}

func TestTailReturnsMostRecent(t *testing.T) {
	lb := testLogbook(t)
	for i := 0; i < 10; i++ {
		lb.Info("entry %d", i)
	}
	tail := lb.Tail(3)
	if len(tail) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(tail))
	}
	if !strings.HasSuffix(tail[2], "entry 9") || !strings.HasSuffix(tail[0], "entry 7") {
		t.Fatalf("tail window wrong: %v", tail)
	}
	if lb.Tail(0) != nil {
		t.Fatalf("non-positive maxLines should return nil")
	}
}

func TestTailCapBounded(t *testing.T) {
	lb := testLogbook(t)
	for i := 0; i < tailCapacity+20; i++ {
		lb.Append(LevelInfo, fmt.Sprintf("entry %d", i))
	}
	tail := lb.Tail(tailCapacity * 2)
	if len(tail) != tailCapacity {
		t.Fatalf("expected tail capped at %d, got %d", tailCapacity, len(tail))
	}
	if !strings.HasSuffix(tail[len(tail)-1], fmt.Sprintf("entry %d", tailCapacity+19)) {
		t.Fatalf("newest entry missing: %q", tail[len(tail)-1])
	}
}

func TestPrintfRecordsInfo(t *testing.T) {
	lb := testLogbook(t)
	lb.Printf("voice: %s", "bridge started")
	tail := lb.Tail(1)
	if len(tail) != 1 || !strings.Contains(tail[0], "INFO") || !strings.Contains(tail[0], "voice: bridge started") {
		t.Fatalf("printf entry missing: %v", tail)
	}
}
