package mcplog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestSanitizeParams(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		wantKeys []string
		skipKeys []string
	}{
		{name: "nil map", input: nil},
		{name: "short string kept", input: map[string]any{"id": "bmi-calculator"}, wantKeys: []string{"id"}},
		{
			name:     "long source replaced",
			input:    map[string]any{"source": strings.Repeat("x", 200), "language": "json"},
			wantKeys: []string{"source_len", "language"},
			skipKeys: []string{"source"},
		},
		{name: "numbers and bools kept", input: map[string]any{"months": 12.0, "strict": true}, wantKeys: []string{"months", "strict"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := SanitizeParams(tc.input)
			if out == nil {
				t.Fatal("SanitizeParams returned nil")
			}
			for _, k := range tc.wantKeys {
				if _, ok := out[k]; !ok {
					t.Errorf("expected key %q in output", k)
				}
			}
			for _, k := range tc.skipKeys {
				if _, ok := out[k]; ok {
					t.Errorf("unexpected key %q in output", k)
				}
			}
		})
	}
}

func TestWidgetParam(t *testing.T) {
	if got := WidgetParam(map[string]any{"id": "timer", "path": "x"}); got != "timer" {
		t.Errorf("got %q, want id", got)
	}
	if got := WidgetParam(map[string]any{"path": "css-gradient"}); got != "css-gradient" {
		t.Errorf("got %q, want path", got)
	}
	if got := WidgetParam(map[string]any{"id": 3}); got != "" {
		t.Errorf("got %q, want empty for non-string id", got)
	}
}

func TestResponseBytes(t *testing.T) {
	if got := ResponseBytes(nil); got != 0 {
		t.Errorf("nil result: got %d, want 0", got)
	}
	if got := ResponseBytes(mcp.NewToolResultText("hello")); got == 0 {
		t.Error("text result should have non-zero size")
	}
}

func TestRecord(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	orig := Now
	Now = func() time.Time { return start.Add(42 * time.Millisecond) }
	defer func() { Now = orig }()

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{
		Name:      "get_widget",
		Arguments: map[string]any{"id": "nope"},
	}}
	e := Record(start, req, mcp.NewToolResultError("widget not found"), nil)

	if e.Tool != "get_widget" || e.Widget != "nope" {
		t.Errorf("unexpected tool/widget: %q %q", e.Tool, e.Widget)
	}
	if e.DurationMs != 42 {
		t.Errorf("duration: got %d, want 42", e.DurationMs)
	}
	if !e.ToolError {
		t.Error("tool error result should be flagged")
	}
	if e.Error != nil {
		t.Error("no transport error expected")
	}
	if e.Ts != "2024-05-01T10:00:00Z" {
		t.Errorf("ts: got %q", e.Ts)
	}

	e = Record(start, req, nil, errors.New("boom"))
	if e.Error == nil || *e.Error != "boom" {
		t.Errorf("error not recorded: %v", e.Error)
	}
}

func TestOpen_EmptyPathDisables(t *testing.T) {
	l, err := Open("")
	if err != nil || l != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", l, err)
	}
	if err := l.Write(Entry{Tool: "x"}); err != nil {
		t.Errorf("nil logger Write: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("nil logger Close: %v", err)
	}
}

func TestOpen_AppendsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calls.jsonl")

	for i := 0; i < 2; i++ {
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := l.Write(Entry{Tool: "list_widgets", Params: map[string]any{}}); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := l.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line %d is not JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("got %d lines, want 2 (file must be appended, not truncated)", lines)
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Write(Entry{Tool: "search_widgets"})
		}()
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 50 {
		t.Errorf("got %d lines, want 50", got)
	}
}
