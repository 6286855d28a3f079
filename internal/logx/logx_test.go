package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"pkt.systems/pslog"
)

func TestWithActionAddsField(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	WithAction(WithLayer(logger, 2), "a-1").Info("committed")

	entry := capture.firstEntry(t)
	if entry["action"] != "a-1" {
		t.Fatalf("expected action field, got %+v", entry)
	}
	if entry["layer"] != float64(2) {
		t.Fatalf("expected layer field, got %+v", entry)
	}
}

func TestWithEmptyValuesKeepsLogger(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	WithPeer(WithAction(logger, ""), "").Info("hello")

	entry := capture.firstEntry(t)
	if _, ok := entry["action"]; ok {
		t.Fatalf("did not expect action field")
	}
	if _, ok := entry["peer"]; ok {
		t.Fatalf("did not expect peer field")
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
