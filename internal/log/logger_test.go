package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentCollector, Output: &buf})

	l.Warn("API request failed", FieldStatusCode, 500)

	out := buf.String()
	if !strings.Contains(out, "component=collector") {
		t.Errorf("missing component in %q", out)
	}
	if !strings.Contains(out, "status_code=500") {
		t.Errorf("missing status code in %q", out)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Output: &buf})

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug record written at info level: %q", buf.String())
	}

	child := l.WithComponent(ComponentChart)
	if child.Component() != ComponentChart {
		t.Errorf("Component() = %q", child.Component())
	}
	child.Info("shown")
	if !strings.Contains(buf.String(), "component=chart") {
		t.Errorf("child component missing: %q", buf.String())
	}
	if strings.Contains(buf.String(), "component=app") {
		t.Errorf("parent component leaked into child: %q", buf.String())
	}
}
