package common

import (
	"bytes"
	"github.com/lni/dragonboat/v4/logger"
	"log"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		"Error":   logger.ERROR,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Errorf("Expected error for unknown level")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := &socialLogger{
		name:   "test",
		level:  logger.WARNING,
		logger: log.New(&buf, "", 0),
	}

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warningf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("Messages below WARNING were written: %q", out)
	}
	if !strings.Contains(out, "WARN  | test       | warn 3") {
		t.Errorf("Expected formatted warning, got %q", out)
	}
	if !strings.Contains(out, "ERROR | test       | error 4") {
		t.Errorf("Expected formatted error, got %q", out)
	}

	l.SetLevel(logger.DEBUG)
	l.Debugf("now visible")
	if !strings.Contains(buf.String(), "DEBUG | test       | now visible") {
		t.Errorf("Expected debug message after SetLevel, got %q", buf.String())
	}
}
