package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Levels(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"WARNING": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"chatty":  logrus.InfoLevel,
	}
	for in, want := range cases {
		if got := New(in, &bytes.Buffer{}).GetLevel(); got != want {
			t.Fatalf("New(%q) level = %v, want %v", in, got, want)
		}
	}
}

func TestNew_ProductionUsesJSON(t *testing.T) {
	t.Setenv(EnvVar, "production")
	var buf bytes.Buffer
	New("info", &buf).WithField("route", "/v1/budget").Info("handled")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", buf.String())
	}
	if entry["route"] != "/v1/budget" {
		t.Fatalf("route field = %v", entry["route"])
	}
}

func TestNew_DevelopmentUsesText(t *testing.T) {
	t.Setenv(EnvVar, "")
	var buf bytes.Buffer
	New("info", &buf).Info("hello")
	if !strings.Contains(buf.String(), `msg=hello`) {
		t.Fatalf("text log = %q", buf.String())
	}
}
