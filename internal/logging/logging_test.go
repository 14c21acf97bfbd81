package logging

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"loud", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	prev := GetLevel()
	defer SetLevel(prev)

	SetSource("logging_test")
	SetLevel(DebugLevel)
	if GetLevel() != DebugLevel {
		t.Errorf("level = %v, want debug", GetLevel())
	}
	Debugf("visible %d", 1)
	SetLevel(ErrorLevel)
	Infof("hidden %d", 2)
	if GetLevel() != ErrorLevel {
		t.Errorf("level = %v, want error", GetLevel())
	}
}
