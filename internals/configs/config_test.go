package configs

import (
	"testing"
	"time"
)

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Minute},
		{"90s", 90 * time.Second},
		{"45", 45 * time.Second},
		{"soon", time.Minute},
	}
	for _, tt := range tests {
		t.Setenv("PLANOVA_TEST_DURATION", tt.value)
		if got := GetEnvDuration("PLANOVA_TEST_DURATION", time.Minute); got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestGetEnvIntAndBool(t *testing.T) {
	t.Setenv("PLANOVA_TEST_INT", "12")
	t.Setenv("PLANOVA_TEST_BOOL", "Yes")
	if got := GetEnvInt("PLANOVA_TEST_INT", 3); got != 12 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("PLANOVA_TEST_MISSING", 3); got != 3 {
		t.Errorf("GetEnvInt default = %d", got)
	}
	if !GetEnvBool("PLANOVA_TEST_BOOL", false) {
		t.Errorf("GetEnvBool(Yes) = false")
	}
	if GetEnv("PLANOVA_TEST_MISSING", "x") != "x" {
		t.Errorf("GetEnv default not used")
	}
}
