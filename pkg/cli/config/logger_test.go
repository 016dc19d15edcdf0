package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/shipit/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "debug", level: "debug"},
		{name: "info", level: "info"},
		{name: "warn", level: "warn"},
		{name: "error", level: "error"},
		{name: "case insensitive", level: "WARN"},
		{name: "unknown level", level: "verbose", wantErr: true},
		{name: "empty level", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level}

			logger, err := cfg.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			if logger == nil {
				t.Fatal("Configure() returned nil logger")
			}
		})
	}
}

func TestLogger_Configure_JSONFormat(t *testing.T) {
	for _, json := range []bool{true, false} {
		cfg := &config.Logger{Level: "info", JSON: json}

		logger, err := cfg.Configure()
		gt.NoError(t, err)

		// Smoke check that the handler accepts records
		logger.Info("test log message", "json", json)
	}
}

func TestLogger_Flags(t *testing.T) {
	cfg := &config.Logger{}
	flags := cfg.Flags()
	gt.Value(t, len(flags)).Equal(2)

	names := map[string]bool{}
	for _, flag := range flags {
		for _, n := range flag.Names() {
			names[n] = true
		}
	}
	if !names["log-level"] || !names["log-json"] {
		t.Errorf("missing expected flags, got %v", names)
	}
}
