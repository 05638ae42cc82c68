package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIListenAddr != ":8080" || cfg.WSListenAddr != ":8888" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFlagsOverride(t *testing.T) {
	cfg, err := Load([]string{"-a", ":9090", "--ws-listen-addr", ":9999", "-l", "info"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIListenAddr != ":9090" || cfg.WSListenAddr != ":9999" || cfg.LogLevel != "info" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("VIDEOCALL_LOG_LEVEL", "warn")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("env var not applied: %+v", cfg)
	}
}

func TestBadFlag(t *testing.T) {
	if _, err := Load([]string{"--no-such-flag"}); err == nil {
		t.Fatal("bad flag accepted")
	}
}
