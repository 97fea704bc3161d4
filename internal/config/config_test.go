package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/talkdeck/talkdeck/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := writeConfig(t, `{}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Host != DefaultHost || cfg.Server.Port != DefaultPort {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Address() != "localhost:8080" {
		t.Errorf("address = %q", cfg.Address())
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := writeConfig(t, `{
		"name": "talks-internal",
		"server": {"host": "0.0.0.0", "port": 9000},
		"feed": {"url": "https://talks.example.com/feed.xml", "refreshOnStart": true},
		"storage": {"backend": "sqlite", "path": "state/kv.db"},
		"log": {"level": "debug", "json": true}
	}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Address() != "0.0.0.0:9000" {
		t.Errorf("address = %q", cfg.Address())
	}
	if cfg.Feed.URL != "https://talks.example.com/feed.xml" {
		t.Errorf("feed url = %q", cfg.Feed.URL)
	}
	if got := cfg.SQLitePath(); got != filepath.Join(dir, "state/kv.db") {
		t.Errorf("sqlite path = %q", got)
	}
	if !cfg.Log.JSON || cfg.Log.Level != "debug" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	var coded *errors.Error
	if !stderrors.As(err, &coded) || coded.Code != "E101" {
		t.Errorf("expected E101, got %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := writeConfig(t, `{not json`)

	_, err := Load(dir)
	var coded *errors.Error
	if !stderrors.As(err, &coded) || coded.Code != "E102" {
		t.Errorf("expected E102, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"PortOutOfRange", `{"server": {"port": 70000}}`, "E103"},
		{"UnknownBackend", `{"storage": {"backend": "redis"}}`, "E202"},
		{"S3NeedsBucket", `{"storage": {"backend": "s3"}}`, "E103"},
		{"BadLogLevel", `{"log": {"level": "loud"}}`, "E103"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeConfig(t, tc.body)
			_, err := Load(dir)
			var coded *errors.Error
			if !stderrors.As(err, &coded) || coded.Code != tc.code {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestExists(t *testing.T) {
	dir := writeConfig(t, `{}`)
	if !Exists(dir) {
		t.Error("config should exist")
	}
	if Exists(t.TempDir()) {
		t.Error("empty dir should not report a config")
	}
}
