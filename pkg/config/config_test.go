package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Token string `yaml:"token"`
}

type validatedConfig struct {
	Name string `yaml:"name"`
}

var errBadName = errors.New("name is required")

func (c *validatedConfig) Validate() error {
	if c.Name == "" {
		return errBadName
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := writeFile(t, "name: chronicle\ntoken: plain\n")
	var cfg testConfig
	if err := Load(p, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "chronicle" || cfg.Token != "plain" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_CHRONICLE_TOKEN", "s3cret")
	p := writeFile(t, "name: chronicle\ntoken: ${TEST_CHRONICLE_TOKEN}\n")
	var cfg testConfig
	if err := Load(p, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "s3cret" {
		t.Errorf("token = %q, want expanded env value", cfg.Token)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := writeFile(t, "name: [unclosed\n")
	var cfg testConfig
	if err := Load(p, &cfg); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("err = %v, want parse failure", err)
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	p := writeFile(t, "name: \"\"\n")
	var cfg validatedConfig
	if err := Load(p, &cfg); !errors.Is(err, errBadName) {
		t.Fatalf("err = %v, want validation failure", err)
	}
}
