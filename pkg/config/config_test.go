package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	originals := make(map[string]string)
	for _, k := range keys {
		originals[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range originals {
			if v != "" {
				os.Setenv(k, v)
			} else {
				os.Unsetenv(k)
			}
		}
	})
}

var envVarsToClean = []string{
	"RESUMEPARSER_SERVER_ENVIRONMENT",
	"RESUMEPARSER_NER_PRIMARY_URL",
	"RESUMEPARSER_RABBITMQ_URL",
	"RESUMEPARSER_EXTRACTION_DATE_WINDOW",
}

func TestNERConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      NERConfig
		environment string
		wantErr     bool
	}{
		{
			name:        "development allows localhost defaults",
			config:      NERConfig{PrimaryURL: "http://localhost:8501/ner"},
			environment: "development",
			wantErr:     false,
		},
		{
			name:        "production rejects localhost recognizer",
			config:      NERConfig{PrimaryURL: "http://localhost:8501/ner"},
			environment: "production",
			wantErr:     true,
		},
		{
			name:        "production requires a primary endpoint",
			config:      NERConfig{},
			environment: "production",
			wantErr:     true,
		},
		{
			name:        "staging accepts remote endpoint",
			config:      NERConfig{PrimaryURL: "https://ner.internal.example.com/ner"},
			environment: "staging",
			wantErr:     false,
		},
		{
			name:        "negative rate is rejected",
			config:      NERConfig{PrimaryURL: "http://localhost:8501/ner", RequestsPerSecond: -1},
			environment: "development",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate(tt.environment)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t, envVarsToClean...)

	cfg, err := Load("resume-parser")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %v, want development", cfg.Server.Environment)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %v, want 8080", cfg.Server.Port)
	}
	if cfg.Extraction.DateWindow != 120 {
		t.Errorf("Extraction.DateWindow = %v, want 120", cfg.Extraction.DateWindow)
	}
	if cfg.RabbitMQ.Enabled() {
		t.Error("RabbitMQ should be disabled by default")
	}
	if cfg.NER.MaxFailures != 3 {
		t.Errorf("NER.MaxFailures = %v, want 3", cfg.NER.MaxFailures)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t, envVarsToClean...)
	os.Setenv("RESUMEPARSER_NER_PRIMARY_URL", "http://ner:9000/ner")
	os.Setenv("RESUMEPARSER_EXTRACTION_DATE_WINDOW", "64")

	cfg, err := Load("resume-parser")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.NER.PrimaryURL != "http://ner:9000/ner" {
		t.Errorf("NER.PrimaryURL = %v, want http://ner:9000/ner", cfg.NER.PrimaryURL)
	}
	if cfg.Extraction.DateWindow != 64 {
		t.Errorf("Extraction.DateWindow = %v, want 64", cfg.Extraction.DateWindow)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t, envVarsToClean...)

	path := filepath.Join(t.TempDir(), "resume-parser.yaml")
	content := []byte("server:\n  port: 9090\nextraction:\n  taxonomy_file: /etc/skills.yaml\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile("resume-parser", path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %v, want 9090", cfg.Server.Port)
	}
	if cfg.Extraction.TaxonomyFile != "/etc/skills.yaml" {
		t.Errorf("Extraction.TaxonomyFile = %v, want /etc/skills.yaml", cfg.Extraction.TaxonomyFile)
	}

	if _, err := LoadFile("resume-parser", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile() should fail for an explicit missing file")
	}
}

func TestLoadWithValidation_Development(t *testing.T) {
	clearEnv(t, envVarsToClean...)

	cfg, err := LoadWithValidation("resume-parser", "")
	if err != nil {
		t.Fatalf("LoadWithValidation() in development should not error: %v", err)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %v, want development", cfg.Server.Environment)
	}
}

func TestLoadWithValidation_ProductionRequiresRemoteRecognizer(t *testing.T) {
	clearEnv(t, envVarsToClean...)
	os.Setenv("RESUMEPARSER_SERVER_ENVIRONMENT", "production")

	if _, err := LoadWithValidation("resume-parser", ""); err == nil {
		t.Error("LoadWithValidation() in production should fail with localhost recognizer")
	}

	os.Setenv("RESUMEPARSER_NER_PRIMARY_URL", "https://ner.prod.example.com/ner")
	cfg, err := LoadWithValidation("resume-parser", "")
	if err != nil {
		t.Fatalf("LoadWithValidation() should succeed with remote recognizer: %v", err)
	}
	if cfg.Server.Environment != "production" {
		t.Errorf("Server.Environment = %v, want production", cfg.Server.Environment)
	}
}

func TestLoadWithValidation_RejectsNonPositiveWindow(t *testing.T) {
	clearEnv(t, envVarsToClean...)
	os.Setenv("RESUMEPARSER_EXTRACTION_DATE_WINDOW", "0")

	if _, err := LoadWithValidation("resume-parser", ""); err == nil {
		t.Error("LoadWithValidation() should reject a zero date window")
	}
}
