package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")

	tests := []struct {
		name              string
		configContent     string
		wantErr           bool
		wantErrorContains []string
		want              *Config
	}{
		{
			name: "custom values",
			configContent: `server:
  port: 9090
  cors:
    allowed_origins:
      - http://localhost:5173
database:
  path: custom/words.db
  busy_timeout_ms: 1000
settings:
  path: custom/settings.yml
study:
  session_limit: 10
outputs:
  sheet_directory: custom/sheets
`,
			want: &Config{
				Server: ServerConfig{
					Port: 9090,
					CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
				},
				Database: DatabaseConfig{Path: "custom/words.db", BusyTimeoutMs: 1000},
				Settings: SettingsConfig{Path: "custom/settings.yml"},
				Study:    StudyConfig{SessionLimit: 10},
				OpenAI:   OpenAIConfig{APIKey: "", Model: "gpt-4o-mini"},
				Outputs:  OutputsConfig{SheetDirectory: "custom/sheets"},
			},
		},
		{
			name:          "partial config uses defaults",
			configContent: "server:\n  port: 3000\n",
			want: &Config{
				Server: ServerConfig{
					Port: 3000,
					CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
				},
				Database: DatabaseConfig{Path: filepath.Join("data", "spellcoach.db"), BusyTimeoutMs: 5000},
				Settings: SettingsConfig{Path: filepath.Join("data", "settings.yml")},
				Study:    StudyConfig{SessionLimit: 20},
				OpenAI:   OpenAIConfig{APIKey: "", Model: "gpt-4o-mini"},
				Outputs:  OutputsConfig{SheetDirectory: filepath.Join("outputs", "sheets")},
			},
		},
		{
			name:          "invalid YAML format",
			configContent: "server:\n  invalid yaml here [[[\n",
			wantErr:       true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name:          "validation failure",
			configContent: "study:\n  session_limit: -1\n",
			wantErr:       true,
			wantErrorContains: []string{
				"invalid configuration",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeConfigFile(t, tt.configContent))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	got, err := Load(writeConfigFile(t, "server:\n  port: 8080\n"))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", got.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", got.OpenAI.Model)
}
