// Package settings stores learner preferences outside the main database.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	// MaxPromptTemplateLength caps the user-supplied generation template.
	MaxPromptTemplateLength = 2000

	minSpeechRate  = 0.5
	maxSpeechRate  = 2.0
	minSpeechPitch = 0.5
	maxSpeechPitch = 2.0
)

// Settings are the learner-tunable knobs. Speech settings only configure the
// browser's synthesizer; no audio is produced server-side.
type Settings struct {
	PromptTemplate string  `yaml:"prompt_template" json:"prompt_template"`
	Voice          string  `yaml:"voice" json:"voice"`
	SpeechRate     float64 `yaml:"speech_rate" json:"speech_rate"`
	SpeechPitch    float64 `yaml:"speech_pitch" json:"speech_pitch"`
}

// Default returns the settings used when no file exists yet.
func Default() Settings {
	return Settings{
		PromptTemplate: "Suggest {{count}} spelling words about {{topic}} for a {{age}} year old child. Give each word a short hint sentence that does not contain the word.",
		Voice:          "",
		SpeechRate:     0.9,
		SpeechPitch:    1.0,
	}
}

// Clamp bounds speech rate and pitch and truncates an oversized template.
func (s *Settings) Clamp() {
	if s.SpeechRate < minSpeechRate {
		s.SpeechRate = minSpeechRate
	}
	if s.SpeechRate > maxSpeechRate {
		s.SpeechRate = maxSpeechRate
	}
	if s.SpeechPitch < minSpeechPitch {
		s.SpeechPitch = minSpeechPitch
	}
	if s.SpeechPitch > maxSpeechPitch {
		s.SpeechPitch = maxSpeechPitch
	}
	if len(s.PromptTemplate) > MaxPromptTemplateLength {
		cut := s.PromptTemplate[:MaxPromptTemplateLength]
		// Back off a partially cut multi-byte rune.
		for len(cut) > 0 && !utf8.ValidString(cut) {
			cut = cut[:len(cut)-1]
		}
		s.PromptTemplate = cut
	}
}

// FileRepository reads and writes settings as a YAML file.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository backed by the given file path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load returns the stored settings, or defaults when the file does not exist.
func (r *FileRepository) Load() (Settings, error) {
	content, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(content, &s); err != nil {
		return Settings{}, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	s.Clamp()
	return s, nil
}

// Save clamps and writes settings, replacing the file atomically.
func (r *FileRepository) Save(s Settings) error {
	s.Clamp()

	content, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("yaml.Marshal() > %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(r.path), err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", tmp, err)
	}
	return nil
}
