package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/handiism/modplan/internal/api/dto"
	"github.com/handiism/modplan/internal/board"
	"github.com/handiism/modplan/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Backend
	APIURL         string        `json:"api_url" env:"MODPLAN_API_URL"`
	RequestTimeout time.Duration `json:"request_timeout" env:"MODPLAN_REQUEST_TIMEOUT"` // "30s" in JSON too
	AppName        string        `json:"app_name" env:"MODPLAN_APP_NAME"`

	// Local files
	SessionDir    string `json:"session_dir" env:"MODPLAN_SESSION_DIR"`
	CataloguePath string `json:"catalogue_path" env:"MODPLAN_CATALOGUE_PATH"` // empty = embedded
	TemplatePath  string `json:"template_path" env:"MODPLAN_TEMPLATE_PATH"`   // empty = embedded
	ExportDir     string `json:"export_dir" env:"MODPLAN_EXPORT_DIR"`

	// Logging
	LogPath   string `json:"log_path" env:"MODPLAN_LOG_PATH"` // empty = discard
	LogLevel  string `json:"log_level" env:"MODPLAN_LOG_LEVEL"`
	LogFormat string `json:"log_format" env:"MODPLAN_LOG_FORMAT"` // console, json

	// Plan generation
	Degree        string `json:"degree" env:"MODPLAN_DEGREE"`
	Major         string `json:"major" env:"MODPLAN_MAJOR"`
	FocusArea     string `json:"focus_area" env:"MODPLAN_FOCUS_AREA"` // display name
	MaxCreditsSem int    `json:"max_credits_per_sem" env:"MODPLAN_MAX_CREDITS_PER_SEM"`
	MaxHardPerSem int    `json:"max_hard_per_sem" env:"MODPLAN_MAX_HARD_PER_SEM"`
	StartYear     string `json:"start_year" env:"MODPLAN_START_YEAR"`
	PlanLabel     string `json:"plan_label" env:"MODPLAN_PLAN_LABEL"`
	PlanningYears int    `json:"planning_years" env:"MODPLAN_PLANNING_YEARS"`

	// Recommendation
	RecommendSemester int    `json:"recommend_semester" env:"MODPLAN_RECOMMEND_SEMESTER"`
	RecommendCode     string `json:"recommend_code" env:"MODPLAN_RECOMMEND_CODE"`
	RecommendTitle    string `json:"recommend_title" env:"MODPLAN_RECOMMEND_TITLE"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		APIURL:         "http://localhost:5000",
		RequestTimeout: 30 * time.Second,
		AppName:        "modplan",

		SessionDir: filepath.Join(configDir, "modplan"),
		ExportDir:  homeDir,

		LogLevel:  "info",
		LogFormat: "json",

		Degree:        "computing",
		Major:         "Computer Science",
		FocusArea:     "Artificial Intelligence",
		MaxCreditsSem: 20,
		MaxHardPerSem: 4,
		StartYear:     "2024/2025",
		PlanLabel:     "My Plan",
		PlanningYears: 4,

		RecommendSemester: 4,
		RecommendCode:     "CS3243",
		RecommendTitle:    "Introduction to AI",
	}
}

// Load reads settings from a JSON file and applies MODPLAN_* environment
// overrides on top. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := json.Unmarshal(data, settings); err != nil {
				return nil, fmt.Errorf("config: %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(settings); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	return settings, nil
}

// settingsJSON is Settings without its JSON methods.
type settingsJSON Settings

// MarshalJSON writes RequestTimeout as a duration string such as "30s".
func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		settingsJSON
		RequestTimeout string `json:"request_timeout"`
	}{settingsJSON(s), s.RequestTimeout.String()})
}

// UnmarshalJSON reads RequestTimeout as a duration string. A bare number is
// taken as nanoseconds. Fields missing from data keep their current value.
func (s *Settings) UnmarshalJSON(data []byte) error {
	aux := struct {
		*settingsJSON
		RequestTimeout json.RawMessage `json:"request_timeout"`
	}{settingsJSON: (*settingsJSON)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.RequestTimeout) == 0 || string(aux.RequestTimeout) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(aux.RequestTimeout, &text); err == nil {
		d, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		s.RequestTimeout = d
		return nil
	}
	var nanos int64
	if err := json.Unmarshal(aux.RequestTimeout, &nanos); err != nil {
		return fmt.Errorf("request_timeout: want a duration such as \"30s\": %w", err)
	}
	s.RequestTimeout = time.Duration(nanos)
	return nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports settings that cannot work.
func (s *Settings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.AppName) == "" {
		errs = append(errs, errors.New("app_name must not be empty"))
	}
	if strings.TrimSpace(s.APIURL) == "" {
		errs = append(errs, errors.New("api_url must not be empty"))
	}
	if s.MaxCreditsSem <= 0 {
		errs = append(errs, fmt.Errorf("max_credits_per_sem must be positive, got %d", s.MaxCreditsSem))
	}
	if s.MaxHardPerSem <= 0 {
		errs = append(errs, fmt.Errorf("max_hard_per_sem must be positive, got %d", s.MaxHardPerSem))
	}
	if s.PlanningYears <= 0 {
		errs = append(errs, fmt.Errorf("planning_years must be positive, got %d", s.PlanningYears))
	}
	if s.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must not be negative, got %s", s.RequestTimeout))
	}
	switch s.LogFormat {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", s.LogFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ToGenerateRequest converts the plan-generation defaults into a service
// request.
func (s *Settings) ToGenerateRequest(focusValue string) dto.GenerateRequest {
	return dto.GenerateRequest{
		Degree:        strings.ToLower(s.Degree),
		Major:         s.Major,
		FocusArea:     focusValue,
		MaxMCs:        s.MaxCreditsSem,
		MaxHardPerSem: s.MaxHardPerSem,
	}
}

// ToRecommendation converts the recommendation settings.
func (s *Settings) ToRecommendation() board.Recommendation {
	return board.Recommendation{
		SemesterID: s.RecommendSemester,
		Module: model.Module{
			Code:  model.NormalizeCode(s.RecommendCode),
			Title: s.RecommendTitle,
		},
	}
}
