package requirements

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handiism/modplan/internal/model"
)

//go:embed catalogue.yaml
var defaultCatalogue []byte

type catalogueFile struct {
	Categories []categoryEntry `yaml:"categories"`
}

type categoryEntry struct {
	Name            string        `yaml:"name"`
	RequiredCredits int           `yaml:"required_credits"`
	Courses         []courseEntry `yaml:"courses"`
}

type courseEntry struct {
	Code  string `yaml:"code"`
	Title string `yaml:"title"`
}

// Default returns the embedded catalogue.
func Default() ([]model.RequirementCategory, error) {
	return Parse(defaultCatalogue)
}

// Load reads a catalogue file. An empty path selects the embedded catalogue.
func Load(path string) ([]model.RequirementCategory, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("requirements: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalogue.
//
// Returns an error if the YAML is malformed, a category has no name, or a
// course code is not a valid match key.
func Parse(data []byte) ([]model.RequirementCategory, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("requirements: parse catalogue: %w", err)
	}

	categories := make([]model.RequirementCategory, 0, len(file.Categories))
	for i, entry := range file.Categories {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("requirements: categories[%d]: name is required", i)
		}
		if entry.RequiredCredits < 0 {
			return nil, fmt.Errorf("requirements: %s: required_credits must be >= 0", name)
		}
		category := model.RequirementCategory{
			Name:            name,
			RequiredCredits: entry.RequiredCredits,
			Courses:         make([]model.RequirementCourse, 0, len(entry.Courses)),
		}
		for j, course := range entry.Courses {
			key, err := model.ParseMatchKey(course.Code)
			if err != nil {
				return nil, fmt.Errorf("requirements: %s: courses[%d]: %w", name, j, err)
			}
			category.Courses = append(category.Courses, model.RequirementCourse{
				Match: key,
				Title: strings.TrimSpace(course.Title),
			})
		}
		categories = append(categories, category)
	}
	return categories, nil
}
