package timeline

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/handiism/modplan/internal/model"
)

//go:embed template.yaml
var defaultTemplate []byte

type templateFile struct {
	Years []model.AcademicYear `yaml:"years"`
}

// Template returns the embedded starter plan.
func Template() (Timeline, error) {
	return Parse(defaultTemplate)
}

// LoadTemplate reads a starter plan from a YAML file. An empty path selects
// the embedded template.
func LoadTemplate(path string) (Timeline, error) {
	if path == "" {
		return Template()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Timeline{}, fmt.Errorf("timeline: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML plan template.
func Parse(data []byte) (Timeline, error) {
	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Timeline{}, fmt.Errorf("timeline: parse template: %w", err)
	}
	for yi := range file.Years {
		for si := range file.Years[yi].Semesters {
			mods := file.Years[yi].Semesters[si].Modules
			for mi := range mods {
				mods[mi].Code = model.NormalizeCode(mods[mi].Code)
			}
		}
	}
	return New(file.Years)
}
