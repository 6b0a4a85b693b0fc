package api

// Focus-area values understood by the plan-generation service.
const (
	FocusAI                  = "AI"
	FocusSoftwareEngineering = "SoftwareEngineering"
	FocusAlgorithms          = "Algorithms"
	FocusNone                = "none"
)

var focusAreas = map[string]string{
	"Artificial Intelligence": FocusAI,
	"Software Engineering":    FocusSoftwareEngineering,
	"Algorithms & Theory":     FocusAlgorithms,
}

// MapFocusArea converts a focus-area display name to the service value.
// Unsupported areas map to FocusNone.
func MapFocusArea(display string) string {
	if v, ok := focusAreas[display]; ok {
		return v
	}
	return FocusNone
}

// FocusAreas returns the display names the service supports.
func FocusAreas() []string {
	return []string{"Artificial Intelligence", "Software Engineering", "Algorithms & Theory"}
}
