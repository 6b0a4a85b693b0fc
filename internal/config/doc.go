// Package config provides configuration management for modplan.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Environment overrides (MODPLAN_*)
//   - Default configuration values
//   - Conversion to service requests for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Talks to http://localhost:5000
//	// Session stored under the user config dir
//	// 20 credits and 4 hard modules per generated semester
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Malformed file or env value
//	}
//
// A missing file is not an error. Environment variables are applied after
// the file, so MODPLAN_API_URL always wins over api_url.
//
// # Saving Settings
//
//	settings.APIURL = "https://planner.example.com"
//	err := settings.Save("/path/to/config.json")
package config
