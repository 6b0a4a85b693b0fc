// Package ioutils provides small file system helpers shared by the session
// store and plan export.
//
// # File Operations
//
//	// Replace a file without exposing a half-written state
//	err := ioutils.WriteFileAtomic(path, data, 0600)
//
//	// Read a file that may not exist yet
//	data, ok, err := ioutils.ReadFileIfExists(path)
//
//	// Delete a file that may already be gone
//	err := ioutils.RemoveIfExists(path)
//
// # Filename Sanitization
//
// Use SanitizeFileName to turn a plan label into a safe export file name:
//
//	name := ioutils.SanitizeFileName("My Plan: 2024/2025") + ".md"
package ioutils
