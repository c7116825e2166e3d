package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxLabelLength bounds item labels; labels are embedded verbatim in SVG text.
const maxLabelLength = 128

// sceneExtensions lists the file extensions accepted for scene files.
var sceneExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateLabel validates an item label for display.
//
// The validation rules are intentionally conservative:
//   - Empty labels are allowed (the renderer falls back to the index)
//   - No control characters
//   - Maximum length of 128 characters
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidScene, "item label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "item label contains invalid control characters")
		}
	}
	return nil
}

// ValidateScenePath checks that path names a scene file with a supported extension.
func ValidateScenePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "scene path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "scene path contains invalid characters")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !sceneExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported scene file extension %q (must be .json, .yaml, .yml or .toml)", ext)
	}
	return nil
}
