package models

import (
	"errors"
	"strings"
)

var ErrMissingCredential = errors.New("API key is required")

// Settings carries the per-action choices the user made: the credential for
// the generation service and the target language. It is passed explicitly
// into every pipeline run and never stored.
type Settings struct {
	APIKey   string
	Language Language
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.APIKey) == "" {
		return ErrMissingCredential
	}
	if !s.Language.IsValid() {
		return ErrUnsupportedLanguage
	}
	return nil
}
