package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is the target language for the rewritten CV.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSpanish Language = "Spanish"
	LanguageFrench  Language = "French"
	LanguageGerman  Language = "German"
	LanguageItalian Language = "Italian"
)

var languageCodes = map[Language]string{
	LanguageEnglish: "en",
	LanguageSpanish: "es",
	LanguageFrench:  "fr",
	LanguageGerman:  "de",
	LanguageItalian: "it",
}

// SupportedLanguages returns the selectable languages in display order.
func SupportedLanguages() []Language {
	return []Language{
		LanguageEnglish,
		LanguageSpanish,
		LanguageFrench,
		LanguageGerman,
		LanguageItalian,
	}
}

// Code returns the ISO 639-1 code for the language.
func (l Language) Code() string {
	return languageCodes[l]
}

func (l Language) IsValid() bool {
	_, ok := languageCodes[l]
	return ok
}

// ParseLanguage accepts a display name or ISO code, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, lang := range SupportedLanguages() {
		if strings.EqualFold(s, string(lang)) || strings.EqualFold(s, lang.Code()) {
			return lang, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}
