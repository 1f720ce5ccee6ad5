// Package locale holds the supported display languages and the shared
// vocabulary used for column names, placeholders and progress messages.
package locale

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

type Locale string

const (
	DE Locale = "de"
	EN Locale = "en"
	NL Locale = "nl"
)

// Supported lists the locales in matcher order.
var Supported = []Locale{DE, EN, NL}

var ErrUnsupported = errors.New("unsupported locale")

var matcher = language.NewMatcher([]language.Tag{
	language.German,
	language.English,
	language.Dutch,
})

// Parse maps a BCP-47 tag such as "de-AT" or "en" onto a supported locale.
func Parse(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	return Supported[idx], nil
}

// Text is one message translated into every supported locale.
type Text map[Locale]string

// In returns the translation for l. A missing translation is a programming
// error and panics.
func (t Text) In(l Locale) string {
	s, ok := t[l]
	if !ok {
		panic(fmt.Sprintf("locale: no %q translation for %q", l, t[EN]))
	}
	return s
}
