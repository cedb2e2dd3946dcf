// Package translate formats user facing text for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when the system reports no locale.
const Fallback = "en-US"

var printer *message.Printer

func init() {
	err := SetLanguage("")
	if err != nil {
		log.Printf("ls8: locale: %v", err)
	}
}

// SetLanguage selects the language of translated text, as a BCP 47 tag.
// An empty tag selects the system locales.
func SetLanguage(tag string) (err error) {
	if len(tag) == 0 {
		var locales []string
		locales, err = locale.GetLocales()
		if len(locales) == 0 {
			locales = []string{Fallback}
		}
		printer = message.NewPrinter(message.MatchLanguage(locales...))
		return
	}

	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	printer = message.NewPrinter(lang)
	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
