// Package translate formats user-facing text for the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DEFAULT_LANGUAGE is used when no host locale can be determined.
const DEFAULT_LANGUAGE = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("cpusim: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the printer language from a list of BCP 47 tags,
// best match first. An empty list selects DEFAULT_LANGUAGE.
func SetLanguage(tags ...string) {
	if len(tags) == 0 {
		tags = []string{DEFAULT_LANGUAGE}
	}

	printer = message.NewPrinter(message.MatchLanguage(tags...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
