// Package translate prints the sentinel errors and verbose summaries of the
// pipe tool through a locale matched message printer. Messages are written
// as en-US Sprintf formats, which is also the last resort language.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("tda8425: locale: %v", err)
	}

	tag = message.MatchLanguage(append(locales, "en-US")...)
	printer = message.NewPrinter(tag)
}

// Language returns the tag messages are printed in.
func Language() language.Tag {
	return tag
}

// From formats an en-US Sprintf format in the matched language.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
