// Package translate formats user-facing text for the z80emu packages in the
// language of the host locale.
package translate

import (
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DEFAULT_LOCALE is used when the host reports no locale at all.
const DEFAULT_LOCALE = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("z80emu: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintf translates an en-US Fprintf() format, and writes it to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return printer.Fprintf(w, key, args...)
}
