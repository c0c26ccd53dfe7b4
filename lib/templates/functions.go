package templates

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

func zeroPad(n int, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// pad fills s with spaces up to width display cells. Longer values are
// kept whole.
func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

var subjectFixer = strings.NewReplacer("\r", " ", "\n", " ")

func fixSubject(subject string) string {
	return subjectFixer.Replace(subject)
}
