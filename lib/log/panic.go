package log

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"
)

// BuildInfo is printed by -v and in crash reports.
var BuildInfo string

// PanicHandler writes a crash report with the stack trace to a file in the
// temporary directory and to stderr, then re-raises the panic.
func PanicHandler() {
	r := recover()
	if r == nil {
		return
	}

	filename := time.Now().Format("nm-livesearch-crash-20060102-150405.log")
	filename = strings.TrimRight(os.TempDir(), "/") + "/" + filename

	crashLog, err := os.OpenFile(filename,
		os.O_SYNC|os.O_APPEND|os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		panic(r)
	}
	defer crashLog.Close()

	outputs := io.MultiWriter(crashLog, os.Stderr)
	fmt.Fprintln(crashLog, strings.Repeat("#", 80))
	fmt.Fprintf(crashLog, "nm-livesearch %s\n", BuildInfo)
	fmt.Fprintln(crashLog, time.Now().Format("2006-01-02T15:04:05.000000-0700"))
	fmt.Fprintln(crashLog, strings.Repeat("#", 80))
	fmt.Fprintf(outputs, "nm-livesearch crashed: %v\n", r)
	crashLog.Write(debug.Stack()) //nolint:errcheck // best effort
	fmt.Fprintf(os.Stderr, "\nThe stack trace was written to: %s\n", filename)
	panic(r)
}
