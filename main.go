package main

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/mattn/go-isatty"

	"git.sr.ht/~nmls/nm-livesearch/app"
	"git.sr.ht/~nmls/nm-livesearch/config"
	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/lib/sort"
	"git.sr.ht/~nmls/nm-livesearch/lib/xdg"
	"git.sr.ht/~nmls/nm-livesearch/worker"
	"git.sr.ht/~nmls/nm-livesearch/worker/lib"
)

// set at build time
var (
	Version string
	Flags   string
)

func buildInfo() string {
	info := Version
	flags, _ := base64.StdEncoding.DecodeString(Flags)
	if strings.Contains(string(flags), "notmuch") {
		info += " +notmuch"
	}
	info += fmt.Sprintf(" (%s %s %s)",
		runtime.Version(), runtime.GOARCH, runtime.GOOS)
	return info
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `usage: nm-livesearch [-s oldest|newest|message-id|unsorted] [-H days]
              [-c config] [-S source] [-e entry-fmt] [-r response-fmt]
              [-d date-fmt] [-l highlight-json] [-L log-level] [-h] [-v]
              <command> [args...]

commands:
  messages <search...>                  flat list of matching messages
  threads <search...>                   flat list of matching threads
  messages-before <id> [search...]      messages leading to <id>
  messages-after <id> [search...]       replies below <id>
  show-tree <search...>                 rendered threads
  show-single-tree <search...>          first match of each thread
  show-message <search...>              matched messages in date order
  show-thread <search...>               one rendered line per thread

default config file: %s
`, xdg.TildeHome(xdg.ConfigFile()))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error: "+err.Error())
	os.Exit(1)
}

func main() {
	defer log.PanicHandler()
	opts, optind, err := getopt.Getopts(os.Args, "s:H:c:S:e:r:d:l:L:hv")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		usage(os.Stderr)
		os.Exit(1)
	}
	log.BuildInfo = buildInfo()

	configPath := xdg.ConfigFile()
	for _, opt := range opts {
		switch opt.Option {
		case 'v':
			fmt.Println("nm-livesearch " + log.BuildInfo)
			return
		case 'h':
			usage(os.Stdout)
			return
		case 'c':
			configPath = xdg.ExpandHome(opt.Value)
		}
	}

	conf, err := config.Load(configPath)
	if err != nil {
		fail(err)
	}
	if err := applyFlags(conf, opts); err != nil {
		fail(err)
	}
	if err := initLogging(conf.General); err != nil {
		fail(err)
	}
	log.Debugf("nm-livesearch %s", log.BuildInfo)

	args := os.Args[optind:]
	if len(args) == 0 {
		usage(os.Stderr)
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	err = run(conf, args[0], args[1:], out)
	if ferr := out.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	if err != nil {
		fail(err)
	}
}

// applyFlags overrides the configuration with command line values.
func applyFlags(conf *config.Config, opts []getopt.Option) error {
	var err error
	for _, opt := range opts {
		switch opt.Option {
		case 's':
			conf.Ui.Sort, err = sort.Parse(opt.Value)
		case 'H':
			conf.Ui.HumanizeLimit, err = strconv.Atoi(opt.Value)
			if err != nil {
				err = fmt.Errorf("-H: %w", err)
			}
		case 'S':
			conf.General.Source = opt.Value
		case 'e':
			conf.Ui.EntryFormat = opt.Value
		case 'r':
			conf.Ui.ResponseFormat = opt.Value
		case 'd':
			conf.Ui.DateFormat = opt.Value
		case 'l':
			conf.Ui.Highlight = opt.Value
		case 'L':
			conf.General.LogLevel, err = log.ParseLevel(opt.Value)
		}
		if err != nil {
			return err
		}
	}
	return conf.Validate()
}

// initLogging sends logs to the configured file, else to stderr when it is
// a terminal. Stdout only carries records.
func initLogging(gen *config.GeneralConfig) error {
	var logFile io.Writer
	switch {
	case gen.LogFile != "":
		f, err := os.OpenFile(xdg.ExpandHome(gen.LogFile),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("log-file: %w", err)
		}
		logFile = f
	case isatty.IsTerminal(os.Stderr.Fd()):
		logFile = os.Stderr
	}
	log.Init(logFile, gen.LogLevel)
	return nil
}

var commands = map[string]bool{
	"messages":         true,
	"threads":          true,
	"messages-before":  true,
	"messages-after":   true,
	"show-tree":        true,
	"show-single-tree": true,
	"show-message":     true,
	"show-thread":      true,
}

func run(conf *config.Config, command string, args []string, w io.Writer) error {
	if !commands[command] {
		return fmt.Errorf("unknown command %q", command)
	}
	tmpl, err := conf.Ui.Template()
	if err != nil {
		return err
	}
	hl, err := conf.Ui.HighlightSpec()
	if err != nil {
		return err
	}
	store, err := worker.NewStore(conf.General.Source,
		conf.General.ExcludeTags, conf.General.ThreadBySubject)
	if err != nil {
		return err
	}
	defer store.Close()

	var qmap *lib.QueryMap
	if conf.General.QueryMap != "" {
		qmap, err = lib.LoadQueryMap(xdg.ExpandHome(conf.General.QueryMap))
		if err != nil {
			return fmt.Errorf("query-map: %w", err)
		}
	}

	rt := app.NewRuntime(store, conf.Ui.Sort, tmpl, hl)
	search := qmap.Expand(strings.Join(args, " "))
	log.Debugf("%s %q sort=%s", command, search, conf.Ui.Sort)

	switch command {
	case "messages":
		return rt.Messages(search, w)
	case "threads":
		return rt.Threads(search, w)
	case "messages-before", "messages-after":
		if len(args) == 0 {
			return fmt.Errorf("%s: missing message id", command)
		}
		filter := qmap.Expand(strings.Join(args[1:], " "))
		if command == "messages-before" {
			return rt.ShowBefore(args[0], filter, w)
		}
		return rt.ShowAfter(args[0], filter, w)
	case "show-tree":
		return rt.ShowTree(search, w)
	case "show-single-tree":
		return rt.ShowSingle(search, w)
	case "show-message":
		return rt.ShowMessages(search, w)
	case "show-thread":
		return rt.ShowThreads(search, w)
	}
	return fmt.Errorf("unknown command %q", command)
}
