package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	recipes  string
	logLevel string
	quiet    bool
	verbose  bool
}

// indexFlags holds flags for the index command.
type indexFlags struct {
	common       commonFlags
	output       string
	title        string
	formURL      string
	formURLSet   bool
	schema       string
	probeTimeout string
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common        commonFlags
	outputDir     string
	style         string
	dateFormat    string
	showSource    bool
	showSourceSet bool
	backLink      string
	pdf           bool
	timeout       string
}

// authorFlags holds flags for the author command.
type authorFlags struct {
	common       commonFlags
	createSample bool
	serve        bool
	host         string
	port         int
	portSet      bool
}

// searchFlags holds flags for the search command.
type searchFlags struct {
	common     commonFlags
	difficulty string
	time       string
	category   string
	limit      int
	json       bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.recipes, "recipes", "r", "", "directory holding the recipe XML files")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting and
// prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args and classifies failures as usage errors.
// flag.ErrHelp is returned as is.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// newIndexFlagSet registers the index command flags.
func newIndexFlagSet(w io.Writer) (*flag.FlagSet, *indexFlags) {
	f := &indexFlags{}
	fs := newFlagSet("index", w, printIndexUsage)

	fs.StringVarP(&f.output, "output", "o", "", "index page path")
	fs.StringVar(&f.title, "title", "", "index page heading")
	fs.StringVar(&f.formURL, "form-url", "", "authoring form URL (\"\" = never link)")
	fs.StringVar(&f.schema, "schema", "", "JSON Schema for recipe validation")
	fs.StringVar(&f.probeTimeout, "probe-timeout", "", "form reachability timeout (e.g., 1s)")
	addCommonFlags(fs, &f.common)
	return fs, f
}

// parseIndexFlags parses index command flags.
func parseIndexFlags(args []string, w io.Writer) (*indexFlags, error) {
	fs, f := newIndexFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: index takes no arguments, got %q", ErrUsage, fs.Args())
	}
	f.formURLSet = fs.Changed("form-url")
	return f, nil
}

// newRenderFlagSet registers the render command flags.
func newRenderFlagSet(w io.Writer) (*flag.FlagSet, *renderFlags) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for recipe pages")
	fs.StringVarP(&f.style, "style", "s", "", "recipe page style name")
	fs.StringVar(&f.dateFormat, "date-format", "", "created date format (e.g., long, iso, D MMMM YYYY)")
	fs.BoolVar(&f.showSource, "show-source", false, "append the highlighted XML source")
	fs.StringVar(&f.backLink, "back-link", "", "href of the link back to the index page")
	fs.BoolVar(&f.pdf, "pdf", false, "also print every page to PDF")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)
	return fs, f
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	fs, f := newRenderFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.showSourceSet = fs.Changed("show-source")
	return f, fs.Args(), nil
}

// newAuthorFlagSet registers the author command flags.
func newAuthorFlagSet(w io.Writer) (*flag.FlagSet, *authorFlags) {
	f := &authorFlags{}
	fs := newFlagSet("author", w, printAuthorUsage)

	fs.BoolVar(&f.createSample, "create-sample", false, "write the sample recipe and exit")
	fs.BoolVar(&f.serve, "serve", false, "run the authoring form server")
	fs.StringVar(&f.host, "host", "", "form server host")
	fs.IntVarP(&f.port, "port", "p", 0, "form server port")
	addCommonFlags(fs, &f.common)
	return fs, f
}

// parseAuthorFlags parses author command flags.
func parseAuthorFlags(args []string, w io.Writer) (*authorFlags, error) {
	fs, f := newAuthorFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: author takes no arguments, got %q", ErrUsage, fs.Args())
	}
	f.portSet = fs.Changed("port")
	return f, nil
}

// newSearchFlagSet registers the search command flags.
func newSearchFlagSet(w io.Writer) (*flag.FlagSet, *searchFlags) {
	f := &searchFlags{}
	fs := newFlagSet("search", w, printSearchUsage)

	fs.StringVarP(&f.difficulty, "difficulty", "d", "", "keep only this difficulty: easy, medium, hard")
	fs.StringVar(&f.time, "time", "", "keep only this cook time: quick, medium, long")
	fs.StringVar(&f.category, "category", "", "keep only this category")
	fs.IntVarP(&f.limit, "limit", "n", 0, "maximum number of results")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	addCommonFlags(fs, &f.common)
	return fs, f
}

// parseSearchFlags parses search command flags and returns the query words.
func parseSearchFlags(args []string, w io.Writer) (*searchFlags, []string, error) {
	fs, f := newSearchFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// newDoctorFlagSet registers the doctor command flags.
func newDoctorFlagSet(w io.Writer) (*flag.FlagSet, *doctorFlags) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", w, printDoctorUsage)

	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addCommonFlags(fs, &f.common)
	return fs, f
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	fs, f := newDoctorFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}
