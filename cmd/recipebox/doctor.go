package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-recipebox/internal/config"
	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/hints"
	"github.com/alnah/go-recipebox/internal/index"
	"github.com/alnah/go-recipebox/internal/pdf"
	"github.com/alnah/go-recipebox/internal/recipe"
	"github.com/alnah/go-recipebox/internal/schema"
)

// chromeVersionTimeout bounds the chrome --version call.
const chromeVersionTimeout = 5 * time.Second

// Overall doctor verdicts.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the doctor report, printed as text or JSON.
type doctorResult struct {
	Status string `json:"status"`
	Config struct {
		Source string `json:"source"` // file path, or "defaults"
	} `json:"config"`
	Recipes struct {
		Dir   string `json:"dir"`
		Found bool   `json:"found"`
		Count int    `json:"count"`
	} `json:"recipes"`
	Schema struct {
		Path   string `json:"path"`
		Loaded bool   `json:"loaded"`
	} `json:"schema"`
	Form struct {
		URL       string `json:"url,omitempty"`
		Reachable bool   `json:"reachable"`
	} `json:"form"`
	Chrome struct {
		Found   bool   `json:"found"`
		Path    string `json:"path,omitempty"`
		Version string `json:"version,omitempty"`
		Sandbox bool   `json:"sandbox"`
	} `json:"chrome"`
	Env struct {
		OS            string `json:"os"`
		Arch          string `json:"arch"`
		Container     bool   `json:"container"`
		ContainerHint string `json:"container_hint,omitempty"`
		CI            bool   `json:"ci"`
		BrowserBin    string `json:"rod_browser_bin"`
	} `json:"environment"`
	TempWritable bool     `json:"temp_writable"`
	Warnings     []string `json:"warnings,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd runs the checks and reports them. Warnings still exit 0;
// any error exits 1.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f, err := parseDoctorFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err == nil {
		var cfg *config.Config
		if cfg, err = loadConfig(&f.common, env); err == nil {
			return reportDoctor(ctx, f, cfg, env)
		}
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}

func reportDoctor(ctx context.Context, f *doctorFlags, cfg *config.Config, env *Environment) int {
	r := runDoctor(ctx, cfg, configSource(&f.common, loadEnvConfig(env.Getenv)), env.Getenv)

	if f.json {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return ExitGeneral
		}
		fmt.Fprintln(env.Stdout, string(data))
	} else {
		printDoctorResult(env.Stdout, r)
	}

	if r.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor checks the configuration, the inputs, and the browser setup.
func runDoctor(ctx context.Context, cfg *config.Config, source string, getenv func(string) string) *doctorResult {
	r := &doctorResult{}
	r.Config.Source = source
	if source == "" {
		r.Config.Source = "defaults"
	}
	r.Env.OS, r.Env.Arch = runtime.GOOS, runtime.GOARCH
	r.Env.BrowserBin = getenv("ROD_BROWSER_BIN")

	if err := cfg.Validate(); err != nil {
		r.fail("Config: %v", err)
	}
	checkRecipes(r, cfg.Recipes.Dir)
	checkSchema(r, cfg.Schema.Path)
	checkForm(ctx, r, cfg)
	checkChrome(ctx, r, getenv)
	checkEnvironment(r, getenv)
	checkTempDir(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkRecipes counts the record files of the recipes directory.
func checkRecipes(r *doctorResult, dir string) {
	r.Recipes.Dir = dir
	if !fileutil.DirExists(dir) {
		r.fail("Recipes directory %s not found%s", dir, hints.ForRecipesDir(dir))
		return
	}
	r.Recipes.Found = true

	paths, err := fileutil.ListByExtension(dir, recipe.FileExtension)
	if err != nil {
		r.fail("Recipes directory unreadable: %v", err)
		return
	}
	if r.Recipes.Count = len(paths); r.Recipes.Count == 0 {
		r.warn("No recipe files in %s; index will be empty", dir)
	}
}

// checkSchema compiles the configured schema. A missing file is only a
// warning since validation is optional.
func checkSchema(r *doctorResult, path string) {
	r.Schema.Path = path
	v, err := schema.Load(path)
	switch {
	case err != nil:
		r.fail("Schema: %v", err)
	case v == nil:
		r.warn("Schema %s not found; recipes will not be validated", path)
	default:
		r.Schema.Loaded = true
	}
}

// checkForm probes the authoring form the way index does.
func checkForm(ctx context.Context, r *doctorResult, cfg *config.Config) {
	r.Form.URL = cfg.Index.FormURL
	if r.Form.URL != "" {
		r.Form.Reachable = index.Probe(ctx, r.Form.URL, cfg.ProbeTimeout())
	}
}

// checkChrome looks for a browser. Only render --pdf needs one, and rod
// can download it, so a missing browser is a warning.
func checkChrome(ctx context.Context, r *doctorResult, getenv func(string) string) {
	r.Chrome.Sandbox = !pdf.OptionsFromEnv(getenv).NoSandbox

	bin := r.Env.BrowserBin
	if bin == "" {
		found := false
		if bin, found = launcher.LookPath(); !found {
			r.warn("Chrome/Chromium not found. render --pdf downloads Chromium on first use, or set ROD_BROWSER_BIN")
			return
		}
	} else if !fileutil.FileExists(bin) {
		r.fail("ROD_BROWSER_BIN points at %s, which does not exist", bin)
		return
	}
	r.Chrome.Found, r.Chrome.Path = true, bin

	ctx, cancel := context.WithTimeout(ctx, chromeVersionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, bin, "--version").Output() // #nosec G204 -- browser path from ROD_BROWSER_BIN or rod's lookup
	if err != nil {
		r.warn("Could not get Chrome version: %v", err)
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

// checkEnvironment flags a sandboxed browser inside a container or CI,
// where Chrome usually cannot start with its sandbox on.
func checkEnvironment(r *doctorResult, getenv func(string) string) {
	r.Env.Container, r.Env.ContainerHint = isContainer(getenv)
	r.Env.CI = hints.InCI(getenv)

	if (r.Env.Container || r.Env.CI) && r.Chrome.Sandbox {
		r.warn("Container/CI detected but the Chrome sandbox is on. Set CI=true or ROD_BROWSER_BIN")
	}
}

// isContainer returns whether a container was detected and by which signal.
func isContainer(getenv func(string) string) (bool, string) {
	switch {
	case loadEnvConfig(getenv).Container:
		return true, "RECIPEBOX_CONTAINER=1"
	case hints.IsInContainer():
		return true, "/.dockerenv"
	case getenv("container") != "":
		// set by podman and systemd-nspawn
		return true, "container=" + getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkTempDir verifies the browser can write its profile.
func checkTempDir(r *doctorResult) {
	f, err := os.CreateTemp("", "recipebox-doctor-*")
	if err != nil {
		r.fail("Temp directory %s not writable: %v", os.TempDir(), err)
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	r.TempWritable = true
}

// reportLine is one checked item of the text report.
type reportLine struct {
	level string // OK, WARN, ERROR
	text  string
}

func okIf(ok bool, failLevel string) string {
	if ok {
		return "OK"
	}
	return failLevel
}

// reportSection is a heading with its lines.
type reportSection struct {
	title string
	lines []reportLine
}

// reportSections lays the result out under headings.
func reportSections(r *doctorResult) []reportSection {
	recipes := []reportLine{
		{"OK", "Config: " + r.Config.Source},
		{okIf(r.Recipes.Found, "ERROR"), fmt.Sprintf("Directory: %s (%d files)", r.Recipes.Dir, r.Recipes.Count)},
		{okIf(r.Schema.Loaded, "WARN"), "Schema: " + r.Schema.Path},
	}
	switch {
	case r.Form.URL == "":
		recipes = append(recipes, reportLine{"OK", "Form link: disabled"})
	case r.Form.Reachable:
		recipes = append(recipes, reportLine{"OK", "Form: " + r.Form.URL + " reachable"})
	default:
		recipes = append(recipes, reportLine{"OK", "Form: " + r.Form.URL + " not running (index omits the link)"})
	}

	chrome := []reportLine{{okIf(r.Chrome.Found, "WARN"), "Browser: " + orNone(r.Chrome.Path)}}
	if r.Chrome.Version != "" {
		chrome = append(chrome, reportLine{"OK", "Version: " + r.Chrome.Version})
	}
	sandbox := "disabled"
	if r.Chrome.Sandbox {
		sandbox = "enabled"
	}
	chrome = append(chrome, reportLine{"OK", "Sandbox: " + sandbox})

	system := []reportLine{{"OK", "Platform: " + r.Env.OS + "/" + r.Env.Arch}}
	if r.Env.Container {
		system = append(system, reportLine{"OK", "Container: " + r.Env.ContainerHint})
	}
	if r.Env.CI {
		system = append(system, reportLine{"OK", "CI: detected"})
	}
	system = append(system, reportLine{okIf(r.TempWritable, "ERROR"), "Temp directory: " + os.TempDir()})

	return []reportSection{
		{"Recipes", recipes},
		{"Chrome/Chromium (render --pdf)", chrome},
		{"Environment", system},
	}
}

func orNone(s string) string {
	if s == "" {
		return "not found"
	}
	return s
}

// printDoctorResult writes the text report.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "recipebox doctor")
	for _, sec := range reportSections(r) {
		fmt.Fprintf(w, "\n%s\n", sec.title)
		for _, l := range sec.lines {
			fmt.Fprintf(w, "  [%s] %s\n", l.level, l.text)
		}
	}

	for _, group := range []struct {
		title, level string
		items        []string
	}{
		{"Warnings:", "WARN", r.Warnings},
		{"Errors:", "ERROR", r.Errors},
	} {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", group.title)
		for _, item := range group.items {
			fmt.Fprintf(w, "  [%s] %s\n", group.level, item)
		}
	}

	verdict := map[string]string{
		statusReady:    "Ready",
		statusWarnings: "Ready with warnings",
		statusErrors:   "Not ready (see errors above)",
	}[r.Status]
	fmt.Fprintf(w, "\nStatus: %s\n", verdict)
}
