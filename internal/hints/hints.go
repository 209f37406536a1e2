// Package hints builds the follow-up advice appended to command errors.
// Every hint renders as "\n  hint: <text>" so it lines up under the error.
package hints

import (
	"strconv"
	"strings"

	"github.com/alnah/go-recipebox/internal/fileutil"
)

const prefix = "\n  hint: "

// IsInContainer reports whether /.dockerenv exists. Tests replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVars are set by the CI systems we know of.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether any known CI variable is set.
func InCI(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// join renders parts as one hint line; no parts render nothing.
func join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}

// ForBrowserConnect explains how to get Chrome running for PDF export.
// The sandbox advice only shows in containers or CI where neither CI=true
// nor ROD_BROWSER_BIN already turned the sandbox off.
func ForBrowserConnect(getenv func(string) string) string {
	bin := getenv("ROD_BROWSER_BIN")

	var sandbox, install string
	if (InCI(getenv) || IsInContainer()) && getenv("CI") != "true" && bin == "" {
		sandbox = "set CI=true to run Chrome without its sandbox"
	}
	if bin == "" {
		install = "set ROD_BROWSER_BIN to use an installed Chrome"
	}
	return join(sandbox, install, "HTML pages are written even when PDF export fails")
}

// ForTimeout suggests a longer page timeout.
func ForTimeout() string {
	return join("for slow machines, raise --timeout")
}

// ForConfigNotFound points at --config, and at the per-user config file
// when one of the searched paths is under a .config directory.
func ForConfigNotFound(searched []string) string {
	create := ""
	for _, p := range searched {
		if strings.Contains(p, ".config") && strings.Contains(p, "recipebox") {
			create = " or create " + p
			break
		}
	}
	return join("use --config /path/to/file.yaml" + create)
}

// ForOutputDirectory covers output files that could not be written.
func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// ForRecipesDir covers a missing recipes directory.
func ForRecipesDir(dir string) string {
	return join("create "+dir+" or point --recipes at your recipe files",
		"recipebox author --create-sample writes a first one")
}

// ForStyleNotFound lists the styles that can be used instead.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

// ForAddressInUse suggests the next port, wrapping to 8080 past the range.
func ForAddressInUse(port int) string {
	next := port + 1
	if port <= 0 || next > 65535 {
		next = 8080
	}
	return join("port "+strconv.Itoa(port)+" is busy",
		"try --port "+strconv.Itoa(next)+" and set RECIPEBOX_FORM_URL so index links to it")
}
