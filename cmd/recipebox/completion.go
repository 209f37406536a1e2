package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/cooktime"
	"github.com/alnah/go-recipebox/internal/dateutil"
	"github.com/alnah/go-recipebox/internal/recipe"
)

// Shell is a shell that completion scripts can be generated for.
type Shell string

// Supported shells.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

var shells = []Shell{ShellBash, ShellZsh, ShellFish}

// ErrUnsupportedShell is returned for a shell without a generator.
var ErrUnsupportedShell = errors.New("unsupported shell")

// valueKind says what a flag's value completes to.
type valueKind int

const (
	valueNone  valueKind = iota // boolean flag, no value
	valueFree                   // any string or number
	valueEnum                   // one of Values
	valueFiles                  // files with one of Exts
	valueDir                    // a directory
)

// flagDef is one flag as the completion scripts see it.
type flagDef struct {
	Long   string
	Short  string
	Desc   string
	Kind   valueKind
	Values []string
	Exts   []string
}

// commandDef is one command as the completion scripts see it.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	// Args completes positional arguments: file extensions when ArgExts is
	// set, otherwise the fixed words in ArgWords.
	ArgExts  []string
	ArgWords []string
}

// valueHints maps flag names to their value completion. Flags absent from
// the map complete as free text, booleans take no value.
var valueHints = map[string]flagDef{
	"config":      {Kind: valueFiles, Exts: []string{"yaml", "yml"}},
	"recipes":     {Kind: valueDir},
	"output-dir":  {Kind: valueDir},
	"output":      {Kind: valueFiles, Exts: []string{"html"}},
	"schema":      {Kind: valueFiles, Exts: []string{"json"}},
	"log-level":   {Kind: valueEnum, Values: []string{"debug", "info", "warn", "error"}},
	"difficulty":  {Kind: valueEnum, Values: recipe.Difficulties},
	"category":    {Kind: valueEnum, Values: recipe.Categories},
	"time":        {Kind: valueEnum, Values: []string{cooktime.Quick, cooktime.Medium, cooktime.Long}},
	"style":       {Kind: valueEnum, Values: assets.RecipeStyles},
	"date-format": {Kind: valueEnum, Values: presetNames()},
}

func presetNames() []string {
	names := make([]string, 0, len(dateutil.Presets))
	for name := range dateutil.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// flagDefs reads the registered flags of fs. Registration is shared with
// the parsers, so the scripts always match what the commands accept.
func flagDefs(fs *flag.FlagSet) []flagDef {
	var defs []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		d := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage, Kind: valueFree}
		if f.Value.Type() == "bool" {
			d.Kind = valueNone
		} else if hint, ok := valueHints[f.Name]; ok {
			d.Kind, d.Values, d.Exts = hint.Kind, hint.Values, hint.Exts
		}
		defs = append(defs, d)
	})
	return defs
}

// commands lists every command with its flags.
func commands() []commandDef {
	indexFS, _ := newIndexFlagSet(io.Discard)
	renderFS, _ := newRenderFlagSet(io.Discard)
	authorFS, _ := newAuthorFlagSet(io.Discard)
	searchFS, _ := newSearchFlagSet(io.Discard)
	doctorFS, _ := newDoctorFlagSet(io.Discard)

	names := []string{"index", "render", "author", "search", "doctor", "version", "help", "completion"}
	shellNames := make([]string, len(shells))
	for i, s := range shells {
		shellNames[i] = string(s)
	}

	return []commandDef{
		{Name: "index", Desc: "Extract recipe metadata and write the index page", Flags: flagDefs(indexFS)},
		{Name: "render", Desc: "Render one HTML page per recipe", Flags: flagDefs(renderFS), ArgExts: []string{"xml"}},
		{Name: "author", Desc: "Write a sample recipe or serve the authoring form", Flags: flagDefs(authorFS)},
		{Name: "search", Desc: "Search recipes from the command line", Flags: flagDefs(searchFS)},
		{Name: "doctor", Desc: "Check recipes, schema, and browser setup", Flags: flagDefs(doctorFS)},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", ArgWords: names},
		{Name: "completion", Desc: "Generate a shell completion script", ArgWords: shellNames},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(commands())
	case ShellZsh:
		script = "#compdef recipebox\nautoload -U +X bashcompinit && bashcompinit\n" + bashScript(commands())
	case ShellFish:
		script = fishScript(commands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell, got %q", ErrUsage, args)
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func extGlob(exts []string) string {
	if len(exts) == 1 {
		return "!*." + exts[0]
	}
	return "!*.@(" + strings.Join(exts, "|") + ")"
}

func bashValue(d flagDef) string {
	switch d.Kind {
	case valueEnum:
		return fmt.Sprintf(`COMPREPLY=($(compgen -W %q -- "$cur"))`, strings.Join(d.Values, " "))
	case valueFiles:
		return fmt.Sprintf(`COMPREPLY=($(compgen -f -X '%s' -- "$cur"))`, extGlob(d.Exts))
	case valueDir:
		return `COMPREPLY=($(compgen -d -- "$cur"))`
	default:
		return "COMPREPLY=()"
	}
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}

	b.WriteString("# bash completion for recipebox\n")
	b.WriteString("_recipebox() {\n")
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\" prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n    fi\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var opts []string
		var valued []flagDef
		for _, f := range c.Flags {
			opts = append(opts, "--"+f.Long)
			if f.Short != "" {
				opts = append(opts, "-"+f.Short)
			}
			if f.Kind != valueNone {
				valued = append(valued, f)
			}
		}
		if len(valued) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, f := range valued {
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern += "|-" + f.Short
				}
				fmt.Fprintf(&b, "        %s) %s; return ;;\n", pattern, bashValue(f))
			}
			b.WriteString("        esac\n")
		}

		switch {
		case len(c.ArgExts) > 0:
			b.WriteString("        if [[ \"$cur\" != -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '%s' -- \"$cur\")); return\n", extGlob(c.ArgExts))
			b.WriteString("        fi\n")
		case len(c.ArgWords) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\")); return\n", strings.Join(c.ArgWords, " "))
		}
		if len(opts) > 0 {
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(opts, " "))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n}\n")
	b.WriteString("complete -F _recipebox recipebox\n")
	return b.String()
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for recipebox\n")
	b.WriteString("complete -c recipebox -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c recipebox -n __fish_use_subcommand -a %s -d %q\n", c.Name, c.Desc)
	}

	for _, c := range cmds {
		when := "__fish_seen_subcommand_from " + c.Name
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c recipebox -n %q -l %s", when, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Kind {
			case valueEnum:
				line += fmt.Sprintf(" -x -a %q", strings.Join(f.Values, " "))
			case valueFiles:
				line += " -r -F"
			case valueDir:
				line += ` -x -a "(__fish_complete_directories)"`
			case valueFree:
				line += " -x"
			}
			fmt.Fprintf(&b, "%s -d %q\n", line, f.Desc)
		}
		switch {
		case len(c.ArgExts) > 0:
			fmt.Fprintf(&b, "complete -c recipebox -n %q -F\n", when)
		case len(c.ArgWords) > 0:
			fmt.Fprintf(&b, "complete -c recipebox -n %q -a %q\n", when, strings.Join(c.ArgWords, " "))
		}
	}
	return b.String()
}
