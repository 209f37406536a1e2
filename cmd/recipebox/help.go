package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipebox <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  index      Extract recipe metadata and write the index page")
	fmt.Fprintln(w, "  render     Render one HTML page (and optionally a PDF) per recipe")
	fmt.Fprintln(w, "  author     Write a sample recipe or serve the authoring form")
	fmt.Fprintln(w, "  search     Search recipes from the command line")
	fmt.Fprintln(w, "  doctor     Check recipes, schema, and browser setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate a shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'recipebox help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -r, --recipes <dir>       Recipe XML directory (default: recipes)")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "  -h, --help                Show this help")
}

// printEnvUsage prints the recognized environment variables.
func printEnvUsage(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RECIPEBOX_CONFIG          Config file name or path")
	fmt.Fprintln(w, "  RECIPEBOX_FORM_URL        Authoring form URL probed by index")
	fmt.Fprintln(w, "  RECIPEBOX_LOG_LEVEL       Log level")
}

// printIndexUsage prints usage for the index command.
func printIndexUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipebox index [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Extract metadata from every recipe file and write a self-contained")
	fmt.Fprintln(w, "index page with search and filter chips. The page links to the authoring")
	fmt.Fprintln(w, "form only when the form server answers.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Index:")
	fmt.Fprintln(w, "  -o, --output <path>       Index page path (default: web/recipe-box.html)")
	fmt.Fprintln(w, "      --title <s>           Page heading (default: Recipe Box)")
	fmt.Fprintln(w, "      --form-url <url>      Authoring form URL; \"\" never links")
	fmt.Fprintln(w, "      --probe-timeout <d>   Form reachability timeout (default: 1s)")
	fmt.Fprintln(w, "      --schema <path>       JSON Schema (default: schemas/recipe.schema.json)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	printEnvUsage(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipebox render [flags] [file.xml...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each recipe to <output-dir>/<name>.html. Without arguments every")
	fmt.Fprintln(w, "file of the recipes directory is rendered. A failing file is reported")
	fmt.Fprintln(w, "and the others are still written; the exit code is then non-zero.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render:")
	fmt.Fprintln(w, "  -o, --output-dir <dir>    Page directory (default: web/recipes)")
	fmt.Fprintln(w, "  -s, --style <name>        Page style: warm, plain (default: warm)")
	fmt.Fprintln(w, "      --date-format <s>     Created date format (default: long)")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --show-source         Append the highlighted XML source")
	fmt.Fprintln(w, "      --back-link <href>    Link back to the index (default: computed)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also print every page to <name>.pdf")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-page timeout (default: 30s)")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Use an installed Chrome")
	fmt.Fprintln(w, "  CI=true                   Run Chrome without its sandbox")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printAuthorUsage prints usage for the author command.
func printAuthorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipebox author --create-sample | --serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write new recipe files into the recipes directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Modes:")
	fmt.Fprintln(w, "      --create-sample       Write the sample recipe and exit")
	fmt.Fprintln(w, "      --serve               Serve the authoring form until interrupted")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --host <s>            Listen host (default: 127.0.0.1)")
	fmt.Fprintln(w, "  -p, --port <n>            Listen port (default: 8000)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printSearchUsage prints usage for the search command.
func printSearchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipebox search [flags] [query...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Search titles, descriptions, and tags. Without a query every recipe")
	fmt.Fprintln(w, "passing the filters is listed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Filters:")
	fmt.Fprintln(w, "  -d, --difficulty <s>      easy, medium, hard")
	fmt.Fprintln(w, "      --time <s>            quick (<= 30 min), medium, long (> 60 min)")
	fmt.Fprintln(w, "      --category <s>        Category slug, e.g. main-course")
	fmt.Fprintln(w, "  -n, --limit <n>           Maximum results (default: 20)")
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipebox doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the recipes directory, schema, form server, and browser setup.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCompletionUsage prints usage for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: recipebox completion <bash|zsh|fish>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print a shell completion script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Install:")
	fmt.Fprintln(w, "  bash  eval \"$(recipebox completion bash)\"   (in ~/.bashrc)")
	fmt.Fprintln(w, "  zsh   eval \"$(recipebox completion zsh)\"    (in ~/.zshrc)")
	fmt.Fprintln(w, "  fish  recipebox completion fish > ~/.config/fish/completions/recipebox.fish")
}

// runHelp prints help for a command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "index":
		printIndexUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "author":
		printAuthorUsage(env.Stdout)
	case "search":
		printSearchUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: recipebox version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: recipebox help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		fmt.Fprintln(env.Stderr)
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
