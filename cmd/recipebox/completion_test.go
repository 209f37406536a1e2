package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion - Script content
// ---------------------------------------------------------------------------

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell Shell
		want  []string
	}{
		{
			shell: ShellBash,
			want: []string{
				"complete -F _recipebox recipebox",
				"index render author search doctor version help completion",
				"--difficulty|-d) COMPREPLY=($(compgen -W \"easy medium hard\"",
				"--config|-c) COMPREPLY=($(compgen -f -X '!*.@(yaml|yml)'",
				"--output-dir|-o) COMPREPLY=($(compgen -d",
				"compgen -f -X '!*.xml'",
			},
		},
		{
			shell: ShellZsh,
			want:  []string{"#compdef recipebox", "bashcompinit", "complete -F _recipebox recipebox"},
		},
		{
			shell: ShellFish,
			want: []string{
				"complete -c recipebox -f",
				"-a render -d \"Render one HTML page per recipe\"",
				"-l style -s s -x -a \"warm plain\"",
				"-l time -x -a \"quick medium long\"",
				"-a \"bash zsh fish\"",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%s) error: %v", tt.shell, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	err := GenerateCompletion(&bytes.Buffer{}, "tcsh")
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
}

func TestFlagDefs_MatchParsers(t *testing.T) {
	t.Parallel()

	for _, c := range commands() {
		if c.Name != "render" {
			continue
		}
		kinds := map[string]valueKind{}
		for _, f := range c.Flags {
			kinds[f.Long] = f.Kind
		}
		want := map[string]valueKind{
			"pdf":         valueNone,
			"show-source": valueNone,
			"timeout":     valueFree,
			"style":       valueEnum,
			"output-dir":  valueDir,
			"config":      valueFiles,
		}
		for name, kind := range want {
			got, ok := kinds[name]
			if !ok {
				t.Errorf("render flag --%s missing", name)
				continue
			}
			if got != kind {
				t.Errorf("--%s kind = %d, want %d", name, got, kind)
			}
		}
		return
	}
	t.Fatal("render command not listed")
}

// ---------------------------------------------------------------------------
// TestCompletionCmd - Dispatch
// ---------------------------------------------------------------------------

func TestCompletionCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "usage", args: []string{"completion"}, wantCode: ExitSuccess, wantStdout: "Usage: recipebox completion"},
		{name: "bash", args: []string{"completion", "bash"}, wantCode: ExitSuccess, wantStdout: "_recipebox()"},
		{name: "unknown shell", args: []string{"completion", "tcsh"}, wantCode: ExitUsage, wantStderr: "unsupported shell"},
		{name: "two shells", args: []string{"completion", "bash", "fish"}, wantCode: ExitUsage, wantStderr: "one shell"},
		{name: "help", args: []string{"help", "completion"}, wantCode: ExitSuccess, wantStdout: "completions/recipebox.fish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			if got := env.run(tt.args...); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", got, tt.wantCode, env.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantStderr)
			}
		})
	}
}
