package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/config"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/errors"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/mapping"
)

// stubPrompt replaces the interactive prompt with canned answers
func stubPrompt(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var asked []string
	original := prompt
	prompt = func(message string) (string, error) {
		asked = append(asked, message)
		if len(answers) == 0 {
			return "", fmt.Errorf("interrupt")
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	t.Cleanup(func() { prompt = original })
	return &asked
}

func TestRunMappingCheck(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantErr   error
		wantLines []string
	}{
		{name: "valid", content: `{"octocat": "175928847299117063"}`},
		{
			name:      "bad ids",
			content:   `{"octocat": "octocat#1234", "hubot": "0", "ok": "175928847299117063"}`,
			wantErr:   errors.ErrMappingInvalid,
			wantLines: []string{`  [x] hubot: "0" is not a Discord user ID`, `  [x] octocat: "octocat#1234" is not a Discord user ID`},
		},
		{name: "malformed", content: `{`, wantErr: errors.ErrMappingInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLog(t)
			path := writeMapping(t, "users.json", tt.content)

			err := runMappingCheck(path)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("runMappingCheck() unexpected error: %v", err)
				}
				if !strings.Contains(out.String(), "1 mapping(s) OK") {
					t.Errorf("unexpected output: %s", out.String())
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("runMappingCheck() error = %v, want %v", err, tt.wantErr)
			}
			for _, want := range tt.wantLines {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, out.String())
				}
			}
			if strings.Contains(out.String(), "ok:") {
				t.Errorf("valid entries should not be reported: %s", out.String())
			}
		})
	}
}

func TestDefaultMappingFile(t *testing.T) {
	t.Setenv(config.EnvMappingFile, "")
	if got := defaultMappingFile(); got != config.DefaultMappingFile {
		t.Errorf("defaultMappingFile() = %s, want %s", got, config.DefaultMappingFile)
	}

	t.Setenv(config.EnvMappingFile, ".github/contributors.yaml")
	if got := defaultMappingFile(); got != ".github/contributors.yaml" {
		t.Errorf("defaultMappingFile() = %s, want the env value", got)
	}
}

func TestMappingCmdFlags(t *testing.T) {
	flag := mappingCmd.PersistentFlags().Lookup("mapping")
	if flag == nil {
		t.Fatal("mapping command is missing --mapping")
	}
	if flag.DefValue != assignCmd.Flags().Lookup("mapping").DefValue {
		t.Errorf("mapping and assign should share a --mapping default, got %q and %q",
			flag.DefValue, assignCmd.Flags().Lookup("mapping").DefValue)
	}
}

func TestRunMappingLookup(t *testing.T) {
	out := captureLog(t)
	path := writeMapping(t, "users.json", `{"octocat": "175928847299117063"}`)

	if err := runMappingLookup(path, "octocat"); err != nil {
		t.Fatalf("runMappingLookup() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "octocat -> 175928847299117063") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := runMappingLookup(path, "ghost"); err != nil {
		t.Fatalf("runMappingLookup() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No Discord user mapped for GitHub user 'ghost'") {
		t.Errorf("expected warning, got: %s", out.String())
	}
}

func TestRunMappingAdd(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		args      []string
		answers   []string
		wantAsked int
		want      map[string]string
		wantErr   error
	}{
		{
			name: "new file from args",
			args: []string{"octocat", "175928847299117063"},
			want: map[string]string{"octocat": "175928847299117063"},
		},
		{
			name:     "append to existing",
			existing: `{"hubot": "80351110224678912"}`,
			args:     []string{"octocat", "175928847299117063"},
			want:     map[string]string{"hubot": "80351110224678912", "octocat": "175928847299117063"},
		},
		{
			name:      "prompt for id",
			args:      []string{"octocat"},
			answers:   []string{"175928847299117063"},
			wantAsked: 1,
			want:      map[string]string{"octocat": "175928847299117063"},
		},
		{
			name:      "prompt for both",
			answers:   []string{"octocat", "175928847299117063"},
			wantAsked: 2,
			want:      map[string]string{"octocat": "175928847299117063"},
		},
		{
			name:    "invalid id",
			args:    []string{"octocat", "not-an-id"},
			wantErr: errors.ErrInvalidSnowflake,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)
			asked := stubPrompt(t, tt.answers...)

			path := filepath.Join(t.TempDir(), "users.json")
			if tt.existing != "" {
				path = writeMapping(t, "users.json", tt.existing)
			}

			err := runMappingAdd(path, tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("runMappingAdd() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("runMappingAdd() unexpected error: %v", err)
			}
			if len(*asked) != tt.wantAsked {
				t.Errorf("prompted %d time(s), want %d: %v", len(*asked), tt.wantAsked, *asked)
			}

			table, err := mapping.Load(path)
			if err != nil {
				t.Fatalf("mapping.Load() unexpected error: %v", err)
			}
			if !table.Equal(mapping.New(tt.want)) {
				got := map[string]string{}
				for _, u := range table.Users() {
					got[u], _ = table.Resolve(u)
				}
				t.Errorf("mapping mismatch (-want +got):\n%s", cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestRunMappingAdd_PromptCanceled(t *testing.T) {
	captureLog(t)
	stubPrompt(t)

	err := runMappingAdd(filepath.Join(t.TempDir(), "users.json"), nil)
	if err == nil || !strings.Contains(err.Error(), "mapping canceled") {
		t.Errorf("runMappingAdd() error = %v, want cancellation", err)
	}
}
