package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

type noTokens struct{}

func (noTokens) Get() (string, error) { return "", domain.ErrNotLoggedIn }
func (noTokens) Set(string) error     { return nil }
func (noTokens) Delete() error        { return nil }

// resetFlags restores every flag to its default so state does not leak
// between executions of the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setupCmdTest points the app at a fresh home directory with notifications
// off and an unreachable backend.
func setupCmdTest(t *testing.T) {
	t.Helper()
	t.Setenv("SMOKEFREE_HOME", t.TempDir())
	t.Setenv("SMOKEFREE_NOTIFICATIONS_ENABLED", "false")
	t.Setenv("SMOKEFREE_API_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("SMOKEFREE_API_TIMEOUT", "2s")

	prev := newTokenStore
	newTokenStore = func() ports.TokenStore { return noTokens{} }
	resetFlags(rootCmd)
	t.Cleanup(func() {
		newTokenStore = prev
		resetFlags(rootCmd)
		_ = cleanupServices()
	})
}

// run executes args against the root command and fails the test on error.
func run(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(rootCmd)
	out, _, err := executeCmd(rootCmd, args...)
	if err != nil {
		t.Fatalf("%s failed: %v", strings.Join(args, " "), err)
	}
	return out
}

// runErr executes args and returns the error.
func runErr(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	_, _, err := executeCmd(rootCmd, args...)
	return err
}

func decodeObject(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var v map[string]interface{}
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}
	return v
}

func decodeList(t *testing.T, out string) []map[string]interface{} {
	t.Helper()
	var v []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("output is not a JSON list: %v\n%s", err, out)
	}
	return v
}

// TestRootCmd_Use verifies the command name
func TestRootCmd_Use(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}

	if rootCmd.Use != "smokefree" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "smokefree")
	}
}

// TestRootCmd_Help tests the --help flag
func TestRootCmd_Help(t *testing.T) {
	resetFlags(rootCmd)
	defer resetFlags(rootCmd)

	stdout, _, err := executeCmd(rootCmd, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	for _, want := range []string{"smokefree", "craving", "status"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// TestRootCmd_Flags tests that global flags are registered
func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"db", "json", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag should be registered", name)
		}
	}
}

// TestRootCmd_Subcommands tests that every command is wired
func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{
		"dashboard", "status", "graph", "milestone", "savings", "predict", "metric",
		"quit", "habits", "craving", "biometrics", "chat", "login", "logout",
		"account", "streak", "help-center", "support", "export", "reset",
		"serve", "mcp", "config",
	}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

// TestGetDir tests the getDir helper function
func TestGetDir(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/home/user/file.txt", "/home/user"},
		{"/home/user/", "/home/user"},
		{"file.txt", "."},
		{`C:\data\smokefree.db`, `C:\data`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := getDir(tt.path); got != tt.expected {
				t.Errorf("getDir(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestDayWord(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "0 days"},
		{1, "1 day"},
		{2, "2 days"},
	}
	for _, tt := range tests {
		if got := dayWord(tt.days); got != tt.want {
			t.Errorf("dayWord(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]int{"days": 3}); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}
	if got := buf.String(); got != "{\n  \"days\": 3\n}\n" {
		t.Errorf("printJSON output = %q", got)
	}
}
