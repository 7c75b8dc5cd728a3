package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// serverName is the key the MCP server is registered under in agent configs.
const serverName = "widgetspec"

type agentMethod string

const (
	methodCLI  agentMethod = "cli"
	methodFile agentMethod = "file"
)

// agentDef describes how to find one AI agent and register the server with it.
type agentDef struct {
	ID          string
	DisplayName string
	Method      agentMethod
	Binary      string        // cli agents: binary on PATH
	DirMarkers  []string      // file agents: project dirs that indicate presence
	ConfigPath  func() string // file agents: config file location
	ServersKey  string
	ExtraFields map[string]string
}

type detectedAgent struct {
	Def            agentDef
	AlreadySetup   bool
	ResolvedConfig string
}

type setupOptions struct {
	auto    bool
	only    []string
	catalog string
}

// Swapped out in tests.
var (
	lookPathFunc = exec.LookPath
	statFunc     = os.Stat
	runAgentCLI  = func(w io.Writer, bin string, args ...string) error {
		c := exec.Command(bin, args...)
		c.Stdout = w
		c.Stderr = w
		return c.Run()
	}
)

var agentRegistry = []agentDef{
	{ID: "claude_code", DisplayName: "Claude Code", Method: methodCLI, Binary: "claude"},
	{ID: "openai_codex", DisplayName: "OpenAI Codex", Method: methodCLI, Binary: "codex"},
	{
		ID: "vscode_copilot", DisplayName: "VS Code Copilot", Method: methodFile,
		DirMarkers:  []string{".vscode"},
		ConfigPath:  func() string { return filepath.Join(".vscode", "mcp.json") },
		ServersKey:  "servers",
		ExtraFields: map[string]string{"type": "stdio"},
	},
	{
		ID: "cursor", DisplayName: "Cursor", Method: methodFile,
		DirMarkers: []string{".cursor"},
		ConfigPath: func() string { return filepath.Join(".cursor", "mcp.json") },
		ServersKey: "mcpServers",
	},
	{
		ID: "claude_desktop", DisplayName: "Claude Desktop", Method: methodFile,
		ConfigPath: claudeDesktopConfigPath,
		ServersKey: "mcpServers",
	},
}

func claudeDesktopConfigPath() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
	default:
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}
}

func newSetupCmd(env *environment) *cobra.Command {
	opts := &setupOptions{}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register the widgetspec MCP server with detected AI agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.catalog == "" {
				opts.catalog = env.catalogPath()
			}
			if opts.catalog != "" {
				abs, err := filepath.Abs(opts.catalog)
				if err != nil {
					return err
				}
				opts.catalog = abs
			}
			return executeSetup(cmd.InOrStdin(), cmd.OutOrStdout(), *opts)
		},
	}

	cmd.Flags().BoolVar(&opts.auto, "auto", false, "Configure every detected agent without prompting")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "Limit setup to these agent ids")
	cmd.Flags().StringVar(&opts.catalog, "catalog-arg", "", "Catalog path passed to 'widgetspec serve' (default: the active catalog)")

	return cmd
}

// detectAgents returns the registered agents that look installed, in registry order.
func detectAgents(only []string) []detectedAgent {
	var detected []detectedAgent

	for _, def := range agentRegistry {
		if len(only) > 0 && !slices.Contains(only, def.ID) {
			continue
		}

		switch def.Method {
		case methodCLI:
			if _, err := lookPathFunc(def.Binary); err == nil {
				detected = append(detected, detectedAgent{
					Def:          def,
					AlreadySetup: hasServerEntry(".mcp.json", "mcpServers"),
				})
			}

		case methodFile:
			configPath, found := "", false
			for _, marker := range def.DirMarkers {
				if _, err := statFunc(marker); err == nil {
					found = true
					configPath = def.ConfigPath()
					break
				}
			}
			// Agents with a global config count as present when its directory exists.
			if !found && len(def.DirMarkers) == 0 {
				configPath = def.ConfigPath()
				if _, err := statFunc(filepath.Dir(configPath)); err == nil {
					found = true
				}
			}
			if found {
				detected = append(detected, detectedAgent{
					Def:            def,
					ResolvedConfig: configPath,
					AlreadySetup:   hasServerEntry(configPath, def.ServersKey),
				})
			}
		}
	}

	return detected
}

func hasServerEntry(configPath, serversKey string) bool {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return false
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return false
	}
	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		return false
	}
	_, exists := servers[serverName]
	return exists
}

// serveArgs is the argument list an agent uses to launch the server.
func serveArgs(catalogPath string) []string {
	args := []string{"serve"}
	if catalogPath != "" {
		args = append(args, "--catalog", catalogPath)
	}
	return args
}

func serverEntry(catalogPath string, extra map[string]string) map[string]any {
	args := serveArgs(catalogPath)
	anyArgs := make([]any, len(args))
	for i, a := range args {
		anyArgs[i] = a
	}
	entry := map[string]any{
		"command": serverName,
		"args":    anyArgs,
	}
	for k, v := range extra {
		entry[k] = v
	}
	return entry
}

// mergeServerEntry adds the widgetspec entry under serversKey of an agent
// config, keeping every other key. It returns nil, nil when the entry
// already exists.
func mergeServerEntry(existing []byte, serversKey, catalogPath string, extra map[string]string) ([]byte, error) {
	config := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &config); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers[serverName]; exists {
		return nil, nil
	}
	servers[serverName] = serverEntry(catalogPath, extra)
	config[serversKey] = servers

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func configureCLIAgent(w io.Writer, def agentDef, scope, catalogPath string) error {
	args := []string{"mcp", "add"}
	if scope != "" {
		args = append(args, "--scope", scope)
	}
	args = append(args, serverName, "--", serverName)
	args = append(args, serveArgs(catalogPath)...)
	return runAgentCLI(w, def.Binary, args...)
}

func configureFileAgent(def agentDef, configPath, catalogPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	existing, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", configPath, err)
	}

	merged, err := mergeServerEntry(existing, def.ServersKey, catalogPath, def.ExtraFields)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}
	if merged == nil {
		return nil
	}
	return os.WriteFile(configPath, merged, 0o644)
}

// promptYesNo defaults to yes on empty input or EOF.
func promptYesNo(in *bufio.Scanner, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s ", question)
	if !in.Scan() {
		return true
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "" || answer == "y" || answer == "yes"
}

// promptScope returns "project", "user", or "" to skip.
func promptScope(in *bufio.Scanner, w io.Writer, agentName string) string {
	fmt.Fprintf(w, "\n%s: add the %s MCP server?\n", agentName, serverName)
	fmt.Fprintln(w, "  [1] Project scope (shared with team)")
	fmt.Fprintln(w, "  [2] User scope (personal, global)")
	fmt.Fprintln(w, "  [3] Skip")
	fmt.Fprint(w, "  > ")

	if !in.Scan() {
		return "project"
	}
	switch strings.TrimSpace(in.Text()) {
	case "1", "":
		return "project"
	case "2":
		return "user"
	default:
		return ""
	}
}

// executeSetup detects agents and configures them. A failure on one agent is
// reported and counted; the rest are still attempted.
func executeSetup(r io.Reader, w io.Writer, opts setupOptions) error {
	detected := detectAgents(opts.only)
	if len(detected) == 0 {
		fmt.Fprintln(w, "No supported AI agents detected.")
		return nil
	}

	fmt.Fprintln(w, "Detected AI agents:")
	for _, d := range detected {
		suffix := ""
		if d.AlreadySetup {
			suffix = " (already configured)"
		}
		fmt.Fprintf(w, "  * %s%s\n", d.Def.DisplayName, suffix)
	}
	fmt.Fprintln(w)

	in := bufio.NewScanner(r)
	if !opts.auto && !promptYesNo(in, w, "Configure agents? [Y/n]") {
		return nil
	}

	failed := 0
	for _, d := range detected {
		if d.AlreadySetup {
			fmt.Fprintf(w, "%s: already configured, skipping\n", d.Def.DisplayName)
			continue
		}
		if err := configureOneAgent(in, w, d, opts); err != nil {
			failed++
			fmt.Fprintf(w, "  ! %s: failed: %v\n", d.Def.DisplayName, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d agent(s) could not be configured", failed)
	}
	return nil
}

func configureOneAgent(in *bufio.Scanner, w io.Writer, d detectedAgent, opts setupOptions) error {
	switch d.Def.Method {
	case methodCLI:
		scope := "project"
		if !opts.auto {
			if scope = promptScope(in, w, d.Def.DisplayName); scope == "" {
				fmt.Fprintln(w, "  skipped")
				return nil
			}
		}
		if err := configureCLIAgent(w, d.Def, scope, opts.catalog); err != nil {
			return err
		}
		fmt.Fprintf(w, "  + %s configured (scope: %s)\n", d.Def.DisplayName, scope)

	case methodFile:
		if !opts.auto && !promptYesNo(in, w, fmt.Sprintf("\n%s: add to %s? [Y/n]", d.Def.DisplayName, d.ResolvedConfig)) {
			fmt.Fprintln(w, "  skipped")
			return nil
		}
		if err := configureFileAgent(d.Def, d.ResolvedConfig, opts.catalog); err != nil {
			return err
		}
		fmt.Fprintf(w, "  + %s configured (%s)\n", d.Def.DisplayName, d.ResolvedConfig)
	}
	return nil
}
