// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"keydrill/internal/config"
	"keydrill/internal/keys"
	"keydrill/internal/model"
	"keydrill/internal/report"
	"keydrill/internal/session"
	"keydrill/internal/stats"
	"keydrill/internal/statsui"
	"keydrill/internal/store"
	"keydrill/internal/texts"
	"keydrill/internal/tui"
)

const (
	defaultRefreshMs   = 100
	defaultCurveWindow = 20
)

var (
	practiceText        string
	practiceTextsDir    string
	practiceKeys        []string
	practiceShowStats   bool
	practiceStatsFields []string
	practiceRefreshMs   int

	statsText        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Terminal typing practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceText, "text", "", "reference text name or path (default: built-in)")
	rootCmd.Flags().StringVar(&practiceTextsDir, "texts-dir", "", "directory with reference texts")
	rootCmd.Flags().StringSliceVar(&practiceKeys, "keys", nil, "allowed keys (empty: all keys)")
	rootCmd.Flags().BoolVar(&practiceShowStats, "show-stats", true, "show live stats footer")
	rootCmd.Flags().StringSliceVar(&practiceStatsFields, "stats-fields", nil, "live stats fields (speed, accuracy, time, errors, errors-left, chars)")
	rootCmd.Flags().IntVar(&practiceRefreshMs, "refresh-ms", defaultRefreshMs, "live stats refresh interval in milliseconds")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTextsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newReportCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "text", &practiceText, fileCfg.Practice.Text)
	applyStringConfig(cmd, "texts-dir", &practiceTextsDir, fileCfg.Practice.TextsDir)
	applyStringSliceConfig(cmd, "keys", &practiceKeys, fileCfg.Practice.Keys)
	applyBoolConfig(cmd, "show-stats", &practiceShowStats, fileCfg.Practice.ShowStats)
	applyStringSliceConfig(cmd, "stats-fields", &practiceStatsFields, fileCfg.Practice.StatsFields)
	applyIntConfig(cmd, "refresh-ms", &practiceRefreshMs, fileCfg.Practice.RefreshMs)

	if practiceTextsDir == "" {
		practiceTextsDir = config.DefaultTextsDir()
	}

	cfg := model.Config{
		Text:        practiceText,
		TextsDir:    practiceTextsDir,
		Keys:        practiceKeys,
		ShowStats:   practiceShowStats,
		StatsFields: practiceStatsFields,
		RefreshMs:   practiceRefreshMs,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	label, content, err := texts.Load(cfg.TextsDir, cfg.Text)
	if err != nil {
		return textLoadError(cfg.Text, cfg.TextsDir, err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sink := session.SinkFunc(func(rec model.SessionRecord, rep model.Report) error {
		var problems []string
		if err := st.InsertSession(context.Background(), rec); err != nil {
			problems = append(problems, fmt.Sprintf("history: %v", err))
		}
		if err := report.Write(config.DefaultReportPath(), rep, rec.EndedAt, rec.ID); err != nil {
			problems = append(problems, fmt.Sprintf("report: %v", err))
		}
		if len(problems) > 0 {
			return fmt.Errorf("%s", strings.Join(problems, "; "))
		}
		return nil
	})

	ctrl := session.New(keys.NewPolicy(cfg.Keys), sink)
	if err := ctrl.LoadReference(label, content); err != nil {
		return fmt.Errorf("failed to load reference text: %w", err)
	}

	program := tea.NewProgram(tui.NewModel(cfg, ctrl), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newTextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "texts",
		Short: "List available reference texts",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	dir := practiceTextsDir
	if dir == "" {
		dir = config.DefaultTextsDir()
	}
	names, err := texts.List(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsText, "text", "", "text filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print to stdout instead of the TUI")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Text:        statsText,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return runPlainStats(st, cfg)
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func runPlainStats(st *store.Store, cfg model.StatsConfig) error {
	records, err := st.ListSessions(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if err := stats.RenderSummary(os.Stdout, records); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderHistoryTable(os.Stdout, records); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	window := cfg.CurveWindow
	if window <= 0 {
		window = 1
	}
	curveWidth := stats.TerminalWidth() - 20
	if err := stats.RenderCurves(os.Stdout, records, window, curveWidth); err != nil {
		return fmt.Errorf("failed to render curves: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [path]",
		Short: "Print the last saved session report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReportCmd,
	}
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	path := config.DefaultReportPath()
	if len(args) == 1 {
		path = args[0]
	}
	saved, err := report.Read(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	lines := []string{
		"Typing Statistics",
		strings.Repeat("=", 50),
		"",
		fmt.Sprintf("Total Errors Made: %d", saved.Report.TotalErrors),
		fmt.Sprintf("Errors Left (Unfixed): %d", saved.Report.ErrorsLeft),
		fmt.Sprintf("Total Time: %s", report.FormatDuration(saved.Report.Seconds)),
		fmt.Sprintf("Accuracy: %.2f%%", saved.Report.Accuracy),
		fmt.Sprintf("Speed: %.2f words per minute", saved.Report.SpeedWPM),
	}
	if !saved.Generated.IsZero() {
		lines = append(lines, fmt.Sprintf("Generated: %s", saved.Generated.Format(time.RFC1123)))
	}
	if saved.SessionID != "" {
		lines = append(lines, fmt.Sprintf("Session: %s", saved.SessionID))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target *[]string, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# text = "default"                  # Reference text name or path
# texts-dir = ""                    # Directory with reference texts
# keys = ["a", "s", "d", "f"]       # Allowed keys (empty: all keys)
# show-stats = true                 # Show live stats footer
# stats-fields = [%s]               # Live stats fields
# refresh-ms = %d                   # Live stats refresh interval
`,
		`"speed", "accuracy", "time", "errors", "errors-left", "chars"`,
		defaultRefreshMs,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.RefreshMs <= 0 {
		return fmt.Errorf("--refresh-ms must be > 0")
	}
	for _, field := range cfg.StatsFields {
		if !model.KnownStatsField(field) {
			return fmt.Errorf("unknown stats field %q (known: %s)", field, strings.Join(model.StatsFields, ", "))
		}
	}
	for _, key := range cfg.Keys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("--keys entries must not be empty")
		}
	}
	return nil
}

func textLoadError(name, dir string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load reference text: %v", err),
		fmt.Sprintf("looked in: %s", dir),
		"List available texts: keydrill texts",
		"Add a text: drop a .txt file into the texts directory",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
