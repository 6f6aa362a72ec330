package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnana997/tokenspec/pkg/conflict"
	"github.com/gnana997/tokenspec/pkg/engine"
	mcpserver "github.com/gnana997/tokenspec/pkg/mcp"
	"github.com/gnana997/tokenspec/pkg/mcplog"
	"github.com/gnana997/tokenspec/pkg/pattern"
	"github.com/gnana997/tokenspec/pkg/source"
	"github.com/gnana997/tokenspec/pkg/token"
	"github.com/gnana997/tokenspec/pkg/util"
)

func buildLogger(level string) *slog.Logger {
	cfg := util.DefaultLoggerConfig()
	if level != "" {
		cfg.Level = level
	}
	return util.NewLogger(cfg)
}

// collectPaths expands each argument into token document paths. Directories
// are searched with the include/exclude globs; files are taken as-is. No
// arguments searches the current directory.
func collectPaths(args, include, exclude []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := source.Discover(arg, include, exclude)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no token documents found")
	}
	return paths, nil
}

func loadTokens(paths []string, logger *slog.Logger) ([]token.RawToken, error) {
	reader := util.NewFileReader(logger)
	tokens, errs := source.LoadAll(paths, reader, source.LoaderOptions{Logger: logger})
	for _, err := range errs {
		logger.Warn("skipping token document", "error", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens loaded from %d document(s)", len(paths))
	}
	return tokens, nil
}

// writeJSON writes v as indented JSON to outPath, or stdout when empty.
func writeJSON(v any, outPath string) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Println(string(b))
		return nil
	}
	return os.WriteFile(outPath, append(b, '\n'), 0644)
}

var validSeparators = map[string]bool{
	string(token.SeparatorSlash):      true,
	string(token.SeparatorDot):        true,
	string(token.SeparatorHyphen):     true,
	string(token.SeparatorUnderscore): true,
	string(token.SeparatorNone):       true,
}

var validCases = map[string]bool{
	string(token.CaseKebab):          true,
	string(token.CaseCamel):          true,
	string(token.CasePascal):         true,
	string(token.CaseSnake):          true,
	string(token.CaseScreamingSnake): true,
}

// resolvePattern builds the pattern override from flags and config. Returns
// nil when neither specifies anything, which lets detection run.
func resolvePattern(sep, caseStyle string, cfg *ProjectConfig) (*token.Pattern, error) {
	if cfg != nil && cfg.Pattern != nil {
		sep = resolveString(sep, cfg.Pattern.Separator, "")
		caseStyle = resolveString(caseStyle, cfg.Pattern.Case, "")
	}
	if sep == "" && caseStyle == "" {
		return nil, nil
	}

	p := token.DefaultPattern()
	if sep != "" {
		if !validSeparators[sep] {
			return nil, fmt.Errorf("invalid separator %q (use /, ., -, _ or none)", sep)
		}
		p.Separator = token.Separator(sep)
	}
	if caseStyle != "" {
		if !validCases[caseStyle] {
			return nil, fmt.Errorf("invalid case style %q (use kebab, camel, pascal, snake or screaming-snake)", caseStyle)
		}
		p.Case = token.CaseStyle(caseStyle)
	}
	return &p, nil
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	out := fs.String("out", "", "write result to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(resolveString(*logLevel, configLogLevel(cfg), ""))

	paths, err := collectPaths(fs.Args(), configInclude(cfg), configExclude(cfg))
	if err != nil {
		return err
	}
	tokens, err := loadTokens(paths, logger)
	if err != nil {
		return err
	}

	names := make([]string, len(tokens))
	for i := range tokens {
		names[i] = tokens[i].Name
	}
	return writeJSON(pattern.Detect(names), *out)
}

func runNormalize(args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	strategy := fs.String("strategy", "", "conflict resolution strategy")
	sep := fs.String("separator", "", "target separator override")
	caseStyle := fs.String("case", "", "target case style override")
	validate := fs.Bool("validate", false, "drop tokens whose names cannot be normalized")
	out := fs.String("out", "", "write result to file instead of stdout")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(resolveString(*logLevel, configLogLevel(cfg), ""))

	ecfg := engine.DefaultConfig()
	ecfg.Validate = *validate

	strategyName := resolveString(*strategy, configStrategy(cfg), string(conflict.StrategyVariablesPriority))
	ecfg.Strategy, err = conflict.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	ecfg.TargetPattern, err = resolvePattern(*sep, *caseStyle, cfg)
	if err != nil {
		return err
	}

	paths, err := collectPaths(fs.Args(), configInclude(cfg), configExclude(cfg))
	if err != nil {
		return err
	}
	tokens, err := loadTokens(paths, logger)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Options{Logger: logger})
	result, err := eng.Run(tokens, ecfg)
	if err != nil {
		return err
	}
	return writeJSON(result, *out)
}

func runConflicts(args []string) error {
	fs := flag.NewFlagSet("conflicts", flag.ExitOnError)
	sep := fs.String("separator", "", "target separator override")
	caseStyle := fs.String("case", "", "target case style override")
	out := fs.String("out", "", "write result to file instead of stdout")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(resolveString(*logLevel, configLogLevel(cfg), ""))

	ecfg := engine.DefaultConfig()
	ecfg.TargetPattern, err = resolvePattern(*sep, *caseStyle, cfg)
	if err != nil {
		return err
	}

	paths, err := collectPaths(fs.Args(), configInclude(cfg), configExclude(cfg))
	if err != nil {
		return err
	}
	tokens, err := loadTokens(paths, logger)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Options{Logger: logger})
	normalized := eng.NormalizeTokens(tokens, ecfg)
	detection := conflict.Detect(normalized.Tokens)

	return writeJSON(struct {
		Pattern   token.Pattern             `json:"pattern"`
		Detection *conflict.DetectionResult `json:"detection"`
		Warnings  []string                  `json:"warnings,omitempty"`
	}{
		Pattern:   normalized.Pattern,
		Detection: detection,
		Warnings:  normalized.Warnings,
	}, *out)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	mcpLog := fs.String("mcp-log", "", "path for the JSONL tool call log")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(resolveString(*logLevel, configLogLevel(cfg), ""))

	mlog, err := mcplog.NewLogger(resolveString(*mcpLog, configMCPLog(cfg), ""))
	if err != nil {
		return err
	}
	if mlog != nil {
		defer mlog.Close()
	}

	eng := engine.New(engine.Options{Logger: logger})
	srv := mcpserver.NewServer(eng, mlog)

	logger.Info("starting MCP server", "version", version)
	return srv.ServeStdio()
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	strategy := fs.String("strategy", "", "conflict resolution strategy")
	out := fs.String("out", "", "write results to file on every change")
	debounce := fs.Int("debounce", 0, "debounce window in milliseconds")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(resolveString(*logLevel, configLogLevel(cfg), ""))

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	ecfg := engine.DefaultConfig()
	strategyName := resolveString(*strategy, configStrategy(cfg), string(conflict.StrategyVariablesPriority))
	ecfg.Strategy, err = conflict.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Options{Logger: logger})

	rerun := func() {
		paths, err := collectPaths([]string{root}, configInclude(cfg), configExclude(cfg))
		if err != nil {
			logger.Warn("nothing to process", "error", err)
			return
		}
		tokens, err := loadTokens(paths, logger)
		if err != nil {
			logger.Warn("load failed", "error", err)
			return
		}
		result, err := eng.Run(tokens, ecfg)
		if err != nil {
			logger.Error("pipeline failed", "error", err)
			return
		}
		if *out != "" {
			if err := writeJSON(result, *out); err != nil {
				logger.Error("write failed", "path", *out, "error", err)
				return
			}
		}
		logger.Info("pipeline run complete",
			"tokens", len(result.Tokens),
			"conflicts", len(result.Detection.Conflicts),
			"warnings", len(result.Warnings))
	}

	rerun()

	watcher, err := source.NewWatcher(func(path string) {
		logger.Info("token document changed", "path", path)
		rerun()
	}, source.WatchOptions{
		Include:    configInclude(cfg),
		DebounceMs: *debounce,
	}, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(root); err != nil {
		return err
	}
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

// Config accessors tolerant of a nil config.

func configStrategy(cfg *ProjectConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.Strategy
}

func configLogLevel(cfg *ProjectConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.LogLevel
}

func configMCPLog(cfg *ProjectConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.MCPLog
}

func configInclude(cfg *ProjectConfig) []string {
	if cfg == nil {
		return nil
	}
	return cfg.Include
}

func configExclude(cfg *ProjectConfig) []string {
	if cfg == nil {
		return nil
	}
	return cfg.Exclude
}
