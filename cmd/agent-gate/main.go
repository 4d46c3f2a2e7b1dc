package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/michael-freling/agent-gate/internal/config"
	"github.com/michael-freling/agent-gate/internal/hooks"
	"github.com/michael-freling/agent-gate/internal/ignore"
	"github.com/michael-freling/agent-gate/internal/logger"
	"github.com/michael-freling/agent-gate/internal/paths"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agent-gate",
		Short: "Pre-execution file access gate for coding agent tool calls",
		Long:  `A CLI tool that decides, before a coding agent's file-touching tool call executes, whether the target path may be accessed. Policy comes from per-tool ignore files at the project root plus built-in protections for common secret files.`,
	}

	rootCmd.AddCommand(
		newPreToolUseCmd(),
		newCheckCmd(),
		newPatternsCmd(),
		newInitCmd(),
	)

	return rootCmd
}

// resolveRoot picks the project root for one invocation: the --root flag
// when set, the cwd field of the hook payload when present, the working
// directory otherwise.
func resolveRoot(flagRoot, payloadCWD string) (string, error) {
	if flagRoot != "" {
		return flagRoot, nil
	}
	if payloadCWD != "" {
		return payloadCWD, nil
	}
	return os.Getwd()
}

// loadPatterns builds the merged pattern set for root, logging every
// degraded source as a warning. The set is rebuilt on each invocation;
// there is no cross-call cache to invalidate.
func loadPatterns(root string, log *logger.Logger) *ignore.PatternSet {
	cfg, warn := config.Load(root)
	if warn != "" {
		log.Warn("%s", warn)
	}

	opts := ignore.LoadOptions{ExtraPatterns: cfg.ExtraPatterns}
	if !cfg.DisableDefaultProtections {
		opts.DefaultPatterns = ignore.DefaultProtectedPatterns()
	}

	set, warnings := ignore.LoadPatternSet(root, opts)
	for _, w := range warnings {
		if w.Line > 0 {
			log.Warn("%s:%d: skipping pattern %q: %s", w.Source, w.Line, w.Pattern, w.Message)
		} else {
			log.Warn("%s: %s", w.Source, w.Message)
		}
	}
	return set
}

func newPreToolUseCmd() *cobra.Command {
	var flagRoot string

	cmd := &cobra.Command{
		Use:   "pre-tool-use",
		Short: "Decide a tool call before it executes",
		Long:  `Reads one tool call from stdin as JSON and writes the pre-action decision object to stdout: {"event":"pre-action","decision":"allow"} or {"event":"pre-action","decision":"deny","reason":"..."}.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toolInput, err := hooks.ParseToolInput(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to parse tool input: %w", err)
			}

			root, err := resolveRoot(flagRoot, toolInput.CWD)
			if err != nil {
				return fmt.Errorf("failed to determine project root: %w", err)
			}

			log := logger.NewStderr(logger.LevelWarn)
			rule := hooks.NewFileAccessRule(root, paths.NewResolver(), loadPatterns(root, log))

			result, err := hooks.NewRuleEngine(rule).Evaluate(toolInput)
			if err != nil {
				return fmt.Errorf("failed to evaluate rules: %w", err)
			}

			return hooks.NewPreActionResponse(result).Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flagRoot, "root", "", "project root (default: payload cwd, else working directory)")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var flagRoot string
	var flagTool string

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Evaluate paths against the current policy",
		Long:  `Evaluates each path as if the given tool were about to touch it and prints the verdict with the pattern that decided it.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(flagRoot, "")
			if err != nil {
				return fmt.Errorf("failed to determine project root: %w", err)
			}

			log := logger.NewStderr(logger.LevelWarn)
			rule := hooks.NewFileAccessRule(root, paths.NewResolver(), loadPatterns(root, log))
			engine := hooks.NewRuleEngine(rule)

			colored := isatty.IsTerminal(os.Stdout.Fd())
			denials := 0
			for _, path := range args {
				input, err := syntheticToolInput(flagTool, path)
				if err != nil {
					return err
				}

				result, err := engine.Evaluate(input)
				if err != nil {
					return fmt.Errorf("failed to evaluate %s: %w", path, err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), formatVerdict(path, result, colored))
				if !result.Allowed {
					denials++
				}
			}

			if denials > 0 {
				os.Exit(2)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagRoot, "root", "", "project root (default: working directory)")
	cmd.Flags().StringVar(&flagTool, "tool", "Write", "tool kind to evaluate as")
	return cmd
}

// syntheticToolInput builds the payload the host runtime would send for
// one tool call, so check shares the exact decision path.
func syntheticToolInput(tool, path string) (*hooks.ToolInput, error) {
	payload, err := json.Marshal(map[string]any{
		"tool_name":  tool,
		"tool_input": map[string]string{"file_path": path},
	})
	if err != nil {
		return nil, err
	}
	return hooks.ParseToolInput(strings.NewReader(string(payload)))
}

func formatVerdict(path string, result *hooks.RuleResult, colored bool) string {
	if result.Allowed {
		verdict := "allow"
		if colored {
			verdict = color.GreenString(verdict)
		}
		return fmt.Sprintf("%s  %s", verdict, path)
	}

	verdict := "deny"
	if colored {
		verdict = color.RedString(verdict)
	}
	return fmt.Sprintf("%s   %s  (%s)", verdict, path, result.Reason)
}

func newPatternsCmd() *cobra.Command {
	var flagRoot string

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Print the merged pattern list in precedence order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(flagRoot, "")
			if err != nil {
				return fmt.Errorf("failed to determine project root: %w", err)
			}

			log := logger.NewStderr(logger.LevelWarn)
			set := loadPatterns(root, log)

			for i, p := range set.Patterns() {
				var flags []string
				if p.Negated {
					flags = append(flags, "negated")
				}
				if p.Anchored {
					flags = append(flags, "anchored")
				}
				if p.DirOnly {
					flags = append(flags, "dir-only")
				}

				line := fmt.Sprintf("%3d  %-24s %s", i+1, p.Source, p.Raw)
				if len(flags) > 0 {
					line += "  [" + strings.Join(flags, ",") + "]"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagRoot, "root", "", "project root (default: working directory)")
	return cmd
}

func newInitCmd() *cobra.Command {
	var flagRoot string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + config.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(flagRoot, "")
			if err != nil {
				return fmt.Errorf("failed to determine project root: %w", err)
			}

			if err := config.Save(root, config.Config{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagRoot, "root", "", "project root (default: working directory)")
	return cmd
}
