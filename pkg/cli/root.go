// Package cli implements the entractl command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"entractl/internal/graph"
)

var (
	version = "dev"
	commit  = "none"
)

// defaultHost is the Graph endpoint used when no flag, env, or profile
// overrides it.
const defaultHost = "https://graph.microsoft.com"

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]interface{}{
				"error": err.Error(),
			}
			var apiErr *graph.APIError
			if errors.As(err, &apiErr) {
				errObj["http_status"] = apiErr.StatusCode
				errObj["code"] = apiErr.Code
			}
			_ = printJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host     string
		token    string
		output   string
		profile  string
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:           "entractl",
		Short:         "Entra directory administration CLI",
		Long:          "Command-line tooling for directory group conversion and PIM role activation.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", defaultHost, "Graph API host URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer access token")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	client := graph.NewClient(host, token)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// Precedence: flag > env > profile > default. Every persistent
		// flag maps to ENTRACTL_<NAME>; env values apply only when the
		// flag was not given explicitly.
		flags := cmd.Root().PersistentFlags()
		envSet := map[string]bool{}
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				return
			}
			key := "ENTRACTL_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if v := os.Getenv(key); v != "" {
				if err := f.Value.Set(v); err == nil {
					envSet[f.Name] = true
				}
			}
		})

		// Profile config is optional.
		cfg, err := LoadUserConfig()
		if err != nil {
			cfg = &UserConfig{
				CurrentProfile: "default",
				Profiles:       map[string]Profile{},
			}
		}
		p := cfg.ActiveProfile(profile)

		if !flags.Changed("host") && !envSet["host"] && p.Host != "" {
			host = p.Host
		}
		if !flags.Changed("token") && !envSet["token"] && p.Token != "" {
			token = p.Token
		}
		if !flags.Changed("output") && !envSet["output"] && p.Output != "" {
			output = p.Output
		}

		if err := validateOutputFormat(output); err != nil {
			return err
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(logLevel),
		})))

		client.BaseURL = strings.TrimRight(host, "/")
		client.Token = token
		return nil
	}

	rootCmd.AddCommand(newGroupCmd(client))
	rootCmd.AddCommand(newRoleCmd(client))
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
