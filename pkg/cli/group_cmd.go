package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"entractl/internal/convert"
	"entractl/internal/domain"
	"entractl/internal/graph"
	"entractl/internal/prompt"
)

func newGroupCmd(client *graph.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Directory group administration",
	}

	cmd.AddCommand(newGroupConvertCmd(client))
	cmd.AddCommand(newGroupShowCmd(client))

	return cmd
}

func newGroupConvertCmd(client *graph.Client) *cobra.Command {
	var (
		targetType string
		nickname   string
		dryRun     bool
		assumeYes  bool
		reportDir  string
	)

	cmd := &cobra.Command{
		Use:   "convert <display-name>",
		Short: "Convert a security group to a mail-enabled security or unified group",
		Long: `Convert a plain security group into a mail-enabled security group or a
unified group. When a group with the derived mail nickname already exists,
missing members are copied into it instead of creating a new group.
Members are only ever added, never removed.`,
		Example: `  # Convert to a mail-enabled security group
  entractl group convert "Contoso Sales Team"

  # Convert to a unified group, preview only
  entractl group convert "Contoso Sales Team" --type unified --dry-run

  # Non-interactive, custom nickname
  entractl group convert "123 Team" --nickname sales.team --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := domain.ParseTargetType(targetType)
			if err != nil {
				return err
			}
			deps := convert.Deps{
				Dir:    client,
				Prompt: prompt.New(os.Stdin, os.Stdout),
				Out:    os.Stdout,
				Log:    slog.Default(),
			}
			return convert.Run(cmd.Context(), deps, convert.Options{
				DisplayName: args[0],
				Nickname:    nickname,
				Target:      target,
				DryRun:      dryRun,
				AssumeYes:   assumeYes,
				ReportDir:   reportDir,
			})
		},
	}

	cmd.Flags().StringVarP(&targetType, "type", "t", string(domain.TargetMailEnabledSecurity),
		"Target group type: mesg or unified")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Mail nickname (derived from the display name when omitted)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing to the directory")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")
	cmd.Flags().StringVar(&reportDir, "report-dir", ".", "Directory the change report is written to")

	return cmd
}

func newGroupShowCmd(client *graph.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "show <display-name>",
		Short: "Show every group matching a display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := client.GroupsByDisplayName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				return domain.ErrNotFound("no group named %q", args[0])
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, groups)
			}
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{
					g.ID,
					g.DisplayName,
					g.MailNickname,
					fmt.Sprintf("%t", g.MailEnabled),
					fmt.Sprintf("%t", g.SecurityEnabled),
					strings.Join(g.GroupTypes, ","),
				})
			}
			return printTable(os.Stdout,
				[]string{"ID", "DISPLAY NAME", "NICKNAME", "MAIL", "SECURITY", "TYPES"}, rows)
		},
	}
}
