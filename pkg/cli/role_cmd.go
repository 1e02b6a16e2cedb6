package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"entractl/internal/graph"
	"entractl/internal/pim"
	"entractl/internal/prompt"
)

func newRoleCmd(client *graph.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Privileged role (PIM) self-service",
	}

	cmd.AddCommand(newRoleActivateCmd(client))
	cmd.AddCommand(newRoleListCmd(client))

	return cmd
}

// resolvePrincipal returns the explicit override or the signed-in user's id.
func resolvePrincipal(ctx context.Context, client *graph.Client, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	me, err := client.Me(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve signed-in user: %w", err)
	}
	return me.ID, nil
}

func newRoleActivateCmd(client *graph.Client) *cobra.Command {
	var principal string

	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Interactively activate an eligible role",
		Long: `List the signed-in user's eligible role assignments together with the
currently active ones, then submit a 4-hour self-activation request for a
selected role with a supplied justification.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			principalID, err := resolvePrincipal(cmd.Context(), client, principal)
			if err != nil {
				return err
			}
			deps := pim.Deps{
				Roles:  client,
				Prompt: prompt.New(os.Stdin, os.Stdout),
				Out:    os.Stdout,
				Log:    slog.Default(),
			}
			return pim.Run(cmd.Context(), deps, principalID)
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "Principal id (defaults to the signed-in user)")

	return cmd
}

func newRoleListCmd(client *graph.Client) *cobra.Command {
	var principal string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List eligible and active role assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			principalID, err := resolvePrincipal(ctx, client, principal)
			if err != nil {
				return err
			}

			eligible, err := client.EligibilitySchedules(ctx, principalID)
			if err != nil {
				return fmt.Errorf("list eligible roles: %w", err)
			}
			active, err := client.AssignmentSchedules(ctx, principalID)
			if err != nil {
				return fmt.Errorf("list active roles: %w", err)
			}

			now := time.Now()
			if getOutputFormat(cmd) == "json" {
				type activeRole struct {
					RoleDefinitionID string `json:"roleDefinitionId"`
					DisplayName      string `json:"displayName,omitempty"`
					Expiry           string `json:"expiry"`
				}
				out := struct {
					Eligible interface{}  `json:"eligible"`
					Active   []activeRole `json:"active"`
				}{Eligible: eligible}
				for _, s := range active {
					name := ""
					if s.RoleDefinition != nil {
						name = s.RoleDefinition.DisplayName
					}
					out.Active = append(out.Active, activeRole{
						RoleDefinitionID: s.RoleDefinitionID,
						DisplayName:      name,
						Expiry:           pim.Classify(s, now).String(),
					})
				}
				return printJSON(os.Stdout, out)
			}

			rows := make([][]string, 0, len(eligible)+len(active))
			for _, s := range eligible {
				name := s.RoleDefinitionID
				if s.RoleDefinition != nil && s.RoleDefinition.DisplayName != "" {
					name = s.RoleDefinition.DisplayName
				}
				rows = append(rows, []string{"eligible", name, s.DirectoryScopeID, ""})
			}
			for _, s := range active {
				name := s.RoleDefinitionID
				if s.RoleDefinition != nil && s.RoleDefinition.DisplayName != "" {
					name = s.RoleDefinition.DisplayName
				}
				rows = append(rows, []string{"active", name, s.DirectoryScopeID, pim.Classify(s, now).String()})
			}
			return printTable(os.Stdout, []string{"STATE", "ROLE", "SCOPE", "EXPIRY"}, rows)
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "Principal id (defaults to the signed-in user)")

	return cmd
}
