package cli

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"entractl/internal/graph"
	"entractl/internal/prompt"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	cmd.AddCommand(newAuthTokenCmd())
	cmd.AddCommand(newAuthWhoamiCmd())
	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Store an access token in the active profile",
		Long: `Store a Graph access token in the active configuration profile. The
token is read without echo when entered interactively. Token acquisition
itself is out of scope; paste one issued by your sign-in tooling.`,
		Example: `  # Paste a token interactively (hidden input)
  entractl auth token

  # Non-interactive
  entractl auth token --token "$ACCESS_TOKEN"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				var err error
				token, err = prompt.ReadSecret("Access token: ", os.Stdout)
				if err != nil {
					return err
				}
			}
			if token == "" {
				return fmt.Errorf("no token provided")
			}

			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{Profiles: make(map[string]Profile)}
			}
			profileName := cfg.CurrentProfile
			if profileName == "" {
				profileName = "default"
				cfg.CurrentProfile = profileName
			}
			p := cfg.Profiles[profileName]
			p.Token = token
			if cfg.Profiles == nil {
				cfg.Profiles = make(map[string]Profile)
			}
			cfg.Profiles[profileName] = p
			if err := SaveUserConfig(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Token saved to profile %q\n", profileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token (prompted when omitted)")

	return cmd
}

// tokenIdentity is the subset of access-token claims shown by whoami.
type tokenIdentity struct {
	TenantID          string `json:"tenant_id,omitempty"`
	ObjectID          string `json:"object_id,omitempty"`
	UserPrincipalName string `json:"upn,omitempty"`
	Name              string `json:"name,omitempty"`
	Expires           string `json:"expires,omitempty"`
}

func newAuthWhoamiCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the configured token",
		Long: `Decode the configured access token locally (without signature
verification) and show the tenant and principal claims. With --remote the
directory is asked instead via /me and /organization.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, _ := cmd.Root().PersistentFlags().GetString("token")
			host, _ := cmd.Root().PersistentFlags().GetString("host")

			if remote {
				client := graph.NewClient(host, token)
				me, err := client.Me(cmd.Context())
				if err != nil {
					return err
				}
				org, err := client.Organization(cmd.Context())
				if err != nil {
					return err
				}
				if getOutputFormat(cmd) == "json" {
					return printJSON(os.Stdout, map[string]interface{}{
						"user":   me,
						"tenant": org,
					})
				}
				_, _ = fmt.Fprintf(os.Stdout, "User:   %s (%s)\nTenant: %s (%s)\n",
					me.UserPrincipalName, me.ID, org.DisplayName, org.ID)
				return nil
			}

			if token == "" {
				return fmt.Errorf("no token configured; run 'entractl auth token' first")
			}
			id, err := decodeTokenIdentity(token)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, id)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Tenant:    %s\nObject id: %s\nUPN:       %s\nName:      %s\nExpires:   %s\n",
				id.TenantID, id.ObjectID, id.UserPrincipalName, id.Name, id.Expires)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the directory instead of decoding the token")

	return cmd
}

// decodeTokenIdentity parses the token claims without verifying the
// signature. Verification belongs to the resource server; here the
// claims only pre-fill display values.
func decodeTokenIdentity(token string) (*tokenIdentity, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	id := &tokenIdentity{}
	if v, ok := claims["tid"].(string); ok {
		id.TenantID = v
	}
	if v, ok := claims["oid"].(string); ok {
		id.ObjectID = v
	}
	if v, ok := claims["upn"].(string); ok {
		id.UserPrincipalName = v
	} else if v, ok := claims["preferred_username"].(string); ok {
		id.UserPrincipalName = v
	}
	if v, ok := claims["name"].(string); ok {
		id.Name = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.Expires = exp.UTC().String()
	}
	return id, nil
}
