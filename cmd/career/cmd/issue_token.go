package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ismail-dev-code/career-linker-server/internal/auth"
	"github.com/ismail-dev-code/career-linker-server/internal/config"
)

var (
	issueEmail    string
	issueDuration time.Duration
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Mint a session token for local testing",
	Long: `Sign a session token with SECRET_KEY and print it.

Send it as the session cookie to reach recruiter routes without going through POST /jwt.

Example:
  career issue-token --email hr@acme.test --ttl 30m`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		return runIssueToken(cfg.Auth, issueEmail, issueDuration, cmd.OutOrStdout())
	},
}

func init() {
	issueTokenCmd.Flags().StringVar(&issueEmail, "email", "", "email carried by the session (required)")
	issueTokenCmd.Flags().DurationVar(&issueDuration, "ttl", 0, "token lifetime (default: $SESSION_TTL)")
	_ = issueTokenCmd.MarkFlagRequired("email")
}

func runIssueToken(cfg config.AuthConfig, email string, ttl time.Duration, out io.Writer) error {
	if email == "" {
		return fmt.Errorf("--email is required")
	}
	if ttl <= 0 {
		ttl = cfg.SessionTTL
	}

	manager := auth.NewSessionManager(cfg.SecretKey, cfg.Issuer, cfg.SessionTTL, nil)
	token, claims, err := manager.IssueWithDuration(email, map[string]interface{}{"email": email}, ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, token)
	fmt.Fprintf(out, "# cookie %s, expires %s\n", cfg.CookieName, claims.ExpiresAt.Time.Format(time.RFC3339))
	return nil
}
