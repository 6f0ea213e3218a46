package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/style-remixer/internal/config"
	"github.com/jonathan/style-remixer/internal/server"
	"github.com/spf13/cobra"
)

var issueTokenOwner string

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue a bearer token for the preset API",
	Long: `Issue an HS256 token signed with JWT_SECRET. The token scopes presets and the current
configuration to an owner ID; a new owner is generated unless --owner is given.`,
	Args: cobra.NoArgs,
	RunE: runIssueToken,
}

func init() {
	issueTokenCmd.Flags().StringVar(&issueTokenOwner, "owner", "", "Owner UUID (default: new random owner)")
	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	owner := uuid.New()
	if issueTokenOwner != "" {
		owner, err = uuid.Parse(issueTokenOwner)
		if err != nil {
			return fmt.Errorf("invalid owner ID %q: %w", issueTokenOwner, err)
		}
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(owner)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Owner: %s (expires in %s)\n", owner, jwtConfig.Expiration())
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
