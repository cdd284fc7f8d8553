package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ismail-dev-code/career-linker-server/internal/config"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
)

var cleanDBForce bool

var cleanDBCmd = &cobra.Command{
	Use:   "clean-db",
	Short: "Delete every job and application",
	Long: `Delete every stored job and application document.

This action is irreversible. The command asks for confirmation unless --yes is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		store, err := database.Open(cfg.Database, config.NewLogger(cfg.Logging))
		if err != nil {
			return fmt.Errorf("database failed to initialize: %w", err)
		}
		defer func() { _ = store.Close() }()

		return runCleanDB(cmd.Context(), store, cmd.InOrStdin(), cmd.OutOrStdout(), cleanDBForce)
	},
}

func init() {
	cleanDBCmd.Flags().BoolVar(&cleanDBForce, "yes", false, "skip the confirmation prompt")
}

// truncater is the part of the store clean-db needs
type truncater interface {
	Truncate(ctx context.Context) error
}

func runCleanDB(ctx context.Context, store truncater, in io.Reader, out io.Writer, force bool) error {
	if !force {
		fmt.Fprintln(out, "WARNING: this deletes ALL jobs and applications.")
		fmt.Fprint(out, "This action is irreversible. Do you want to continue? (yes/no): ")

		input, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(strings.ToLower(input)) != "yes" {
			fmt.Fprintln(out, "Operation cancelled.")
			return nil
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := store.Truncate(ctx); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(out, "All jobs and applications deleted.")
	return nil
}
