package command

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stolasapp/janus/internal/account"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(
		userCreateCommand(),
		userGetCommand(),
	)
	return cmd
}

func userCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create EMAIL",
		Short: "Create user",
		Long: "Creates an account for the provided email and password. Passwords may be\n" +
			"provided via stdin or through the interactive prompt.",

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, repo, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			email := args[0]
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}
			acct, err := repo.Create(cmd.Context(), email, string(passwd))
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "created user",
				slog.String("id", acct.ID),
				slog.String("email", acct.Email),
			)
			return printAccount(acct)
		},
	}
}

func userGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID|EMAIL",
		Short: "Get user",
		Long:  "Prints the account record for an id or email, password hash redacted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, _, store, repo, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			ident := args[0]
			var acct account.Account
			if strings.ContainsRune(ident, '@') {
				acct, err = repo.FetchByEmail(cmd.Context(), ident, true)
			} else {
				acct, err = repo.FetchByID(cmd.Context(), ident, true)
			}
			if err != nil {
				return err
			}
			return printAccount(acct)
		},
	}
}

func printAccount(acct account.Account) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(acct.Redacted())
}
