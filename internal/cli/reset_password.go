package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthdash/internal/services"
)

const temporaryPasswordLength = 12

func newResetPasswordCommand(options *rootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace a user's password with a temporary one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(options)
			if err != nil {
				return err
			}
			defer rt.close()

			authService := services.NewAuthService(rt.repositories.Users)
			userID, userEmail, err := rt.findUser(authService, email)
			if err != nil {
				return err
			}

			temporaryPassword, err := authService.ResetToTemporaryPassword(userID, temporaryPasswordLength)
			if err != nil {
				return fmt.Errorf("reset password: %w", err)
			}

			options.printf("Password reset for %s\n", userEmail)
			options.printf("Temporary password: %s\n", temporaryPassword)
			options.printf("The user must change it on next login.\n")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}
