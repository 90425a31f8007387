package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthdash/internal/services"
)

var errPasswordsDiffer = errors.New("passwords do not match")

func newSetPasswordCommand(options *rootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Set a user's password from the terminal",
		Long: `set-password prompts for a new password twice without echoing it. When
stdin is not a terminal the password and its confirmation are read as two
lines.`,
		Args: cobra.NoArgs,
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

			password, err := readNewPassword(newPasswordPrompt(options.stdin, options.stderr))
			if err != nil {
				return err
			}
			if err := authService.SetPassword(userID, password, false); err != nil {
				if errors.Is(err, services.ErrWeakPassword) {
					return errors.New("password needs at least 8 characters with upper case, lower case and a digit")
				}
				return fmt.Errorf("set password: %w", err)
			}

			options.printf("Password updated for %s\n", userEmail)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

type passwordPrompt struct {
	stdin    *os.File
	output   io.Writer
	terminal bool
	lines    *bufio.Reader
}

func newPasswordPrompt(stdin *os.File, output io.Writer) *passwordPrompt {
	prompt := &passwordPrompt{stdin: stdin, output: output}
	if stdin != nil {
		prompt.terminal = isatty.IsTerminal(stdin.Fd())
		prompt.lines = bufio.NewReader(stdin)
	}
	return prompt
}

func (prompt *passwordPrompt) read(label string) (string, error) {
	if prompt.stdin == nil {
		return "", errors.New("stdin unavailable")
	}
	if !prompt.terminal {
		line, err := prompt.lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if errors.Is(err, io.EOF) && line == "" {
			return "", errors.New("no password on stdin")
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(prompt.output, label)
	value, err := readPasswordNoEcho(prompt.stdin)
	fmt.Fprintln(prompt.output)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(value), nil
}

func readNewPassword(prompt *passwordPrompt) (string, error) {
	password, err := prompt.read("New password: ")
	if err != nil {
		return "", err
	}
	confirmation, err := prompt.read("Repeat password: ")
	if err != nil {
		return "", err
	}
	if password != confirmation {
		return "", errPasswordsDiffer
	}
	return password, nil
}
