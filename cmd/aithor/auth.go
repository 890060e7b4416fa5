package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EgeUnlu35/aithor/internal/api"
	"github.com/EgeUnlu35/aithor/internal/remote"
)

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Sign in and save the access token",
	Long: `Login authenticates against the API and saves the returned access
token under the aithor home directory. The password is read from stdin,
so it can be typed at the prompt or piped in:

  aithor login reader@example.com
  echo "$PASSWORD" | aithor login reader@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		resp, err := a.client().Login(cmd.Context(), args[0], password)
		if err != nil {
			var authErr *remote.AuthenticationError
			if errors.As(err, &authErr) {
				return fmt.Errorf("login failed: %s", authErr.Message)
			}
			return err
		}

		if err := a.session.Set(resp.AccessToken, resp.TokenType); err != nil {
			return fmt.Errorf("save token: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", args[0])
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the saved access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.session.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		user, err := a.client().CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		return api.Output(user)
	},
}

func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	}
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is empty")
	}
	return password, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
