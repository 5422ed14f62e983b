package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HaByeong/WhaleStream/internal/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Login, logout and account management",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login and store the session locally",
	Long: `Login with your WhaleStream account. Tokens are stored under
~/.whalestream/session.json and renewed automatically when they expire.

The reserved pair demo / demo123 logs in without a backend.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runAuthLogout,
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	RunE:  runAuthSignup,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session is stored and for whom",
	RunE:  runAuthStatus,
}

var (
	loginUser  string
	signupUser string
	signupName string
)

func init() {
	authLoginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "user id (prompted if omitted)")
	authSignupCmd.Flags().StringVarP(&signupUser, "user", "u", "", "user id (prompted if omitted)")
	authSignupCmd.Flags().StringVarP(&signupName, "name", "n", "", "display name (prompted if omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(label string) (string, error) {
	fmt.Print(label)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	svcs, err := newServices()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	userID := loginUser
	if userID == "" {
		userID, err = promptLine("User ID: ")
		if err != nil {
			output.Error(err.Error())
			return nil
		}
	}
	if userID == "" {
		output.Error("User ID is required.")
		return nil
	}

	password, err := promptSecret("Password: ")
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	sess, err := svcs.auth.Login(context.Background(), userID, password)
	if err != nil {
		printErr(err)
		return nil
	}

	output.Success(fmt.Sprintf("Logged in as %s.", sess.UserID))
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	svcs, err := newServices()
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	if err := svcs.auth.Logout(); err != nil {
		output.Error(err.Error())
		return nil
	}
	output.Success("Logged out, session cleared.")
	return nil
}

func runAuthSignup(cmd *cobra.Command, args []string) error {
	svcs, err := newServices()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	userID := signupUser
	if userID == "" {
		userID, err = promptLine("User ID: ")
		if err != nil {
			output.Error(err.Error())
			return nil
		}
	}
	name := signupName
	if name == "" {
		name, err = promptLine("Name: ")
		if err != nil {
			output.Error(err.Error())
			return nil
		}
	}
	if userID == "" || name == "" {
		output.Error("User ID and name are required.")
		return nil
	}

	password, err := promptSecret("Password: ")
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	confirm, err := promptSecret("Confirm password: ")
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	if password != confirm {
		output.Error("Passwords do not match.")
		return nil
	}

	if err := svcs.auth.Signup(context.Background(), userID, password, name); err != nil {
		printErr(err)
		return nil
	}

	output.Success("Account created.")
	output.Info("Run 'whalestream auth login' to login.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	svcs, err := newServices()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if !svcs.auth.IsAuthenticated() {
		output.Info("Not logged in.")
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(map[string]interface{}{
			"loggedIn": true,
			"userId":   svcs.auth.CurrentUserID(),
		})
	}

	output.Success(fmt.Sprintf("Logged in as %s.", svcs.auth.CurrentUserID()))
	return nil
}
