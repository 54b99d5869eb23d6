package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/findash/findash/internal/api"
	"github.com/findash/findash/internal/cli"
	"github.com/findash/findash/internal/model"
)

func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the findash backend",
		Long:  `Authenticate against the backend and establish a local session shared by all findash commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := initSession()
			if err != nil {
				return err
			}
			gateway, err := initGateway(sess)
			if err != nil {
				return err
			}

			// Fail fast when the backend is down instead of making the
			// user type a password first.
			if !gateway.CheckHealth(ctx) {
				return fmt.Errorf("unable to connect to the server")
			}

			if email == "" {
				email, err = cli.Prompt(os.Stdout, os.Stdin, "Email")
				if err != nil {
					return err
				}
			}
			email = strings.TrimSpace(email)
			if email == "" {
				return fmt.Errorf("email is required")
			}

			password, err := cli.PromptPassword(os.Stdout, "Password")
			if err != nil {
				return err
			}

			user, err := gateway.Login(ctx, model.Credentials{Email: email, Password: password})
			if err != nil {
				if api.IsUnauthorized(err) {
					return fmt.Errorf("invalid email or password")
				}
				return loginErr(err)
			}

			if err := sess.Establish(user.Email); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			name := strings.TrimSpace(user.FirstName + " " + user.LastName)
			if name == "" {
				name = user.Email
			}
			fmt.Println(cli.FormatSuccess("Logged in as " + name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func registerCmd() *cobra.Command {
	var (
		email     string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := initSession()
			if err != nil {
				return err
			}
			gateway, err := initGateway(sess)
			if err != nil {
				return err
			}

			if !gateway.CheckHealth(ctx) {
				return fmt.Errorf("unable to connect to the server")
			}

			prompts := []struct {
				value *string
				label string
			}{
				{&email, "Email"},
				{&firstName, "First name"},
				{&lastName, "Last name"},
			}
			for _, p := range prompts {
				if *p.value != "" {
					continue
				}
				*p.value, err = cli.Prompt(os.Stdout, os.Stdin, p.label)
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("email is required")
			}

			password, err := cli.PromptPassword(os.Stdout, "Password")
			if err != nil {
				return err
			}

			user, err := gateway.Register(ctx, model.RegisterProfile{
				Email:     strings.TrimSpace(email),
				Password:  password,
				FirstName: strings.TrimSpace(firstName),
				LastName:  strings.TrimSpace(lastName),
			})
			if err != nil {
				return loginErr(err)
			}

			if err := sess.Establish(user.Email); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Account created. Welcome, " + user.Email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}
			gateway, err := initGateway(sess)
			if err != nil {
				return err
			}

			if err := gateway.Logout(cmd.Context()); err != nil {
				if errors.Is(err, api.ErrNotLoggedIn) {
					fmt.Println(cli.FormatInfo("You are not logged in."))
					return nil
				}
				// The backend call failed, but the local session still
				// goes away so the user is not stuck logged in.
				fmt.Fprintln(os.Stderr, cli.FormatWarning("Server logout failed: "+err.Error()))
			}

			if err := sess.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}
			gateway, err := initGateway(sess)
			if err != nil {
				return err
			}

			if gateway.CheckHealth(cmd.Context()) {
				fmt.Println(cli.FormatSuccess("Backend is up"))
				return nil
			}
			fmt.Println(cli.FormatError("Backend is unreachable"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(_ *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}

			if !sess.IsAuthenticated() {
				fmt.Println(cli.FormatInfo("Not logged in"))
				return nil
			}
			fmt.Println(sess.Identity())
			return nil
		},
	}
}

// loginErr keeps auth failures short and actionable.
func loginErr(err error) error {
	if errors.Is(err, api.ErrServerUnavailable) {
		return fmt.Errorf("unable to connect to the server")
	}
	if msg := api.MessageOf(err); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return err
}
