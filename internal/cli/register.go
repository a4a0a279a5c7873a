package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var name, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new weather-alert account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name == "" {
				if name, err = promptLine("Name: "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine("Password: "); err != nil {
					return err
				}
			}
			if confirm == "" {
				if confirm, err = promptLine("Confirm password: "); err != nil {
					return err
				}
			}

			if err := sess.Register(cmd.Context(), name, email, password, confirm); err != nil {
				return err
			}

			user := sess.State().User
			fmt.Printf("Account created. Logged in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (prompted if omitted)")
	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password confirmation (prompted if omitted)")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := sess.State()
			if state.User == nil {
				fmt.Println("Not logged in.")
				return nil
			}
			fmt.Printf("%s <%s> (%s)\n", state.User.Name, state.User.Email, state.User.Role)
			return nil
		},
	}
}
