package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wtw/api"
	"github.com/s0up4200/wtw/state"
)

var (
	email    string
	password string
	rating   float64
	comment  string
)

func init() {
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	reviewCmd.Flags().Float64VarP(&rating, "rating", "r", 0, "rating from 1 to 10")
	reviewCmd.Flags().StringVarP(&comment, "comment", "c", "", "review text, 50 to 400 characters")
	_ = reviewCmd.MarkFlagRequired("rating")
	_ = reviewCmd.MarkFlagRequired("comment")

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd, reviewCmd)
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth := api.AuthData{Login: email, Password: password}
		if err := auth.Validate(); err != nil {
			return err
		}

		ctx, cancel := commandContext(2)
		defer cancel()

		if err := acts.Login(ctx, auth); err != nil {
			return report(err)
		}

		user, _ := store.User()
		fmt.Printf("✓ Logged in as %s (%s)\n", user.Name, user.Email)
		fmt.Printf("- Favorites: %d\n", len(store.Favorites()))
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and forget the token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(1)
		defer cancel()

		if err := acts.Logout(ctx); err != nil {
			return report(err)
		}

		fmt.Println("✓ Logged out")
		return nil
	},
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the stored session is still valid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(2)
		defer cancel()

		fmt.Printf("Checking session at %s...\n", cfg.API.URL)
		acts.CheckAuth(ctx)

		switch store.AuthorizationStatus() {
		case state.AuthAuthenticated:
			fmt.Println("✓ Authenticated")
			fmt.Printf("- Favorites: %d\n", len(store.Favorites()))
		default:
			fmt.Println("✗ Not authenticated. Run 'wtw login' to sign in.")
		}
		return nil
	},
}

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Post a review of a film",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		review := api.ReviewData{Comment: comment, Rating: rating}
		if err := review.Validate(); err != nil {
			return err
		}

		ctx, cancel := commandContext(2)
		defer cancel()

		if err := acts.AddReview(ctx, args[0], review); err != nil {
			return report(err)
		}

		fmt.Printf("✓ Review of film %s posted\n", args[0])
		return nil
	},
}
