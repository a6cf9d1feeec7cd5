// stayctl is a command-line companion for the Stayfinder backend: it
// drives the SDK's session, listing, and booking stores, persisting the
// session between invocations through the default storage backend.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	stayfinder "github.com/stayfinder/stayfinder-go"
)

var (
	databaseURL    string
	authURL        string
	apiKey         string
	imageUploadURL string
	debug          bool
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stayctl",
		Short: "stayctl manages Stayfinder sessions, places, and bookings",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("STAYFINDER_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Base URL of the Stayfinder database (defaults to STAYFINDER_DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&authURL, "auth-url", "", "Base URL of the auth backend (defaults to STAYFINDER_AUTH_URL)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for the auth backend (defaults to STAYFINDER_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&imageUploadURL, "image-upload-url", "", "Image storage function URL (defaults to STAYFINDER_IMAGE_UPLOAD_URL)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newPlacesCmd())
	rootCmd.AddCommand(newBookingsCmd())
	rootCmd.AddCommand(newUploadImageCmd())

	return rootCmd
}

// newClient builds an SDK client from the environment with flag overrides.
func newClient() (*stayfinder.Client, error) {
	cfg, err := stayfinder.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if authURL != "" {
		cfg.AuthURL = authURL
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if imageUploadURL != "" {
		cfg.ImageUploadURL = imageUploadURL
	}
	return stayfinder.New(cfg)
}

// restoredClient additionally restores the persisted session; commands
// that need a token fail here with a re-auth hint instead of an opaque
// backend error.
func restoredClient() (*stayfinder.Client, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	ok, err := c.Session().RestoreSession()
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if !ok {
		_ = c.Close()
		return nil, fmt.Errorf("no valid session; run 'stayctl login' first")
	}
	return c, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newSignupCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			id, err := c.Session().Signup(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			log.Info().Str("user_id", id.UserID).Msg("signed up")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			id, err := c.Session().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			log.Info().Str("user_id", id.UserID).Time("token_expiry", id.TokenExpiry).Msg("logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			if err := c.Session().Logout(); err != nil {
				return err
			}
			log.Info().Msg("logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the restored session's identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			return printJSON(c.Session().Current())
		},
	}
}
