package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ellard/glosa/internal/apiclient"
	"github.com/ellard/glosa/internal/config"
	"github.com/ellard/glosa/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:     "auth",
	Short:   "Manage server credentials",
	GroupID: "sync",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an access token for the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, _ := cmd.Flags().GetString("server")
		token, _ := cmd.Flags().GetString("token")

		if serverURL != "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.ServerURL = serverURL
			if err := config.Save(cfg); err != nil {
				return err
			}
		}

		if token == "" {
			fmt.Fprint(os.Stderr, "Access token: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			token = strings.TrimSpace(string(raw))
		}
		if token == "" {
			return fmt.Errorf("empty token")
		}

		client := apiclient.New(config.ServerURL(), token)
		if _, err := client.HealthCheck(); err != nil {
			output.Error("server unreachable: %v", err)
			return err
		}

		creds, err := config.LoadAuth()
		if err != nil {
			return err
		}
		if creds == nil {
			creds = &config.AuthCredentials{}
		}
		creds.Token = token
		if creds.DeviceID == "" {
			creds.DeviceID, err = config.GenerateDeviceID()
			if err != nil {
				return err
			}
		}
		if err := config.SaveAuth(creds); err != nil {
			return err
		}

		output.Success("Logged in to %s", config.ServerURL())
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearAuth(); err != nil {
			return err
		}
		output.Success("Logged out")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsAuthenticated() {
			output.Info("Not logged in")
			return nil
		}
		deviceID, err := config.DeviceID()
		if err != nil {
			return err
		}
		output.Info("Logged in to %s", config.ServerURL())
		output.Subtle("device %s", deviceID)
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("server", "", "server base URL")
	authLoginCmd.Flags().String("token", "", "access token (prompted if omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
