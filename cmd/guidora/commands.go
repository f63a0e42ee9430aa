// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guidora/mobile-core/internal/backend"
)

// newLoginCmd authenticates and installs the session, mirroring what the
// login screen does in the app.
func newLoginCmd() *cobra.Command {
	var input backend.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with phone and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			envelope, err := app.api.Login(cmd.Context(), input)
			if err != nil {
				return err
			}
			if !envelope.Status {
				return fmt.Errorf("login refused: %s", envelope.Message)
			}

			if err := app.manager.Login(cmd.Context(), envelope.Data); err != nil {
				return err
			}

			user := app.manager.CurrentUser()
			fmt.Printf("Signed in as %s (%s), session %s\n", user.Name, user.Role, app.manager.Status())
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Phone, "phone", "", "account phone number")
	cmd.Flags().StringVar(&input.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// newRegisterCmd enrolls a new traveler account.
func newRegisterCmd() *cobra.Command {
	var input backend.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new traveler account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			envelope, err := app.api.Register(cmd.Context(), input)
			if err != nil {
				return err
			}
			if !envelope.Status {
				return fmt.Errorf("registration refused: %s", envelope.Message)
			}

			fmt.Println("Account created. Sign in with 'guidora login'.")
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.Username, "username", "", "unique username")
	cmd.Flags().StringVar(&input.CountryCode, "country-code", "", "phone country code, e.g. +84")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&input.Password, "password", "", "password (min 8 characters)")

	return cmd
}

// newLogoutCmd clears the local session.
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			app.manager.Logout(cmd.Context())
			fmt.Println("Signed out.")
			return nil
		},
	}
}

// newWhoamiCmd restores the session from storage and prints the profile —
// the CLI equivalent of the app's cold start.
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			app.manager.Bootstrap(cmd.Context())

			user := app.manager.CurrentUser()
			if user == nil {
				fmt.Println("Not signed in.")
				return nil
			}

			rendered, err := json.MarshalIndent(user, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(rendered))
			return nil
		},
	}
}

// newRefreshCmd re-fetches the profile with the stored credential.
func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch the profile from the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			app.manager.Bootstrap(cmd.Context())
			if !app.manager.IsLoggedIn() {
				return fmt.Errorf("not signed in")
			}

			app.manager.Refresh(cmd.Context())

			user := app.manager.CurrentUser()
			fmt.Printf("Profile refreshed: %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
}

// newUpdateCmd patches profile fields from flags. Only flags the caller
// actually set are sent, matching the partial-update endpoint contract.
func newUpdateCmd() *cobra.Command {
	fields := map[string]*string{
		"name":    new(string),
		"phone":   new(string),
		"email":   new(string),
		"address": new(string),
		"gender":  new(string),
	}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			app.manager.Bootstrap(cmd.Context())
			if !app.manager.IsLoggedIn() {
				return fmt.Errorf("not signed in")
			}

			patch := make(map[string]any)
			for name, value := range fields {
				if cmd.Flags().Changed(name) {
					patch[name] = *value
				}
			}

			envelope, err := app.manager.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}
			if !envelope.Status {
				return fmt.Errorf("update refused: %s", envelope.Message)
			}

			fmt.Println("Profile updated.")
			return nil
		},
	}

	for name, value := range fields {
		cmd.Flags().StringVar(value, name, "", "new "+name)
	}

	return cmd
}

// newRequestRoleCmd submits a role-elevation request.
func newRequestRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request-role [GUIDER|PHOTOGRAPHER]",
		Short: "Apply to become a guide or photographer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			app.manager.Bootstrap(cmd.Context())
			if !app.manager.IsLoggedIn() {
				return fmt.Errorf("not signed in")
			}

			envelope := app.manager.RequestRole(cmd.Context(), args[0])
			if !envelope.Status {
				return fmt.Errorf("request refused: %s", envelope.Message)
			}

			fmt.Printf("Role request submitted: %s\n", envelope.Message)
			return nil
		},
	}
}
