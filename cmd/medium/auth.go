package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jamesprial/go-medium-api-wrapper/pkg/types"
)

func newAuthCmd(a *app) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize this integration and manage tokens",
	}
	authCmd.AddCommand(newAuthURLCmd(a))
	authCmd.AddCommand(newAuthExchangeCmd(a))
	authCmd.AddCommand(newAuthRefreshCmd(a))
	return authCmd
}

func newAuthURLCmd(a *app) *cobra.Command {
	var (
		state       string
		redirectURL string
		scopes      []string
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the URL a user visits to grant access",
		Long: `Print the authorization URL. Open it in a browser; after approval Medium
redirects to the redirect URL with a code to pass to "medium auth exchange".

When --state is not given a random one is generated and printed to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := a.client(cmd)
			if err != nil {
				return err
			}
			if redirectURL == "" {
				redirectURL = cfg.RedirectURL
			}
			if state == "" {
				state = uuid.NewString()
				fmt.Fprintf(cmd.ErrOrStderr(), "state: %s\n", state)
			}

			requested := lo.Map(lo.Uniq(scopes), func(s string, _ int) types.Scope { return types.Scope(s) })
			authURL, err := client.GetAuthorizationURL(state, redirectURL, requested)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), authURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "opaque value echoed back on redirect")
	cmd.Flags().StringVar(&redirectURL, "redirect-url", "", "URL Medium redirects to (default from config)")
	cmd.Flags().StringSliceVar(&scopes, "scope", []string{string(types.ScopeBasicProfile)}, "requested scopes")
	return cmd
}

func newAuthExchangeCmd(a *app) *cobra.Command {
	var redirectURL string

	cmd := &cobra.Command{
		Use:   "exchange CODE",
		Short: "Exchange an authorization code for tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := a.client(cmd)
			if err != nil {
				return err
			}
			if redirectURL == "" {
				redirectURL = cfg.RedirectURL
			}

			tok, err := client.ExchangeAuthorizationCode(cmd.Context(), args[0], redirectURL)
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), tok)
		},
	}

	cmd.Flags().StringVar(&redirectURL, "redirect-url", "", "redirect URL used for the authorization (default from config)")
	return cmd
}

func newAuthRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh REFRESH_TOKEN",
		Short: "Exchange a refresh token for a new access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client(cmd)
			if err != nil {
				return err
			}

			tok, err := client.ExchangeRefreshToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), tok)
		},
	}
}
