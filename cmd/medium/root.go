package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	medium "github.com/jamesprial/go-medium-api-wrapper"
	pkgerrs "github.com/jamesprial/go-medium-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-medium-api-wrapper/pkg/validation"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (network failure, bad arguments).
	ExitCodeError = 1
	// ExitCodeInvalidInput indicates missing or invalid parameters or configuration.
	ExitCodeInvalidInput = 2
	// ExitCodeAPIError indicates Medium rejected the request, including auth failures.
	ExitCodeAPIError = 3
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

// app carries the state shared by every command: where configuration comes
// from and how results are printed.
type app struct {
	getenv     func(string) string
	configPath string
	flags      Config
	output     string
	debug      bool
	strict     bool
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{getenv: getenv}

	rootCmd := &cobra.Command{
		Use:   "medium",
		Short: "Work with the Medium API from the command line",
		Long: `medium authorizes against the Medium API, inspects the authenticated
user and their publications, and publishes posts.

Credentials are read from ~/.config/medium/config.yaml, then from the
MEDIUM_CLIENT_ID, MEDIUM_CLIENT_SECRET, MEDIUM_ACCESS_TOKEN and
MEDIUM_REDIRECT_URL environment variables, then from flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.output != outputTable && a.output != outputYAML {
				return &pkgerrs.ConfigError{Field: "output", Message: fmt.Sprintf("unknown format %q (want table or yaml)", a.output)}
			}
			return nil
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "medium version %s\n" .Version}}`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", defaultConfigPath(), "config file")
	pf.StringVar(&a.flags.ClientID, "client-id", "", "OAuth client ID")
	pf.StringVar(&a.flags.ClientSecret, "client-secret", "", "OAuth client secret")
	pf.StringVar(&a.flags.AccessToken, "access-token", "", "access token for API calls")
	pf.StringVar(&a.flags.BaseURL, "base-url", "", "API base URL (default "+medium.DefaultBaseURL+")")
	pf.DurationVar(&a.flags.Timeout, "timeout", 0, "per-request timeout (default 5s)")
	pf.StringVarP(&a.output, "output", "o", outputTable, "output format: table or yaml")
	pf.BoolVar(&a.debug, "debug", false, "log requests to stderr")
	pf.BoolVar(&a.strict, "strict", true, "reject scopes, formats, statuses and licenses Medium does not document")

	rootCmd.AddCommand(newAuthCmd(a))
	rootCmd.AddCommand(newMeCmd(a))
	rootCmd.AddCommand(newPostsCmd(a))
	rootCmd.AddCommand(newPublicationsCmd(a))

	return rootCmd
}

// config resolves file, environment and flag settings.
func (a *app) config() (Config, error) {
	fileCfg, err := LoadConfigFile(a.configPath)
	if err != nil {
		return Config{}, err
	}
	return fileCfg.Merge(FromEnv(a.getenv)).Merge(a.flags), nil
}

// client builds a Medium client from the resolved configuration, with any
// configured access token installed.
func (a *app) client(cmd *cobra.Command) (*medium.Client, Config, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, Config{}, err
	}

	client, err := medium.NewClient(&medium.Config{
		ClientID:         cfg.ClientID,
		ClientSecret:     cfg.ClientSecret,
		BaseURL:          cfg.BaseURL,
		Timeout:          cfg.Timeout,
		UserAgent:        "medium-cli/" + version,
		Logger:           a.logger(cmd.ErrOrStderr()),
		StrictValidation: a.strict,
	})
	if err != nil {
		return nil, Config{}, err
	}
	if cfg.AccessToken != "" {
		client.SetAccessToken(cfg.AccessToken)
	}
	return client, cfg, nil
}

func (a *app) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var configErr *pkgerrs.ConfigError
	if errors.As(err, &configErr) || pkgerrs.IsValidation(err) {
		return ExitCodeInvalidInput
	}

	switch pkgerrs.KindOf(err) {
	case pkgerrs.KindAPI, pkgerrs.KindUnexpectedStatus:
		return ExitCodeAPIError
	}

	return ExitCodeError
}

// idArgs accepts exactly one positional argument that looks like a Medium ID.
func idArgs(name string) cobra.PositionalArgs {
	return cobra.MatchAll(cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) error {
		return checkID(name, args[0])
	})
}

// checkID rejects values that are not Medium IDs before they reach a URL.
func checkID(name, id string) error {
	if validation.IsValidID(id) {
		return nil
	}
	return pkgerrs.NewValidationError(fmt.Sprintf("%s %q is not a Medium ID", name, id), nil)
}
