package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gsheet "google.golang.org/api/sheets/v4"

	"dompet/internal/config"
)

func init() {
	authInitCmd.Flags().StringVar(&authInitOut, "out", "token.json", "file the OAuth token JSON is written to")
	authInitCmd.Flags().StringVar(&authInitPort, "redirect-port", "8085", "local port for the OAuth redirect")
	rootCmd.AddCommand(authInitCmd)
}

var (
	authInitOut  string
	authInitPort string
)

var authInitCmd = &cobra.Command{
	Use:   "auth-init",
	Short: "Run the Google OAuth consent flow for the Sheets mirror",
	Long: "Runs the browser consent flow against the OAuth client in " +
		"SHEETS_OAUTH_CLIENT_JSON and writes the resulting token JSON, " +
		"which serve reads from SHEETS_OAUTH_TOKEN_JSON.",
	RunE: runAuthInit,
}

func runAuthInit(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.SheetsOAuthClientJSON == "" {
		return fmt.Errorf("SHEETS_OAUTH_CLIENT_JSON is not set")
	}

	oauthCfg, err := google.ConfigFromJSON([]byte(cfg.SheetsOAuthClientJSON), gsheet.SpreadsheetsScope)
	if err != nil {
		return fmt.Errorf("parse oauth client: %w", err)
	}
	oauthCfg.RedirectURL = "http://localhost:" + authInitPort + "/callback"

	// The redirect URL above must be registered on the OAuth client.
	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	srv := &http.Server{Addr: ":" + authInitPort, Handler: mux}
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errStr := r.URL.Query().Get("error"); errStr != "" {
			http.Error(w, "oauth error: "+errStr, http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "You may close this window and return to the terminal.")
		codeCh <- r.URL.Query().Get("code")
		go func() {
			time.Sleep(500 * time.Millisecond)
			_ = srv.Close()
		}()
	})
	go func() { _ = srv.ListenAndServe() }()

	fmt.Printf("Open this URL to authorize:\n%s\n", oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))

	select {
	case code := <-codeCh:
		tok, err := oauthCfg.Exchange(cmd.Context(), code)
		if err != nil {
			return fmt.Errorf("token exchange: %w", err)
		}
		raw, err := json.Marshal(tok)
		if err != nil {
			return fmt.Errorf("encode token: %w", err)
		}
		if err := os.WriteFile(authInitOut, raw, 0o600); err != nil {
			return fmt.Errorf("write token file: %w", err)
		}
		fmt.Printf("Saved token to %s; export its contents as SHEETS_OAUTH_TOKEN_JSON\n", authInitOut)
		return nil
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authorization timed out")
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}
}
