// Command linkadmin is the operator console for a running link page server.
// It logs in with the admin password, loads the current content and lets the
// operator edit, save or reset it from the terminal.
//
// Flags:
//
//	-url           base URL of the server (default: $LINKPAGE_URL or http://localhost:8080)
//	-password-env  environment variable holding the admin password (prompted when empty)
//	-hash          read a password from stdin, print its bcrypt hash and exit
//	-no-color      disable colored output
//	-timeout       per-request timeout
//	-log-level     diagnostic log level written to stderr
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"linkpage/internal/auth"
	"linkpage/internal/client"
	"linkpage/internal/config"
	"linkpage/internal/editor"
	"linkpage/internal/shell"
)

func main() {
	urlFlag := flag.String("url", envOr("LINKPAGE_URL", "http://localhost:8080"), "base URL of the link page server")
	passwordEnvFlag := flag.String("password-env", "LINKADMIN_PASSWORD", "environment variable holding the admin password")
	hashFlag := flag.Bool("hash", false, "read a password from stdin, print its bcrypt hash and exit")
	noColorFlag := flag.Bool("no-color", false, "disable colored output")
	timeoutFlag := flag.Duration("timeout", 15*time.Second, "per-request timeout")
	logLevelFlag := flag.String("log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	flag.Parse()

	config.NewLogger(config.LogConfig{Level: *logLevelFlag, Format: "text"}, os.Stderr)

	if *hashFlag {
		if err := printHash(); err != nil {
			slog.Error("hash password", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.New(*urlFlag, &http.Client{Timeout: *timeoutFlag})
	sess := editor.New(api)
	console := shell.New(sess, os.Stdin, os.Stdout, *noColorFlag)

	fmt.Printf("linkadmin → %s\n", api.BaseURL())
	if err := console.Run(ctx, os.Getenv(*passwordEnvFlag)); err != nil {
		slog.Error("console stopped", "error", err)
		os.Exit(1)
	}
}

// printHash reads one line from stdin and prints the bcrypt hash suitable
// for ADMIN_PASSWORD_HASH.
func printHash() error {
	fmt.Fprint(os.Stderr, "Hasło: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return fmt.Errorf("empty password")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
