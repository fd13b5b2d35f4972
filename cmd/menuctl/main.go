package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/aussiebroadwan/clinicadmin/internal/menuctl"
	"github.com/aussiebroadwan/clinicadmin/pkg/navguard"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slogx.New(slogx.Config{
		Service: "menuctl",
		Env:     "cli",
		Level:   getEnvOrDefault("CLINIC_LOG_LEVEL", "warn"),
		Format:  "text",
		Output:  os.Stderr,
	})

	sessionFile := os.Getenv("CLINIC_SESSION_FILE")
	if sessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "menuctl: %v\n", err)
			os.Exit(1)
		}
		sessionFile = filepath.Join(dir, "clinicadmin", "session.json")
	}

	cli := &menuctl.CLI{
		BaseURL:  getEnvOrDefault("CLINIC_ADMIN_URL", defaultBaseURL),
		Sessions: navguard.NewSessionContext(navguard.FileStore{Path: sessionFile}),
		Logger:   logger,
		In:       os.Stdin,
		Out:      os.Stdout,
		Err:      os.Stderr,
	}

	if err := cli.Run(ctx, os.Args[1:]); err != nil {
		// Bare usage errors and denials are already reported.
		if err != menuctl.ErrUsage && !errors.Is(err, menuctl.ErrDenied) { //nolint:errorlint
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
