// Package seed registers development accounts against the blog backend.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/blog-portal/internal/client"
	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/models"
)

const (
	seedRetryAttempts = 3
	usersFileName     = "import/users.json"
)

// seedRetryDelay is a var so tests can shorten it.
var seedRetryDelay = 2 * time.Second

// usersFile is the JSON structure for the users seed file.
type usersFile struct {
	Users []models.RegisterInput `json:"users"`
}

// DevUsers registers the accounts in import/users.json.
// Non-fatal: if the backend is unreachable after retries, logs a warning and returns.
func DevUsers(ctx context.Context, c *client.BlogClient, logger *common.Logger) {
	path := findUsersFile()
	if path == "" {
		logger.Warn().Msg("seed: import/users.json not found, skipping dev user seeding")
		return
	}

	users, err := loadUsersFile(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("seed: failed to load users file")
		return
	}

	if len(users) == 0 {
		logger.Warn().Msg("seed: users file is empty, skipping dev user seeding")
		return
	}

	seedWithRetry(ctx, c, users, logger)
}

// findUsersFile searches for import/users.json relative to the executable
// directory first, then falls back to the current working directory.
func findUsersFile() string {
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), usersFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if _, err := os.Stat(usersFileName); err == nil {
		return usersFileName
	}

	return ""
}

// loadUsersFile reads and parses the users JSON file.
func loadUsersFile(path string) ([]models.RegisterInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var f usersFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	return f.Users, nil
}

// seedWithRetry attempts to seed users, retrying on transport failures only.
func seedWithRetry(ctx context.Context, c *client.BlogClient, users []models.RegisterInput, logger *common.Logger) {
	var err error
	for attempt := 1; attempt <= seedRetryAttempts; attempt++ {
		err = seedAll(ctx, c, users, logger)
		if err == nil {
			logger.Info().Int("users", len(users)).Msg("seed: dev users seeded successfully")
			return
		}

		var te *client.TransportError
		if !errors.As(err, &te) {
			break
		}

		logger.Warn().
			Int("attempt", attempt).
			Int("max_attempts", seedRetryAttempts).
			Err(err).
			Msg("seed: failed to seed users, retrying")

		if attempt < seedRetryAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(seedRetryDelay):
			}
		}
	}

	logger.Warn().
		Err(err).
		Msg("seed: failed to seed dev users, continuing without seeding")
}

// seedAll registers each user. A rejection by the backend (typically an
// existing account) is logged and skipped.
func seedAll(ctx context.Context, c *client.BlogClient, users []models.RegisterInput, logger *common.Logger) error {
	for _, u := range users {
		_, err := c.Register(ctx, u)
		var apiErr *client.APIError
		switch {
		case err == nil:
			logger.Debug().Str("email", u.Email).Msg("seed: registered user")
		case errors.As(err, &apiErr):
			logger.Debug().Str("email", u.Email).Str("reason", apiErr.Message).Msg("seed: user not registered")
		default:
			return fmt.Errorf("register %s: %w", u.Email, err)
		}
	}
	return nil
}
