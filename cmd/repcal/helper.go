package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vitorsousa/repcal/calendar"
	"github.com/vitorsousa/repcal/calendar/google"
	"github.com/vitorsousa/repcal/internal"
	"github.com/vitorsousa/repcal/internal/restapi"
	"github.com/vitorsousa/repcal/internal/sqlite"
)

const googlePlatform = "google"

// Settings keys in the local database. Environment variables of the
// same meaning take precedence so CI and scripts can skip configure.
const (
	settingAPIURL   = "api_url"
	settingAPIToken = "api_token"
	settingUserID   = "user_id"
)

type Strings []string

func (i *Strings) String() string {
	return strings.Join(*i, ", ")
}

func (i *Strings) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func openStorage(dbFilename string) (*sqlite.Storage, error) {
	db, err := sql.Open(sqlite.DriverName, dbFilename)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStorage(db), nil
}

func setting(ctx context.Context, storage *sqlite.Storage, key, envVar string) (string, error) {
	if v := os.Getenv(envVar); v != "" {
		return v, nil
	}
	return storage.Setting(ctx, key)
}

func newAPIClient(ctx context.Context, storage *sqlite.Storage, verbose bool) (*restapi.Client, string, error) {
	baseURL, err := setting(ctx, storage, settingAPIURL, "REPCAL_API_URL")
	if err != nil {
		return nil, "", err
	}
	token, err := setting(ctx, storage, settingAPIToken, "REPCAL_API_TOKEN")
	if err != nil {
		return nil, "", err
	}
	userID, err := setting(ctx, storage, settingUserID, "REPCAL_USER_ID")
	if err != nil {
		return nil, "", err
	}
	if baseURL == "" || token == "" || userID == "" {
		return nil, "", fmt.Errorf("backend is not configured, run the %q command first", ConfigureCommand.Name)
	}

	client := restapi.NewClient(baseURL, token)
	client.Verbose = verbose
	return client, userID, nil
}

func newMux(ctx context.Context, storage *sqlite.Storage, credFile string, verbose bool) (internal.Mux, error) {
	credJSON, err := os.ReadFile(credFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	var auth string
	acc, err := storage.FirstAccount(ctx, googlePlatform)
	if err != nil {
		return nil, err
	}
	if acc != nil {
		auth = acc.Auth
	}

	googleCal, err := google.NewClient(credJSON, auth)
	if err != nil {
		return nil, err
	}
	googleCal.Verbose = verbose

	mux := calendar.NewMux()
	mux.Register(googlePlatform, googleCal)
	return mux, nil
}

func formatDateTime(t time.Time) string {
	return t.In(time.Local).Format("02 Jan 06 15:04")
}
