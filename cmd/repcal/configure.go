package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vitorsousa/repcal/calendar/google"
	"github.com/vitorsousa/repcal/internal"
)

var ConfigureCommand = _configureCommand{
	Name:        "configure",
	Description: "Store backend credentials and give calendar access",
}

type _configureCommand struct {
	Name        string
	Description string
}

func (s _configureCommand) Run(ctx context.Context, dbFilename string, verbose bool, args []string) error {
	var (
		credFile string
		apiURL   string
		apiToken string
		userID   string
	)

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.StringVar(&credFile, "google-cred", "credentials.json", "credentials file for google")
	fs.StringVar(&apiURL, "api-url", "", "base URL of the republic backend")
	fs.StringVar(&apiToken, "api-token", "", "bearer token for the republic backend")
	fs.StringVar(&userID, "user-id", "", "your user id on the republic backend")
	if err := fs.Parse(args); err != nil {
		return err
	}

	storage, err := openStorage(dbFilename)
	if err != nil {
		return err
	}

	w := flag.CommandLine.Output()

	if apiURL == "" {
		fmt.Fprint(w, "Base URL of the republic backend: ")
		fmt.Scanln(&apiURL)
	}
	if apiToken == "" {
		fmt.Fprint(w, "Bearer token: ")
		fmt.Scanln(&apiToken)
	}
	if userID == "" {
		fmt.Fprint(w, "Your user id: ")
		fmt.Scanln(&userID)
	}

	for key, value := range map[string]string{
		settingAPIURL:   apiURL,
		settingAPIToken: apiToken,
		settingUserID:   userID,
	} {
		if err := storage.SetSetting(ctx, key, value); err != nil {
			return fmt.Errorf("saving setting %q: %w", key, err)
		}
	}

	credJSON, err := os.ReadFile(credFile)
	if err != nil {
		return fmt.Errorf("unable to read credentials file: %w", err)
	}
	googleCal, err := google.NewClient(credJSON, "")
	if err != nil {
		return fmt.Errorf("creating client: %v", err)
	}
	googleCal.Verbose = verbose

	authToken, err := googleCal.Login(ctx, func(authURL string) {
		fmt.Fprintf(w, "Go to the following link in your browser\n%s\n", authURL)
	})
	if err != nil {
		return fmt.Errorf("google: logging in: %v", err)
	}
	userEmail, err := googleCal.Email(ctx, authToken)
	if err != nil {
		return fmt.Errorf("google: getting email: %v", err)
	}

	acc := internal.Account{
		Platform: googlePlatform,
		Name:     userEmail,
		Auth:     string(authToken),
	}
	fmt.Fprintf(w, "Saving account %q for %q platform...\n", acc.Name, acc.Platform)
	err = storage.AddAccount(ctx, &acc)
	if err != nil {
		return fmt.Errorf("saving account: %v", err)
	}
	return nil
}
