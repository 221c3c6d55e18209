// Package google implements the calendar gateway on top of the Google
// Calendar API.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/vitorsousa/repcal/internal"
)

// Source is the provider label attached to every calendar this gateway
// reports.
const Source = "Google Calendar"

// reminderMinutes is the single popup alarm attached to created
// entries, counted back from the start time.
const reminderMinutes = 60

type Client struct {
	oauthCfg *oauth2.Config
	auth     string

	Verbose bool
}

// NewClient builds a gateway from the OAuth credentials JSON and the
// stored token blob for the account. An empty auth means the account
// was never configured; access checks will read as denied.
func NewClient(credJSON []byte, auth string) (*Client, error) {
	oauthCfg, err := google.ConfigFromJSON(credJSON,
		calendar.CalendarScope,
		oauth2api.UserinfoEmailScope,
	)
	if err != nil {
		return nil, fmt.Errorf("google: parsing credentials file: %v", err)
	}

	return &Client{
		oauthCfg: oauthCfg,
		auth:     auth,
	}, nil
}

// SetAuth installs the token blob obtained by the configure flow.
func (c *Client) SetAuth(auth string) {
	c.auth = auth
}

const defaultSleep = 5 * time.Second

// RequestAccess probes the API with the stored token. Any failure,
// from a missing token to a revoked grant, reads as denied.
func (c *Client) RequestAccess(ctx context.Context) bool {
	svc, err := c.calendarSvc(ctx)
	if err != nil {
		c.logf("access check failed: %v", err)
		return false
	}
	_, err = svc.CalendarList.List().MaxResults(1).Context(ctx).Do()
	if err != nil {
		c.logf("access check failed: %v", err)
		return false
	}
	return true
}

// Calendars enumerates the account's calendar list. Without a token
// the list is empty, mirroring a denied permission prompt.
func (c *Client) Calendars(ctx context.Context) ([]internal.DeviceCalendar, error) {
	if c.auth == "" {
		return []internal.DeviceCalendar{}, nil
	}
	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return nil, err
	}

	c.logf("listing calendars")

	cals := []internal.DeviceCalendar{}
	var nextPageToken string
	for {
		list, err := svc.CalendarList.List().PageToken(nextPageToken).Context(ctx).Do()
		if err != nil {
			if shouldRetry(err) {
				time.Sleep(defaultSleep)
				continue
			}
			return nil, fmt.Errorf("google: listing calendars: %w", err)
		}
		for _, item := range list.Items {
			cals = append(cals, newDeviceCalendar(item))
		}
		nextPageToken = list.NextPageToken
		if nextPageToken == "" {
			break
		}
	}
	return cals, nil
}

// CreateEvent writes ev as a new entry in calendarID and returns the
// entry id. Every call creates a fresh entry; nothing here checks for
// an earlier copy of the same event.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, ev *internal.Event) (string, error) {
	msg := fmt.Sprintf("creating entry: %q on %s... ", ev.Title, ev.StartsAt)
	defer func() {
		c.logf(msg)
	}()

	svc, err := c.calendarSvc(ctx)
	if err != nil {
		msg += "❌"
		return "", err
	}

	gevent, err := newGoogleEvent(ev)
	if err != nil {
		msg += "❌"
		return "", err
	}

	for {
		created, err := svc.Events.Insert(calendarID, gevent).Context(ctx).Do()
		if err == nil {
			msg += "✅"
			return created.Id, nil
		}
		if shouldRetry(err) {
			time.Sleep(defaultSleep)
			continue
		}
		msg += "❌"
		return "", err
	}
}

// Login runs the loopback OAuth flow and returns the token blob to be
// stored with the account. showURL receives the consent URL to present
// to the user.
func (c *Client) Login(ctx context.Context, showURL func(authURL string)) ([]byte, error) {
	state := fmt.Sprintf("repcal-%d", time.Now().UTC().Nanosecond())
	authURL := c.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	showURL(authURL)

	mux := http.NewServeMux()
	server := &http.Server{
		Addr:    ":8080",
		Handler: mux,
	}

	var (
		token   *oauth2.Token
		authErr error
	)

	mux.HandleFunc("/repcal", func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			go server.Shutdown(ctx)
		}()

		query := req.URL.Query()
		if query.Get("state") != state {
			authErr = errors.New("oauth link is not valid")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		token, authErr = c.oauthCfg.Exchange(ctx, query.Get("code"))
		if authErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Unable to retrieve token:", authErr)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "All good, you can close this window!")
	})

	serverCh := make(chan struct{})
	var svrErr error
	go func() {
		svrErr = server.ListenAndServe()
		close(serverCh)
	}()

	<-serverCh

	if svrErr != nil && svrErr != http.ErrServerClosed {
		return nil, svrErr
	}

	if authErr != nil {
		return nil, authErr
	}

	return json.Marshal(token)
}

// Email resolves the account address behind a token blob.
func (c *Client) Email(ctx context.Context, authToken []byte) (string, error) {
	var tok *oauth2.Token
	if err := json.Unmarshal(authToken, &tok); err != nil {
		return "", err
	}
	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(c.oauthCfg.Client(ctx, tok)))
	if err != nil {
		return "", err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return info.Email, nil
}

func (c *Client) calendarSvc(ctx context.Context) (*calendar.Service, error) {
	if c.auth == "" {
		return nil, errors.New("google: account is not configured")
	}
	var tok *oauth2.Token
	err := json.Unmarshal([]byte(c.auth), &tok)
	if err != nil {
		return nil, err
	}
	httpClient := c.oauthCfg.Client(ctx, tok)
	return calendar.NewService(ctx, option.WithHTTPClient(httpClient))
}

func newDeviceCalendar(item *calendar.CalendarListEntry) internal.DeviceCalendar {
	return internal.DeviceCalendar{
		ID:       item.Id,
		Title:    item.Summary,
		Source:   Source,
		Writable: item.AccessRole == "owner" || item.AccessRole == "writer",
		Color:    item.BackgroundColor,
	}
}

func newGoogleEvent(ev *internal.Event) (*calendar.Event, error) {
	start, err := ev.Start()
	if err != nil {
		return nil, fmt.Errorf("google: bad start date: %w", err)
	}
	end, err := ev.End()
	if err != nil {
		return nil, fmt.Errorf("google: bad end date: %w", err)
	}

	var notes strings.Builder
	notes.WriteString(ev.Description)
	if ev.RepublicName != "" {
		if notes.Len() > 0 {
			notes.WriteString("\n\n")
		}
		notes.WriteString("República: " + ev.RepublicName)
	}

	return &calendar.Event{
		Summary:     ev.Title,
		Description: notes.String(),
		Location:    ev.Location,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: reminderMinutes},
			},
		},
	}, nil
}

func (c *Client) logf(format string, a ...any) {
	if c.Verbose {
		internal.Logf(os.Stdout, "google:", "", format, a...)
	}
}

func shouldRetry(err error) bool {
	return errIsReason(err, "rateLimitExceeded")
}

func errIsReason(err error, reason string) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}

	for _, err := range gErr.Errors {
		switch err.Reason {
		case reason:
			return true
		}
	}
	return false
}
