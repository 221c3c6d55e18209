package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vitorsousa/repcal/internal"
)

func TestEventsNormalizesNullInvitations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `[
			{"id": 1, "title": "dinner", "invitations": null},
			{"id": 2, "title": "assembly"}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	events, err := c.Events(context.Background(), internal.QueryAll)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	for _, ev := range events {
		if ev.Invitations == nil {
			t.Errorf("event %d has a nil invitation list", ev.ID)
		}
		if len(ev.Invitations) != 0 {
			t.Errorf("event %d has %d invitations", ev.ID, len(ev.Invitations))
		}
	}
}

func TestBearerTokenIsSent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	if _, err := c.Events(context.Background(), internal.QueryAll); err != nil {
		t.Fatalf("Events: %v", err)
	}
	if got != "Bearer secret-token" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestQueryPathSelection(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	for _, q := range []internal.ServerQuery{
		internal.QueryAll, internal.QueryUpcoming, internal.QueryInvited, internal.QueryConfirmed,
	} {
		if _, err := c.Events(context.Background(), q); err != nil {
			t.Fatalf("Events(%s): %v", q, err)
		}
	}

	want := []string{"/events", "/events/upcoming", "/events/invited", "/events/confirmed"}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("query %d hit %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestBackendErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message": "republic not found"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	_, err := c.EventByID(context.Background(), 42)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "republic not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestRespondRequestShape(t *testing.T) {
	var (
		method string
		path   string
		body   map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		io.WriteString(w, `{"id": 7, "title": "dinner"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	ev, err := c.Respond(context.Background(), 7, "u9", internal.StatusConfirmed)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if method != http.MethodPut {
		t.Errorf("method = %s", method)
	}
	if path != "/events/7/invitations/u9" {
		t.Errorf("path = %s", path)
	}
	if body["status"] != "CONFIRMED" {
		t.Errorf("body status = %q", body["status"])
	}
	if ev.ID != 7 {
		t.Errorf("event id = %d", ev.ID)
	}
}

func TestDeleteEvent(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	if err := c.DeleteEvent(context.Background(), 3); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if path != "/events/3" {
		t.Errorf("path = %s", path)
	}
}

func TestInviteUsersRequestShape(t *testing.T) {
	var body map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	if err := c.InviteUsers(context.Background(), 5, []string{"u2", "u3"}); err != nil {
		t.Fatalf("InviteUsers: %v", err)
	}
	ids := body["userIds"]
	if len(ids) != 2 || ids[0] != "u2" || ids[1] != "u3" {
		t.Errorf("userIds = %v", ids)
	}
}
