package appt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientListSendsClosedInterval(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{
			"start":    r.URL.Query().Get("start"),
			"end":      r.URL.Query().Get("end"),
			"assignee": r.URL.Query().Get("assignee"),
		}
		json.NewEncoder(w).Encode([]Appointment{{
			ID:    "1",
			Title: "Kickoff",
			Start: time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekret")
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	list, err := c.List(context.Background(), start, end, "u-7")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Kickoff" {
		t.Errorf("list = %v", list)
	}
	if gotQuery["start"] != "2024-03-10" || gotQuery["end"] != "2024-03-16" {
		t.Errorf("interval sent = %v, want both bounds inclusive as dates", gotQuery)
	}
	if gotQuery["assignee"] != "u-7" {
		t.Errorf("assignee = %q", gotQuery["assignee"])
	}
	if gotAuth != "Bearer sekret" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestClientDetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Detail(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClientCreateRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var draft Appointment
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		draft.ID = "created-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(draft)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	draft := Appointment{
		Title: "Demo call",
		Start: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
	}
	created, err := c.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "created-1" || created.Title != "Demo call" {
		t.Errorf("created = %+v", created)
	}
}

func TestClientListErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.List(context.Background(), time.Now(), time.Now(), "")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
