package scoreboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/sport-search/internal/domain/view"
	"github.com/riskibarqy/sport-search/internal/platform/logging"
	"github.com/riskibarqy/sport-search/internal/platform/resilience"
)

func TestSearch_SendsTemplatedQueryParams(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"ok":true,"schedule":[{"title":"Game 1","detail":"7:00 PM"}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	result, err := client.Search(context.Background(), "nhl", view.SearchTeam, "Bruins")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotQuery != "query=Bruins&sport=nhl&type=team" {
		t.Fatalf("unexpected query string: %s", gotQuery)
	}
	if !result.OK {
		t.Fatalf("expected ok result")
	}
	if len(result.Schedule) != 1 || result.Schedule[0].Title != "Game 1" {
		t.Fatalf("unexpected schedule rows: %+v", result.Schedule)
	}
}

func TestSearch_OmitsEmptyQueryParam(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	result, err := client.Search(context.Background(), "nba", view.SearchLeague, "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotQuery != "sport=nba&type=league" {
		t.Fatalf("expected query param to be omitted, got: %s", gotQuery)
	}
	if result.OK {
		t.Fatalf("expected falsy ok flag")
	}
	if len(result.Schedule) != 0 || len(result.Stats) != 0 {
		t.Fatalf("expected empty result lists, got %+v", result)
	}
}

func TestSearch_ErrorStatusBodyStillProjects(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"ok":false,"items":[{"name":"stale row"}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	result, err := client.Search(context.Background(), "mlb", view.SearchTeam, "Sox")
	if err != nil {
		t.Fatalf("expected error body to decode, got: %v", err)
	}
	if result.OK {
		t.Fatalf("expected falsy ok flag from error body")
	}
	if len(result.Schedule) != 1 || result.Schedule[0].Title != "stale row" {
		t.Fatalf("unexpected schedule rows: %+v", result.Schedule)
	}
}

func TestSearch_NonJSONBodyFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	if _, err := client.Search(context.Background(), "nhl", view.SearchPlayer, "Orr"); err == nil {
		t.Fatalf("expected decode failure")
	}
}

func TestSearch_RetriesTransportFailure(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Errorf("response writer does not support hijacking")
				return
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Errorf("hijack connection: %v", err)
				return
			}
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"stats":[{"name":"Bobby Orr","team":"BOS","statline":"9G 29A"}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 2, Logger: logging.NewNop()})
	result, err := client.Search(context.Background(), "nhl", view.SearchPlayer, "Orr")
	if err != nil {
		t.Fatalf("expected retry to recover, got: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected two attempts, got %d", attempts)
	}
	if len(result.Stats) != 1 || result.Stats[0].Statline != "9G 29A" {
		t.Fatalf("unexpected stat rows: %+v", result.Stats)
	}
}

func TestSearch_CircuitBreakerRejectsWhenOpen(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request should not reach the provider")
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
		},
	})
	client.breaker.RecordFailure()

	_, err := client.Search(context.Background(), "nhl", view.SearchTeam, "Bruins")
	if err == nil {
		t.Fatalf("expected breaker rejection")
	}
	if !strings.Contains(err.Error(), "temporarily unavailable") {
		t.Fatalf("unexpected error: %v", err)
	}
}
