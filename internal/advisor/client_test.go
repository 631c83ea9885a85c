package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleRequest() Request {
	return Request{
		DailyBudget:   decimal.RequireFromString("9.44"),
		AvailableCash: decimal.NewFromInt(850),
		DaysRemaining: 90,
		Item:          "Sneakers",
		Price:         decimal.NewFromInt(50),
		Currency:      "$",
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(sampleRequest())
	for _, want := range []string{"$850.00", "90 days", "$9.44", "Sneakers", "$50.00"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}

	req := sampleRequest()
	req.Item = "   "
	if p := BuildPrompt(req); !strings.Contains(p, "an unnamed item") {
		t.Fatalf("blank item not replaced:\n%s", p)
	}
}

func TestAdvise_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Skip it. "},{"text":"Buy noodles."}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithModel("models/gemini-test"))
	got, err := c.Advise(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Advise error: %v", err)
	}
	if got != "Skip it. Buy noodles." {
		t.Fatalf("Advise = %q", got)
	}
	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header = %q, want test-key", gotKey)
	}
	if len(gotBody.Contents) != 1 || !strings.Contains(gotBody.Contents[0].Parts[0].Text, "Sneakers") {
		t.Fatalf("request body = %+v", gotBody)
	}
}

func TestAdvise_NoCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	_, err := NewClient("  ", WithBaseURL(srv.URL)).Advise(context.Background(), sampleRequest())
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("err = %v, want ErrNoCredential", err)
	}
	if called {
		t.Fatal("request sent without a credential")
	}
}

func TestAdvise_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{}`, ErrUnauthorized},
		{"bad key", http.StatusBadRequest,
			`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","details":[{"reason":"API_KEY_INVALID"}]}}`,
			ErrUnauthorized},
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"Resource has been exhausted"}}`, ErrQuotaExceeded},
		{"server error", http.StatusInternalServerError, `oops`, ErrUnavailable},
		{"unknown model", http.StatusNotFound, `{"error":{"message":"models/nope is not found"}}`, ErrUnavailable},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, ErrEmptyResponse},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, ErrEmptyResponse},
		{"garbage", http.StatusOK, `not json`, ErrEmptyResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient("k", WithBaseURL(srv.URL)).Advise(context.Background(), sampleRequest())
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if !Recoverable(err) {
				t.Fatalf("Recoverable(%v) = false", err)
			}
		})
	}
}

func TestAdvise_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient("k", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := c.Advise(context.Background(), sampleRequest())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestListModels_FiltersAndPaginates(t *testing.T) {
	pages := map[string]string{
		"": `{"models":[
			{"name":"models/gemini-a","displayName":"A","supportedGenerationMethods":["generateContent","countTokens"]},
			{"name":"models/embedding-b","supportedGenerationMethods":["embedContent"]}
		],"nextPageToken":"p2"}`,
		"p2": `{"models":[
			{"name":"models/gemini-c","displayName":"C","supportedGenerationMethods":["generateContent"]}
		]}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("pageToken")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	models, err := NewClient("k", WithBaseURL(srv.URL)).ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("len(models) = %d, want 2: %+v", len(models), models)
	}
	if models[0].ID() != "gemini-a" || models[1].ID() != "gemini-c" {
		t.Fatalf("model IDs = %q, %q", models[0].ID(), models[1].ID())
	}
}

func TestRecoverable_OtherErrors(t *testing.T) {
	if Recoverable(errors.New("boom")) {
		t.Fatal("Recoverable(unrelated error) = true")
	}
	if Recoverable(nil) {
		t.Fatal("Recoverable(nil) = true")
	}
}
