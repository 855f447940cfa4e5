package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	controller "github.com/m-mizutani/gramfetch/pkg/controller/http"
	"github.com/m-mizutani/gramfetch/pkg/domain/model"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
)

// fetchUCMock is a hand-written FetchUseCase stub for controller tests.
type fetchUCMock struct {
	available bool
	fetchFunc func(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error)
}

func (m *fetchUCMock) Fetch(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error) {
	if m.fetchFunc == nil {
		return nil, goerr.New("fetch not expected in this test")
	}
	return m.fetchFunc(ctx, req)
}

func (m *fetchUCMock) LoaderAvailable(ctx context.Context) bool {
	return m.available
}

func newTestServer(t *testing.T, uc *fetchUCMock) *controller.Server {
	t.Helper()
	server, err := controller.NewServer(context.Background(), uc)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return server
}

func postForm(server *controller.Server, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/fetch", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	return w
}

func TestIndexPage(t *testing.T) {
	t.Run("shows the form when the loader is available", func(t *testing.T) {
		server := newTestServer(t, &fetchUCMock{available: true})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status code = %v, want %v", w.Code, http.StatusOK)
		}
		body := w.Body.String()
		if !strings.Contains(body, "<form") {
			t.Error("page should contain the download form")
		}
		if strings.Contains(body, "pip install instaloader") {
			t.Error("page should not show the install hint")
		}
	})

	t.Run("shows an install hint when the loader is missing", func(t *testing.T) {
		server := newTestServer(t, &fetchUCMock{available: false})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		body := w.Body.String()
		if strings.Contains(body, "<form") {
			t.Error("page should not contain the download form")
		}
		if !strings.Contains(body, "pip install instaloader") {
			t.Error("page should show the install hint")
		}
	})
}

func TestFetchEndpoint(t *testing.T) {
	t.Run("empty URL is rejected without calling the use case", func(t *testing.T) {
		called := false
		uc := &fetchUCMock{
			available: true,
			fetchFunc: func(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error) {
				called = true
				return nil, nil
			},
		}
		server := newTestServer(t, uc)

		w := postForm(server, url.Values{"url": {"   "}})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status code = %v, want %v", w.Code, http.StatusBadRequest)
		}
		if !strings.Contains(w.Body.String(), "Please enter a post URL") {
			t.Error("response should prompt for a URL")
		}
		if called {
			t.Error("use case should not be called for empty input")
		}
	})

	t.Run("successful fetch renders previews", func(t *testing.T) {
		uc := &fetchUCMock{
			available: true,
			fetchFunc: func(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error) {
				return &model.FetchResult{
					ID:        uuid.New(),
					Shortcode: "C6vX4w1yA3e",
					Folder:    "downloads",
					Files: []model.MediaFile{
						{Name: "a.jpg", Kind: model.MediaKindImage},
						{Name: "b.mp4", Kind: model.MediaKindVideo},
					},
				}, nil
			},
		}
		server := newTestServer(t, uc)

		w := postForm(server, url.Values{
			"url":    {"https://www.instagram.com/p/C6vX4w1yA3e/"},
			"folder": {"downloads"},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Status code = %v, want %v", w.Code, http.StatusOK)
		}

		body := w.Body.String()
		if !strings.Contains(body, "Saved 2 file(s)") {
			t.Error("response should report the number of saved files")
		}
		if !strings.Contains(body, `<img src="/files/downloads/a.jpg"`) {
			t.Error("response should embed an image preview")
		}
		if !strings.Contains(body, `<video src="/files/downloads/b.mp4"`) {
			t.Error("response should embed a video preview")
		}
	})

	t.Run("classified errors map to status codes", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{
				name:       "bad request",
				err:        goerr.New("unrecognized post URL format", goerr.T(types.TagBadRequest)),
				wantStatus: http.StatusBadRequest,
			},
			{
				name:       "private",
				err:        goerr.New("this post is private or requires a login", goerr.T(types.TagPrivate)),
				wantStatus: http.StatusForbidden,
			},
			{
				name:       "not found",
				err:        goerr.New("this post could not be found", goerr.T(types.TagNotFound)),
				wantStatus: http.StatusNotFound,
			},
			{
				name:       "rate limited",
				err:        goerr.New("rate limited", goerr.T(types.TagRateLimited)),
				wantStatus: http.StatusTooManyRequests,
			},
			{
				name:       "loader missing",
				err:        goerr.New("instaloader is not installed", goerr.T(types.TagUnavailable)),
				wantStatus: http.StatusServiceUnavailable,
			},
			{
				name:       "generic",
				err:        goerr.New("download failed: boom"),
				wantStatus: http.StatusInternalServerError,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := &fetchUCMock{
					available: true,
					fetchFunc: func(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error) {
						return nil, tt.err
					},
				}
				server := newTestServer(t, uc)

				w := postForm(server, url.Values{"url": {"https://www.instagram.com/p/abc/"}})
				if w.Code != tt.wantStatus {
					t.Errorf("Status code = %v, want %v", w.Code, tt.wantStatus)
				}
				if !strings.Contains(w.Body.String(), tt.err.Error()) {
					t.Error("response should show the failure message")
				}
			})
		}
	})
}

func TestFileRoute(t *testing.T) {
	// The file server must not serve paths outside the base directory.
	server := newTestServer(t, &fetchUCMock{available: true})

	req := httptest.NewRequest(http.MethodGet, "/files/../go.mod", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		t.Errorf("traversal request should not succeed, got %v", w.Code)
	}
}
