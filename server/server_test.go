package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/hnscope/pkg/domain"
	"github.com/umputun/hnscope/pkg/pager"
	"github.com/umputun/hnscope/server/mocks"
)

func testConfig(pageSize int) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second },
		GetPageSizeFunc:     func() int { return pageSize },
	}
}

// testCatalog serves top as ids 1..n and stories for every id, dead ones as listed
func testCatalog(n int, dead ...int64) *mocks.CatalogMock {
	deadSet := map[int64]bool{}
	for _, id := range dead {
		deadSet[id] = true
	}
	return &mocks.CatalogMock{
		FetchIDsFunc: func(ctx context.Context, key domain.FeedKey) ([]int64, error) {
			if key.IsThread() {
				return []int64{key.Parent * 10, key.Parent*10 + 1}, nil
			}
			ids := make([]int64, n)
			for i := range ids {
				ids[i] = int64(i + 1)
			}
			return ids, nil
		},
		FetchItemFunc: func(ctx context.Context, id int64) (domain.Item, error) {
			return domain.Item{ID: id, Type: domain.ItemStory, Title: fmt.Sprintf("story %d", id), Dead: deadSet[id]}, nil
		},
	}
}

func testServer(cfg ConfigProvider, catalog Catalog, form FeedbackForm) *Server {
	return New(cfg, Deps{
		Catalog:   catalog,
		Assembler: pager.NewAssembler(pager.AssemblerParams{Fetcher: catalog}),
		Feedback:  form,
	}, "test", false)
}

func doRequest(t *testing.T, srv *Server, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) pageResponse {
	t.Helper()
	var resp pageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func itemIDs(items []domain.Item) []int64 {
	res := make([]int64, 0, len(items))
	for _, it := range items {
		res = append(res, it.ID)
	}
	return res
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(10), Deps{}, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
		GetPageSizeFunc: func() int { return 10 },
	}
	srv := testServer(cfg, testCatalog(3), &mocks.FeedbackFormMock{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/api/v1/feeds/top", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hnscope", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_statusHandler(t *testing.T) {
	srv := New(testConfig(10), Deps{}, "1.2.3", false)

	w := doRequest(t, srv, "GET", "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2.3", status["version"])
	assert.NotEmpty(t, status["time"])
}

func TestServer_feedHandler(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		catalog := testCatalog(25, 3)
		srv := testServer(testConfig(10), catalog, &mocks.FeedbackFormMock{})

		w := doRequest(t, srv, "GET", "/api/v1/feeds/top", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decodePage(t, w)
		assert.Equal(t, "top", resp.Feed)
		assert.Equal(t, 0, resp.Page)
		assert.Equal(t, 10, resp.PageSize)
		assert.Equal(t, 25, resp.Total)
		assert.False(t, resp.Exhausted)
		assert.Equal(t, []int64{1, 2, 4, 5, 6, 7, 8, 9, 10}, itemIDs(resp.Items), "dead item omitted")

		require.Len(t, catalog.FetchIDsCalls(), 1)
		assert.Equal(t, domain.FeedKeyOf(domain.FeedTop), catalog.FetchIDsCalls()[0].Key)
	})

	t.Run("last page is shorter", func(t *testing.T) {
		srv := testServer(testConfig(10), testCatalog(25), &mocks.FeedbackFormMock{})

		w := doRequest(t, srv, "GET", "/api/v1/feeds/new?page=2", "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodePage(t, w)
		assert.Equal(t, "new", resp.Feed)
		assert.Equal(t, 2, resp.Page)
		assert.True(t, resp.Exhausted)
		assert.Equal(t, []int64{21, 22, 23, 24, 25}, itemIDs(resp.Items))
	})

	t.Run("empty list", func(t *testing.T) {
		srv := testServer(testConfig(10), testCatalog(0), &mocks.FeedbackFormMock{})

		w := doRequest(t, srv, "GET", "/api/v1/feeds/job", "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodePage(t, w)
		assert.True(t, resp.Exhausted)
		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
	})

	t.Run("bad requests", func(t *testing.T) {
		srv := testServer(testConfig(10), testCatalog(25), &mocks.FeedbackFormMock{})

		tests := []struct {
			name string
			url  string
		}{
			{"unknown feed", "/api/v1/feeds/hot"},
			{"thread as feed", "/api/v1/feeds/item:5"},
			{"negative page", "/api/v1/feeds/top?page=-1"},
			{"non-numeric page", "/api/v1/feeds/top?page=abc"},
			{"page past the end", "/api/v1/feeds/top?page=5"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := doRequest(t, srv, "GET", tt.url, "")
				assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
				assert.Contains(t, w.Body.String(), `"error"`)
			})
		}
	})

	t.Run("id list failure", func(t *testing.T) {
		catalog := &mocks.CatalogMock{
			FetchIDsFunc: func(ctx context.Context, key domain.FeedKey) ([]int64, error) {
				return nil, fmt.Errorf("feed top: %w: unexpected status code 503", domain.ErrNetwork)
			},
		}
		srv := testServer(testConfig(10), catalog, &mocks.FeedbackFormMock{})

		w := doRequest(t, srv, "GET", "/api/v1/feeds/top", "")
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "network failure")
		assert.Empty(t, catalog.FetchItemCalls())
	})

	t.Run("item failures absorbed", func(t *testing.T) {
		catalog := testCatalog(5)
		catalog.FetchItemFunc = func(ctx context.Context, id int64) (domain.Item, error) {
			if id%2 == 0 {
				return domain.Item{}, domain.ErrNetwork
			}
			return domain.Item{ID: id, Type: domain.ItemStory}, nil
		}
		srv := testServer(testConfig(10), catalog, &mocks.FeedbackFormMock{})

		w := doRequest(t, srv, "GET", "/api/v1/feeds/best", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []int64{1, 3, 5}, itemIDs(decodePage(t, w).Items))
	})
}

func TestServer_itemHandler(t *testing.T) {
	catalog := &mocks.CatalogMock{
		FetchItemFunc: func(ctx context.Context, id int64) (domain.Item, error) {
			switch id {
			case 1:
				return domain.Item{ID: 1, Type: domain.ItemStory, Title: "hello", Score: 42}, nil
			case 2:
				return domain.Item{ID: 2, Deleted: true}, nil
			case 3:
				return domain.Item{}, fmt.Errorf("item 3: %w: empty response", domain.ErrMalformedItem)
			default:
				return domain.Item{}, fmt.Errorf("item %d: %w: timeout", id, domain.ErrNetwork)
			}
		},
	}
	srv := testServer(testConfig(10), catalog, &mocks.FeedbackFormMock{})

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"visible", "/api/v1/items/1", http.StatusOK},
		{"deleted", "/api/v1/items/2", http.StatusNotFound},
		{"missing", "/api/v1/items/3", http.StatusNotFound},
		{"network", "/api/v1/items/4", http.StatusBadGateway},
		{"bad id", "/api/v1/items/abc", http.StatusBadRequest},
		{"zero id", "/api/v1/items/0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, srv, "GET", tt.url, "")
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}

	w := doRequest(t, srv, "GET", "/api/v1/items/1", "")
	var item domain.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "hello", item.Title)
	assert.Equal(t, 42, item.Score)
}

func TestServer_commentsHandler(t *testing.T) {
	catalog := testCatalog(0)
	srv := testServer(testConfig(10), catalog, &mocks.FeedbackFormMock{})

	w := doRequest(t, srv, "GET", "/api/v1/items/7/comments", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodePage(t, w)
	assert.Equal(t, "item:7", resp.Feed)
	assert.Equal(t, 2, resp.Total)
	assert.True(t, resp.Exhausted)
	assert.Equal(t, []int64{70, 71}, itemIDs(resp.Items))
	require.Len(t, catalog.FetchIDsCalls(), 1)
	assert.Equal(t, domain.ThreadKey(7), catalog.FetchIDsCalls()[0].Key)

	t.Run("missing parent", func(t *testing.T) {
		catalog.FetchIDsFunc = func(ctx context.Context, key domain.FeedKey) ([]int64, error) {
			return nil, fmt.Errorf("thread 7: %w: %w", domain.ErrMalformedList, domain.ErrMalformedItem)
		}
		w := doRequest(t, srv, "GET", "/api/v1/items/7/comments", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w := doRequest(t, srv, "GET", "/api/v1/items/-7/comments", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServer_feedbackHandlers(t *testing.T) {
	t.Run("get absent", func(t *testing.T) {
		form := &mocks.FeedbackFormMock{
			LoadFunc: func(ctx context.Context) (*domain.FeedbackRecord, error) { return nil, nil },
		}
		srv := testServer(testConfig(10), testCatalog(0), form)
		w := doRequest(t, srv, "GET", "/api/v1/feedback", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get stored", func(t *testing.T) {
		form := &mocks.FeedbackFormMock{
			LoadFunc: func(ctx context.Context) (*domain.FeedbackRecord, error) {
				return &domain.FeedbackRecord{Rating: 4, Comment: "nice", Timestamp: 1700000000}, nil
			},
		}
		srv := testServer(testConfig(10), testCatalog(0), form)
		w := doRequest(t, srv, "GET", "/api/v1/feedback", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"rating":4,"comment":"nice","timestamp":1700000000}`, w.Body.String())
	})

	t.Run("get storage failure", func(t *testing.T) {
		form := &mocks.FeedbackFormMock{
			LoadFunc: func(ctx context.Context) (*domain.FeedbackRecord, error) {
				return nil, fmt.Errorf("load feedback: %w: disk error", domain.ErrStorage)
			},
		}
		srv := testServer(testConfig(10), testCatalog(0), form)
		w := doRequest(t, srv, "GET", "/api/v1/feedback", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("save", func(t *testing.T) {
		form := &mocks.FeedbackFormMock{
			SaveFunc: func(ctx context.Context, rating int, comment string) (domain.FeedbackRecord, error) {
				return domain.FeedbackRecord{Rating: rating, Comment: strings.TrimSpace(comment), Timestamp: 1700000000}, nil
			},
		}
		srv := testServer(testConfig(10), testCatalog(0), form)
		w := doRequest(t, srv, "POST", "/api/v1/feedback", `{"rating":5,"comment":" great "}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"rating":5,"comment":"great","timestamp":1700000000}`, w.Body.String())

		require.Len(t, form.SaveCalls(), 1)
		assert.Equal(t, 5, form.SaveCalls()[0].Rating)
		assert.Equal(t, " great ", form.SaveCalls()[0].Comment)
	})

	t.Run("save validation failure", func(t *testing.T) {
		form := &mocks.FeedbackFormMock{
			SaveFunc: func(ctx context.Context, rating int, comment string) (domain.FeedbackRecord, error) {
				return domain.FeedbackRecord{}, fmt.Errorf("%w: rating is required", domain.ErrValidation)
			},
		}
		srv := testServer(testConfig(10), testCatalog(0), form)
		w := doRequest(t, srv, "POST", "/api/v1/feedback", `{"comment":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "rating is required")
	})

	t.Run("save bad body", func(t *testing.T) {
		form := &mocks.FeedbackFormMock{}
		srv := testServer(testConfig(10), testCatalog(0), form)
		w := doRequest(t, srv, "POST", "/api/v1/feedback", `{"rating":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, form.SaveCalls())
	})

	t.Run("clear", func(t *testing.T) {
		form := &mocks.FeedbackFormMock{
			ClearFunc: func(ctx context.Context) error { return nil },
		}
		srv := testServer(testConfig(10), testCatalog(0), form)
		w := doRequest(t, srv, "DELETE", "/api/v1/feedback", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Len(t, form.ClearCalls(), 1)
	})
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("x: %w", domain.ErrInvalidWindow), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrMalformedItem), http.StatusNotFound},
		{fmt.Errorf("x: %w", domain.ErrMalformedList), http.StatusBadGateway},
		{fmt.Errorf("x: %w", domain.ErrNetwork), http.StatusBadGateway},
		{fmt.Errorf("x: %w", domain.ErrStorage), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, errorStatus(tt.err))
		})
	}
}
