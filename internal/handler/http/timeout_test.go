package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	tests := []struct {
		name       string
		timeout    time.Duration
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name:    "fast handler",
			timeout: time.Second,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("success"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "success",
		},
		{
			name:    "implicit header on first write",
			timeout: time.Second,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("first "))
				_, _ = w.Write([]byte("second"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "first second",
		},
		{
			name:    "slow handler",
			timeout: 50 * time.Millisecond,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(200 * time.Millisecond)
				_, _ = w.Write([]byte("late"))
			},
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   "{\"detail\":\"Request timed out.\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Timeout(tt.timeout)(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestTimeout_CancelsContext(t *testing.T) {
	canceled := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			close(canceled)
		case <-time.After(time.Second):
			w.WriteHeader(http.StatusOK)
		}
	})

	rec := httptest.NewRecorder()
	Timeout(30*time.Millisecond)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	select {
	case <-canceled:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("handler context was not canceled")
	}
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestTimeout_WriteAfterTimeout(t *testing.T) {
	writeErr := make(chan error, 1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(10 * time.Millisecond)
		_, err := w.Write([]byte("too late"))
		writeErr <- err
	})

	rec := httptest.NewRecorder()
	Timeout(20*time.Millisecond)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, <-writeErr, http.ErrHandlerTimeout)
	assert.NotContains(t, rec.Body.String(), "too late")
}

func TestTimeout_HeadersReachClient(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="shopping_list.txt"`)
		_, _ = w.Write([]byte("sugar - 150(g)\n"))
	})

	rec := httptest.NewRecorder()
	Timeout(time.Second)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart/", nil))

	assert.Equal(t, `attachment; filename="shopping_list.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "sugar - 150(g)\n", rec.Body.String())
}

func TestTimeout_PanicReachesRecover(t *testing.T) {
	logger, buf := bufferLogger()
	handler := Recover(logger)(Timeout(time.Second)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map")
	})))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "nil map")
}
