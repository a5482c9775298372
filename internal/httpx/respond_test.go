package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantJSON string
	}{
		{
			name:     "object",
			status:   http.StatusOK,
			data:     map[string]string{"status": "ok"},
			wantJSON: `{"status":"ok"}`,
		},
		{
			name:     "201 created",
			status:   http.StatusCreated,
			data:     map[string]any{"id": "abc", "order": 0},
			wantJSON: `{"id":"abc","order":0}`,
		},
		{
			name:     "empty array",
			status:   http.StatusOK,
			data:     []string{},
			wantJSON: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteJSON(rr, tt.status, tt.data)

			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
			if got := rr.Header().Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", got)
			}
			if got := strings.TrimSpace(rr.Body.String()); got != tt.wantJSON {
				t.Errorf("body = %s, want %s", got, tt.wantJSON)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	t.Run("includes code and message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteError(rr, http.StatusForbidden, "forbidden", "only the admin may change links")

		if rr.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rr.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Error != "forbidden" || resp.Message != "only the admin may change links" {
			t.Errorf("response = %+v", resp)
		}
	})

	t.Run("omits empty message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteError(rr, http.StatusInternalServerError, "internal_error", "")

		if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"internal_error"}` {
			t.Errorf("body = %s", got)
		}
	})
}
