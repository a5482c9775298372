package httpx

import (
	"net/http/httptest"
	"strings"
	"testing"
)

type testRequest struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Order int    `json:"order"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		errContains string
		validate    func(*testing.T, testRequest)
	}{
		{
			name: "valid JSON",
			body: `{"name":"Portfolio","url":"https://example.com","order":3}`,
			validate: func(t *testing.T, req testRequest) {
				if req.Name != "Portfolio" {
					t.Errorf("expected name 'Portfolio', got %q", req.Name)
				}
				if req.URL != "https://example.com" {
					t.Errorf("expected url 'https://example.com', got %q", req.URL)
				}
				if req.Order != 3 {
					t.Errorf("expected order 3, got %d", req.Order)
				}
			},
		},
		{
			name: "missing fields decode to zero values",
			body: `{"name":"Only"}`,
			validate: func(t *testing.T, req testRequest) {
				if req.URL != "" || req.Order != 0 {
					t.Errorf("expected zero values, got %+v", req)
				}
			},
		},
		{
			name:        "empty body",
			body:        "",
			wantErr:     true,
			errContains: "request body is empty",
		},
		{
			name:        "malformed JSON - trailing comma",
			body:        `{"name":"A","url":"https://a.com",}`,
			wantErr:     true,
			errContains: "malformed JSON",
		},
		{
			name:        "malformed JSON - truncated",
			body:        `{"name":"A"`,
			wantErr:     true,
			errContains: "malformed JSON",
		},
		{
			name:        "unknown field",
			body:        `{"name":"A","createdAt":1}`,
			wantErr:     true,
			errContains: `unknown field "createdAt"`,
		},
		{
			name:        "invalid type for field",
			body:        `{"name":"A","order":"first"}`,
			wantErr:     true,
			errContains: `invalid value for field "order"`,
		},
		{
			name:        "multiple JSON objects",
			body:        `{"name":"A"}{"name":"B"}`,
			wantErr:     true,
			errContains: "multiple JSON objects",
		},
		{
			name:        "body too large",
			body:        `{"name":"` + strings.Repeat("x", MaxRequestBodySize) + `"}`,
			wantErr:     true,
			errContains: "too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/links", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			got, err := DecodeJSON[testRequest](rr, req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("DecodeJSON() error = %q, want containing %q", err.Error(), tt.errContains)
				}
				return
			}
			if tt.validate != nil {
				tt.validate(t, got)
			}
		})
	}
}
