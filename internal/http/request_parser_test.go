package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestBodyParser(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		key         string
		want        string
		wantJSON    bool
	}{
		{
			name:        "form encoded",
			contentType: "application/x-www-form-urlencoded",
			body:        "id=42&name=coffee",
			key:         "id",
			want:        "42",
		},
		{
			name:        "json string value",
			contentType: "application/json",
			body:        `{"id":"42"}`,
			key:         "id",
			want:        "42",
			wantJSON:    true,
		},
		{
			name:        "json numeric value",
			contentType: "application/json",
			body:        `{"id":42}`,
			key:         "id",
			want:        "42",
			wantJSON:    true,
		},
		{
			name:        "missing key",
			contentType: "application/x-www-form-urlencoded",
			body:        "other=1",
			key:         "id",
			want:        "",
		},
		{
			name:        "empty body",
			contentType: "application/x-www-form-urlencoded",
			body:        "",
			key:         "id",
			want:        "",
		},
		{
			name:        "value is trimmed",
			contentType: "application/x-www-form-urlencoded",
			body:        "id=%20%2042%20",
			key:         "id",
			want:        "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			p := NewRequestBodyParser(req)
			if err := p.Parse(); err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got := p.Get(tt.key); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
			if p.IsJSON() != tt.wantJSON {
				t.Errorf("IsJSON() = %v, want %v", p.IsJSON(), tt.wantJSON)
			}
		})
	}
}

func TestRequestBodyParserInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":`))
	req.Header.Set("Content-Type", "application/json")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestRequireMethod(t *testing.T) {
	get := httptest.NewRequest(http.MethodGet, "/", nil)
	post := httptest.NewRequest(http.MethodPost, "/", nil)
	del := httptest.NewRequest(http.MethodDelete, "/", nil)

	if RequirePOST(post) != nil {
		t.Error("RequirePOST rejected POST")
	}
	if RequirePOST(get) == nil {
		t.Error("RequirePOST accepted GET")
	}
	if RequireDeleteOrPOST(del) != nil || RequireDeleteOrPOST(post) != nil {
		t.Error("RequireDeleteOrPOST rejected an allowed method")
	}
	if RequireDeleteOrPOST(get) == nil {
		t.Error("RequireDeleteOrPOST accepted GET")
	}
}
