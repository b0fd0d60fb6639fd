package mapping

import "testing"

func TestRewritePath(t *testing.T) {
	tests := []struct {
		name     string
		basePath string
		path     string
		want     string
	}{
		{name: "single placeholder", basePath: "/v1", path: "/users/{id}", want: "/v1/users/.*"},
		{name: "no placeholder", basePath: "", path: "/health", want: "/health"},
		{name: "placeholder mid path", basePath: "/api", path: "/users/{id}/orders", want: "/api/users/.*/orders"},
		// Each placeholder is rewritten independently; the literal segment
		// between them must survive.
		{name: "multiple placeholders", basePath: "", path: "/a/{x}/b/{y}", want: "/a/.*/b/.*"},
		{name: "adjacent placeholders", basePath: "", path: "/files/{name}.{ext}", want: "/files/.*..*"},
		{name: "empty braces untouched", basePath: "", path: "/odd/{}", want: "/odd/{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewritePath(tt.basePath, tt.path); got != tt.want {
				t.Fatalf("RewritePath(%q, %q) = %q, want %q", tt.basePath, tt.path, got, tt.want)
			}
		})
	}
}
