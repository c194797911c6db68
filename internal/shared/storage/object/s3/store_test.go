package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "career_model.json", want: "career_model.json"},
		{name: "simple prefix", prefix: "models", key: "career_model.json", want: "models/career_model.json"},
		{name: "prefix trailing slash", prefix: "models/", key: "vectorizer.json", want: "models/vectorizer.json"},
		{name: "prefix and key slashes", prefix: "/models/", key: "/v2/label_encoder.json", want: "models/v2/label_encoder.json"},
		{name: "empty key", prefix: "models", key: "", want: "models"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	if got := normalizePrefix("  /models/v3/ "); got != "models/v3" {
		t.Fatalf("normalizePrefix = %q", got)
	}
}
