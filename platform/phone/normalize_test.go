package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "local mobile number", input: "081234567890", want: "+6281234567890"},
		{name: "already e164", input: "+6281234567890", want: "+6281234567890"},
		{name: "with spaces and dashes", input: " 0812-3456-7890 ", want: "+6281234567890"},
		{name: "empty input", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "unparseable passes through", input: "not-a-number", want: "not-a-number"},
		{name: "too short passes through", input: "0812", want: "0812"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164(tt.input); got != tt.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
