package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "resume.pdf", want: "resume.pdf"},
		{name: "slashes replaced", input: "a/b\\c.pdf", want: "a_b_c.pdf"},
		{name: "traversal rejected", input: "../etc/passwd", wantErr: true},
		{name: "empty rejected", input: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeRoleTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Python Developer", want: "Python Developer"},
		{name: "punctuation stripped", input: "C++/C# Developer (Senior)", want: "CC Developer Senior"},
		{name: "digits stripped", input: "Engineer L5", want: "Engineer L"},
		{name: "whitespace trimmed", input: "  DevOps Engineer  ", want: "DevOps Engineer"},
		{name: "only symbols", input: "+++", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeRoleTitle(tt.input); got != tt.want {
				t.Fatalf("SanitizeRoleTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
