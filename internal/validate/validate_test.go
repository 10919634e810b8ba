package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"empty", "", "Email is required"},
		{"missing domain dot", "a@b", "Please enter a valid email address"},
		{"missing at", "a.b.com", "Please enter a valid email address"},
		{"whitespace", "a b@x.com", "Please enter a valid email address"},
		{"two ats", "a@@x.com", "Please enter a valid email address"},
		{"valid", "a@x.com", ""},
		{"valid with subdomain", "ann.k@mail.example.co", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Email(tt.email); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"empty", "", "Password is required"},
		{"too short", "abc", "Password must be at least 6 characters"},
		{"five chars", "abcde", "Password must be at least 6 characters"},
		{"exactly six", "abcdef", ""},
		{"longer", "correct horse battery staple", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Password(tt.password); got != tt.want {
				t.Errorf("Password(%q) = %q, want %q", tt.password, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "Name is required"},
		{"one char", "A", "Name must be at least 2 characters"},
		{"two chars", "Al", ""},
		{"normal", "Ann", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
