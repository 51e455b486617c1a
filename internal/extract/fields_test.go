package extract

import (
	"reflect"
	"testing"
)

func TestExtractAddresses(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple street address",
			text: "JOE'S COFFEE SHOP\n123 Main Street\nOpen Daily",
			want: []string{"123 Main Street"},
		},
		{
			name: "abbreviated suffix",
			text: "Visit us at 42 Oak Ave today",
			want: []string{"42 Oak Ave"},
		},
		{
			name: "multiple addresses in order",
			text: "Was at 10 Elm Rd, now at 220 Sunset Boulevard",
			want: []string{"10 Elm Rd", "220 Sunset Boulevard"},
		},
		{
			name: "suffix case insensitive",
			text: "500 harbor DRIVE",
			want: []string{"500 harbor DRIVE"},
		},
		{
			name: "no match",
			text: "no addresses here",
			want: []string{},
		},
		{
			name: "number without suffix is not an address",
			text: "123 Main",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAddresses(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractAddresses(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPhoneNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "hyphenated",
			text: "Call 555-123-4567 today",
			want: []string{"555-123-4567"},
		},
		{
			name: "parenthesized area code",
			text: "(555) 123-4567",
			want: []string{"(555) 123-4567"},
		},
		{
			name: "leading plus one",
			text: "+1 555 123 4567",
			want: []string{"+1 555 123 4567"},
		},
		{
			name: "dotted separators",
			text: "555.123.4567",
			want: []string{"555.123.4567"},
		},
		{
			name: "multiple numbers in order",
			text: "office 555-111-2222 cell 555-333-4444",
			want: []string{"555-111-2222", "555-333-4444"},
		},
		{
			name: "no match",
			text: "no phones here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPhoneNumbers(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPhoneNumbers(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractWebsites(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "bare hostname",
			text: "joescoffee.com",
			want: []string{"joescoffee.com"},
		},
		{
			name: "www prefix",
			text: "visit www.joescoffee.com",
			want: []string{"www.joescoffee.com"},
		},
		{
			name: "scheme prefix",
			text: "https://joescoffee.com",
			want: []string{"https://joescoffee.com"},
		},
		{
			name: "no match",
			text: "no websites here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractWebsites(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractWebsites(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractEmails(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple email",
			text: "contact info@joescoffee.com today",
			want: []string{"info@joescoffee.com"},
		},
		{
			name: "local part punctuation",
			text: "joe.smith+orders@mail.example.org",
			want: []string{"joe.smith+orders@mail.example.org"},
		},
		{
			name: "no match",
			text: "no emails here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEmails(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEmails(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
