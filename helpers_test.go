package storybook

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Age
	}{
		{name: "plain digits", input: "42", want: AgeOf(42)},
		{name: "leading whitespace", input: "  \t42", want: AgeOf(42)},
		{name: "trailing text ignored", input: "42 years", want: AgeOf(42)},
		{name: "decimal string truncated", input: "42.9", want: AgeOf(42)},
		{name: "negative", input: "-7", want: AgeOf(-7)},
		{name: "plus sign", input: "+7", want: AgeOf(7)},
		{name: "leading zeros", input: "007", want: AgeOf(7)},
		{name: "hex is not parsed", input: "0x1F", want: AgeOf(0)},
		{name: "letters", input: "abc", want: NaNAge},
		{name: "empty", input: "", want: NaNAge},
		{name: "sign only", input: "-", want: NaNAge},
		{name: "overflow", input: "99999999999999999999", want: NaNAge},
		{name: "int", input: 31, want: AgeOf(31)},
		{name: "int64", input: int64(31), want: AgeOf(31)},
		{name: "float truncated", input: 31.7, want: AgeOf(31)},
		{name: "negative float truncated", input: -31.7, want: AgeOf(-31)},
		{name: "NaN float", input: math.NaN(), want: NaNAge},
		{name: "infinite float", input: math.Inf(1), want: NaNAge},
		{name: "huge float", input: 1e30, want: NaNAge},
		{name: "json number", input: json.Number("55"), want: AgeOf(55)},
		{name: "json number exponent", input: json.Number("1e3"), want: AgeOf(1000)},
		{name: "json number fraction", input: json.Number("44.8"), want: AgeOf(44)},
		{name: "json number overflow", input: json.Number("1e300"), want: NaNAge},
		{name: "json number text", input: json.Number("12abc"), want: AgeOf(12)},
		{name: "exponent string is text", input: "1e3", want: AgeOf(1)},
		{name: "nil", input: nil, want: NaNAge},
		{name: "bool", input: true, want: NaNAge},
		{name: "already an age", input: AgeOf(12), want: AgeOf(12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAge(tt.input)
			if got != tt.want {
				t.Errorf("ParseAge(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAuthor(t *testing.T) {
	tests := []struct {
		name  string
		story Story
		want  string
	}{
		{
			name: "default story",
			story: Story{
				Name:      "Elena",
				CreatedAt: MustParseTimestamp("2024-03-15T10:30:00.000Z"),
			},
			want: "— Elena, 2024",
		},
		{
			name: "year from UTC",
			story: Story{
				Name:      "Kai",
				CreatedAt: NewTimestamp(time.Date(2025, 1, 1, 0, 30, 0, 0, time.FixedZone("CET", 3600))),
			},
			want: "— Kai, 2024",
		},
		{
			name:  "missing timestamp",
			story: Story{Name: "Old"},
			want:  "— Old, NaN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAuthor(tt.story)
			if got != tt.want {
				t.Errorf("FormatAuthor() = %q, want %q", got, tt.want)
			}
		})
	}
}
