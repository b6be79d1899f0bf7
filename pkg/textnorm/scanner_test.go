package textnorm

import (
	"reflect"
	"testing"
)

func TestDetectRuns_Basic(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		customChars string
		want        []Run
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "no eligible runes",
			text: "!!! ???",
			want: nil,
		},
		{
			name: "single run",
			text: "abc123",
			want: []Run{{Text: "abc123", Start: 0, End: 6}},
		},
		{
			name: "split by space",
			text: "foo bar",
			want: []Run{
				{Text: "foo", Start: 0, End: 3},
				{Text: "bar", Start: 4, End: 7},
			},
		},
		{
			name:        "custom chars join runs",
			text:        "order_A123-9!",
			customChars: "_-",
			want:        []Run{{Text: "order_A123-9", Start: 0, End: 12}},
		},
		{
			name: "without custom chars the same text splits",
			text: "order_A123-9!",
			want: []Run{
				{Text: "order", Start: 0, End: 5},
				{Text: "A123", Start: 6, End: 10},
				{Text: "9", Start: 11, End: 12},
			},
		},
		{
			name: "offsets are rune offsets",
			text: "日本abc語def",
			want: []Run{
				{Text: "abc", Start: 2, End: 5},
				{Text: "def", Start: 6, End: 9},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectRuns(tt.text, tt.customChars, false, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectRuns(%q, %q) = %+v, want %+v", tt.text, tt.customChars, got, tt.want)
			}
		})
	}
}

func TestDetectRuns_Anchoring(t *testing.T) {
	// "ab cd" has a run at the start and a run at the end.
	const text = "ab cd"
	tests := []struct {
		name          string
		startAnchored bool
		endAnchored   bool
		want          []Run
	}{
		{
			name: "unanchored keeps both",
			want: []Run{
				{Text: "ab", Start: 0, End: 2},
				{Text: "cd", Start: 3, End: 5},
			},
		},
		{
			name:          "start anchored keeps leading run",
			startAnchored: true,
			want:          []Run{{Text: "ab", Start: 0, End: 2}},
		},
		{
			name:        "end anchored keeps trailing run",
			endAnchored: true,
			want:        []Run{{Text: "cd", Start: 3, End: 5}},
		},
		{
			name:          "both anchored rejects partial runs",
			startAnchored: true,
			endAnchored:   true,
			want:          nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectRuns(text, "", tt.startAnchored, tt.endAnchored)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectRuns(%q, anchors %v/%v) = %+v, want %+v",
					text, tt.startAnchored, tt.endAnchored, got, tt.want)
			}
		})
	}
}

func TestDetectRuns_BothAnchoredWholeBuffer(t *testing.T) {
	got := DetectRuns("abc123", "", true, true)
	want := []Run{{Text: "abc123", Start: 0, End: 6}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectRuns = %+v, want %+v", got, want)
	}
}

func TestDetectLetterRuns(t *testing.T) {
	got := DetectLetterRuns("ab1cd")
	want := []Run{
		{Text: "ab", Start: 0, End: 2},
		{Text: "cd", Start: 3, End: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectLetterRuns = %+v, want %+v", got, want)
	}
}

func TestDetectAlphanumericRuns(t *testing.T) {
	got := DetectAlphanumericRuns("ab1 cd2")
	want := []Run{
		{Text: "ab1", Start: 0, End: 3},
		{Text: "cd2", Start: 4, End: 7},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectAlphanumericRuns = %+v, want %+v", got, want)
	}
}

func TestIsAlphanumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"abc123", true},
		{"ABC", true},
		{"ab c", false},
		{"ab-c", false},
		{"日本", false},
	}
	for _, tt := range tests {
		if got := IsAlphanumeric(tt.in); got != tt.want {
			t.Errorf("IsAlphanumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsSurrounded(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		start, end  int
		customChars string
		want        bool
	}{
		{"whole buffer", "abc", 0, 3, "", true},
		{"space on both sides", "x ab y", 2, 4, "", true},
		{"letter on left", "xab y", 1, 3, "", false},
		{"digit on right", "x ab9", 2, 4, "", false},
		{"custom char on right counts as class", "x ab_y", 2, 4, "_", false},
		{"same boundary without custom char", "x ab_y", 2, 4, "", true},
		{"negative start", "abc", -1, 2, "", false},
		{"end past buffer", "abc", 0, 4, "", false},
		{"inverted interval", "abc", 2, 1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSurrounded(tt.text, tt.start, tt.end, tt.customChars)
			if got != tt.want {
				t.Errorf("IsSurrounded(%q, %d, %d, %q) = %v, want %v",
					tt.text, tt.start, tt.end, tt.customChars, got, tt.want)
			}
		})
	}
}
