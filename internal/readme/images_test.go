package readme

import (
	"strings"
	"testing"
)

func TestExtractImagesFiltersBadges(t *testing.T) {
	markdown := `# App

[![Build](https://img.shields.io/github/actions/workflow/status/o/app/ci.yml)](https://example.com)
![License](https://img.shields.io/github/license/o/app)

![Screenshot](docs/screenshot.png)
<img src="https://example.com/demo.gif" alt="demo">
`

	images := ExtractImages(markdown, "testowner", "app", "main")
	want := []string{
		"https://raw.githubusercontent.com/testowner/app/main/docs/screenshot.png",
		"https://example.com/demo.gif",
	}
	if len(images) != len(want) {
		t.Fatalf("ExtractImages() = %v, want %v", images, want)
	}
	for i := range want {
		if images[i] != want[i] {
			t.Errorf("ExtractImages()[%d] = %q, want %q", i, images[i], want[i])
		}
	}
}

func TestExtractImagesDedupesFirstSeen(t *testing.T) {
	markdown := `![One](a.png)
![Again](a.png)
<img src="a.png">
![Two](b.png)`

	images := ExtractImages(markdown, "o", "r", "main")
	if len(images) != 2 {
		t.Fatalf("ExtractImages() = %v, want 2 unique images", images)
	}
	if !strings.HasSuffix(images[0], "/a.png") || !strings.HasSuffix(images[1], "/b.png") {
		t.Errorf("ExtractImages() = %v, want a.png then b.png", images)
	}
}

func TestExtractImagesIgnoredPatterns(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"shields badge", "https://img.shields.io/npm/v/thing"},
		{"workflow badge", "https://github.com/o/r/actions/workflows/ci.yml/badge.svg"},
		{"travis", "https://travis-ci.org/o/r.svg?branch=main"},
		{"codecov", "https://codecov.io/gh/o/r/graph/badge.svg"},
		{"sponsor button", "https://example.com/sponsor-me.png"},
		{"any svg", "https://example.com/logo.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markdown := "![x](" + tt.url + ")"
			if images := ExtractImages(markdown, "o", "r", "main"); len(images) != 0 {
				t.Errorf("ExtractImages() = %v, want the %s filtered out", images, tt.name)
			}
		})
	}
}

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "absolute https passes through",
			in:   "https://example.com/pic.png",
			want: "https://example.com/pic.png",
		},
		{
			name: "data URI passes through",
			in:   "data:image/png;base64,AAAA",
			want: "data:image/png;base64,AAAA",
		},
		{
			name: "protocol-relative gains https",
			in:   "//example.com/pic.png",
			want: "https://example.com/pic.png",
		},
		{
			name: "plain relative path",
			in:   "docs/pic.png",
			want: "https://raw.githubusercontent.com/o/my-repo/main/docs/pic.png",
		},
		{
			name: "dot-slash prefix stripped",
			in:   "./assets/pic.png",
			want: "https://raw.githubusercontent.com/o/my-repo/main/assets/pic.png",
		},
		{
			name: "leading slash stripped",
			in:   "/assets/pic.png",
			want: "https://raw.githubusercontent.com/o/my-repo/main/assets/pic.png",
		},
		{
			name: "segments are percent-encoded",
			in:   "docs/my screenshots/pic 1.png",
			want: "https://raw.githubusercontent.com/o/my-repo/main/docs/my%20screenshots/pic%201.png",
		},
		{
			name: "query string preserved",
			in:   "docs/pic.png?raw=true",
			want: "https://raw.githubusercontent.com/o/my-repo/main/docs/pic.png?raw=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveImageURL(tt.in, "o", "my-repo", "main"); got != tt.want {
				t.Errorf("resolveImageURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripImages(t *testing.T) {
	markdown := `# App

Intro text.

![Screenshot](docs/screenshot.png)

Some more text. <img src="https://example.com/demo.gif" alt="demo"> Trailing.
`

	stripped := StripImages(markdown)
	if strings.Contains(stripped, "![") || strings.Contains(stripped, "<img") {
		t.Errorf("StripImages() left image syntax behind:\n%s", stripped)
	}
	if !strings.Contains(stripped, "Intro text.") || !strings.Contains(stripped, "Trailing.") {
		t.Errorf("StripImages() removed surrounding prose:\n%s", stripped)
	}

	if images := ExtractImages(stripped, "o", "r", "main"); len(images) != 0 {
		t.Errorf("ExtractImages() after strip = %v, want none", images)
	}
}
