// Package readme extracts, rewrites and strips image references in raw
// README markdown. Scanning is regex-based and deliberately isolated behind
// this package's API so it could be swapped for a markdown-AST walk without
// touching callers.
package readme

import (
	"net/url"
	"regexp"
	"strings"
)

const rawContentBase = "https://raw.githubusercontent.com"

var (
	markdownImagePattern  = regexp.MustCompile(`!\[.*?\]\(([^)]+)\)`)
	htmlImageSrcPattern   = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
	htmlImageTagPattern   = regexp.MustCompile(`(?i)<img[^>]*>`)
	relativePrefixPattern = regexp.MustCompile(`^\.?/`)
)

// ignoredImagePatterns drop badge/CI/coverage/sponsor images. Nearly all
// status badges are SVG while real screenshots are not, so generic .svg is
// suppressed too.
var ignoredImagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)shields\.io`),
	regexp.MustCompile(`(?i)badge`),
	regexp.MustCompile(`(?i)travis-ci`),
	regexp.MustCompile(`(?i)circleci`),
	regexp.MustCompile(`(?i)sonarcloud`),
	regexp.MustCompile(`(?i)codecov`),
	regexp.MustCompile(`(?i)coveralls`),
	regexp.MustCompile(`(?i)appveyor`),
	regexp.MustCompile(`(?i)opencollective`),
	regexp.MustCompile(`(?i)ko-fi`),
	regexp.MustCompile(`(?i)buymeacoffee`),
	regexp.MustCompile(`(?i)sponsor`),
	regexp.MustCompile(`(?i)license`),
	regexp.MustCompile(`(?i)actions/workflows`),
	regexp.MustCompile(`(?i)github\.com/.*/badges/`),
	regexp.MustCompile(`(?i)github\.com/.*/actions/`),
	regexp.MustCompile(`(?i)\.svg`),
}

func isIgnoredImage(rawURL string) bool {
	for _, pattern := range ignoredImagePatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// resolveImageURL rewrites a repo-relative image path to the raw-content URL
// for the repository's branch, percent-encoding each path segment and
// preserving any query string. Absolute http(s) URLs and data URIs pass
// through; protocol-relative URLs gain an https scheme.
func resolveImageURL(rawURL, owner, repoName, branch string) string {
	if strings.HasPrefix(rawURL, "http") || strings.HasPrefix(rawURL, "data:") {
		return rawURL
	}
	if strings.HasPrefix(rawURL, "//") {
		return "https:" + rawURL
	}

	trimmed := relativePrefixPattern.ReplaceAllString(rawURL, "")
	pathPart, query, _ := strings.Cut(trimmed, "?")

	var segments []string
	for _, segment := range strings.Split(pathPart, "/") {
		if segment == "" {
			continue
		}
		segments = append(segments, url.PathEscape(segment))
	}

	resolved := rawContentBase + "/" + url.PathEscape(owner) + "/" +
		url.PathEscape(repoName) + "/" + url.PathEscape(branch) + "/" +
		strings.Join(segments, "/")
	if query != "" {
		resolved += "?" + query
	}
	return resolved
}

// ExtractImages collects image URLs from a markdown body in first-seen
// order: markdown image syntax first, then embedded <img> tags. Duplicates
// and badge-style images are dropped; relative paths are resolved against
// the repository's raw-content base.
func ExtractImages(markdown, owner, repoName, branch string) []string {
	var found []string
	for _, match := range markdownImagePattern.FindAllStringSubmatch(markdown, -1) {
		found = append(found, strings.TrimSpace(match[1]))
	}
	for _, match := range htmlImageSrcPattern.FindAllStringSubmatch(markdown, -1) {
		found = append(found, strings.TrimSpace(match[1]))
	}

	var images []string
	seen := map[string]bool{}
	for _, rawURL := range found {
		if seen[rawURL] {
			continue
		}
		seen[rawURL] = true
		if isIgnoredImage(rawURL) {
			continue
		}
		images = append(images, resolveImageURL(rawURL, owner, repoName, branch))
	}
	return images
}

// StripImages removes every image reference (both syntaxes) from a markdown
// body, so images rendered in a separate gallery are not shown twice.
func StripImages(markdown string) string {
	stripped := markdownImagePattern.ReplaceAllString(markdown, "")
	return htmlImageTagPattern.ReplaceAllString(stripped, "")
}
