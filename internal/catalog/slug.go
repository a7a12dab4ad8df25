package catalog

import "net/url"

// ToSlug encodes a repository name for use as a URL path segment
func ToSlug(repoName string) string {
	return url.PathEscape(repoName)
}

// FromSlug decodes a project slug back to the repository name. A slug that
// fails to decode is used verbatim rather than failing the lookup.
func FromSlug(slug string) string {
	name, err := url.PathUnescape(slug)
	if err != nil {
		return slug
	}
	return name
}
