package catalog

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxTopicTags           = 3
	fallbackTag            = "Public Repo"
	fallbackDescription    = "No description provided yet."
	fallbackVersionLabel   = "Public Repository"
	versionDateLayout      = "Jan 2, 2006"
	versionDatePrefix      = "Updated "
	issuesPathSuffix       = "/issues"
)

// Project is the display-ready representation of a repository, as consumed
// by the presentation layer.
type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	RepoName    string   `json:"repoName"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
	BugLink     string   `json:"bugLink"`
}

var tagSeparators = regexp.MustCompile(`[\s_-]+`)

// normalizeTag turns a topic label like "open-source_tool" into "Open
// Source Tool".
func normalizeTag(value string) string {
	parts := tagSeparators.Split(value, -1)
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		normalized = append(normalized, string(runes))
	}
	return strings.Join(normalized, " ")
}

// versionLabel derives a human-readable version for a project: the latest
// release tag when one exists, otherwise the last-activity date.
func versionLabel(repo Repo, rel *Release) string {
	if rel != nil && rel.TagName != "" {
		return rel.TagName
	}

	ts := repo.PushedAt
	if ts.IsZero() {
		ts = repo.UpdatedAt
	}
	if ts.IsZero() {
		return fallbackVersionLabel
	}
	return versionDatePrefix + ts.Format(versionDateLayout)
}

// toProject maps a ranked repository (and its optional latest release) to
// the Project record. Tags are unique and ordered: primary language first,
// then up to three normalized topics.
func toProject(repo Repo, rel *Release) Project {
	var tags []string
	seen := map[string]bool{}
	appendTag := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	appendTag(repo.Language)
	topics := repo.Topics
	if len(topics) > maxTopicTags {
		topics = topics[:maxTopicTags]
	}
	for _, topic := range topics {
		appendTag(normalizeTag(topic))
	}
	if len(tags) == 0 {
		tags = []string{fallbackTag}
	}

	description := strings.TrimSpace(repo.Description)
	if description == "" {
		description = fallbackDescription
	}

	return Project{
		ID:          repo.ID,
		Title:       repo.Name,
		RepoName:    repo.Name,
		Description: description,
		Version:     versionLabel(repo, rel),
		Tags:        tags,
		Link:        repo.HTMLURL,
		BugLink:     repo.HTMLURL + issuesPathSuffix,
	}
}
