package catalog

import (
	"math"
	"slices"
	"strings"
)

const (
	starWeight    = 0.55
	recencyWeight = 0.45
	// scoreEpsilon is the combined-score difference below which two repos
	// are considered tied and the fallback ordering applies.
	scoreEpsilon = 1e-9
)

type scoredRepo struct {
	repo     Repo
	score    float64
	stars    int
	activity int64
}

// rankRepos orders repositories by a weighted blend of popularity and
// recency. The result is a deterministic permutation of the input; empty and
// single-element inputs are returned unchanged.
func rankRepos(repos []Repo) []Repo {
	if len(repos) <= 1 {
		return repos
	}

	maxStars := 1
	for _, r := range repos {
		if r.Stars > maxStars {
			maxStars = r.Stars
		}
	}

	minActivity := repos[0].activityMillis()
	maxActivity := minActivity
	for _, r := range repos[1:] {
		a := r.activityMillis()
		if a < minActivity {
			minActivity = a
		}
		if a > maxActivity {
			maxActivity = a
		}
	}
	activityRange := maxActivity - minActivity
	if activityRange < 1 {
		activityRange = 1
	}

	scored := make([]scoredRepo, 0, len(repos))
	for _, r := range repos {
		stars := r.Stars
		if stars < 0 {
			stars = 0
		}
		activity := r.activityMillis()
		starsScore := math.Log1p(float64(stars)) / math.Log1p(float64(maxStars))
		recencyScore := float64(activity-minActivity) / float64(activityRange)

		scored = append(scored, scoredRepo{
			repo:     r,
			score:    starsScore*starWeight + recencyScore*recencyWeight,
			stars:    stars,
			activity: activity,
		})
	}

	slices.SortFunc(scored, func(a, b scoredRepo) int {
		if math.Abs(a.score-b.score) > scoreEpsilon {
			if a.score > b.score {
				return -1
			}
			return 1
		}
		if a.stars != b.stars {
			return b.stars - a.stars
		}
		if a.activity != b.activity {
			if a.activity > b.activity {
				return -1
			}
			return 1
		}
		return strings.Compare(a.repo.Name, b.repo.Name)
	})

	ranked := make([]Repo, 0, len(scored))
	for _, entry := range scored {
		ranked = append(ranked, entry.repo)
	}
	return ranked
}
