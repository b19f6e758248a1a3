// Package feed holds the pure part of the feed pipeline: parsing the sort
// key and filtering fetched posts by search term and flag selection. The
// ordering itself is done by the store; filtering never mutates its input.
package feed

import (
	"strings"

	"github.com/summit-seekers/forum-service/internal/model"
)

type SortKey string

const (
	SortRecency    SortKey = "recency"
	SortPopularity SortKey = "popularity"
)

// ParseSortKey maps a request parameter to a SortKey, defaulting to recency
// for anything unknown or empty.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SortPopularity):
		return SortPopularity
	default:
		return SortRecency
	}
}

// OrderBy returns the SQL ordering clause for the key. Both orders append
// the primary key so pagination stays stable across ties.
func (k SortKey) OrderBy() string {
	if k == SortPopularity {
		return "upvotes DESC, id DESC"
	}
	return "created_at DESC, id DESC"
}

// Filter keeps a post when the search term is empty or matches title or
// content case-insensitively, and the flag selection is empty or intersects
// the post's flags. An empty term and empty selection return the input
// slice unchanged.
func Filter(posts []*model.FullPost, searchTerm string, selectedFlags []string) []*model.FullPost {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" && len(selectedFlags) == 0 {
		return posts
	}

	selection := make(map[string]bool, len(selectedFlags))
	for _, flag := range selectedFlags {
		flag = strings.TrimSpace(flag)
		if flag != "" {
			selection[strings.ToLower(flag)] = true
		}
	}

	var result []*model.FullPost
	for _, post := range posts {
		if !matchesTerm(post, term) {
			continue
		}
		if !matchesFlags(post, selection) {
			continue
		}
		result = append(result, post)
	}

	return result
}

func matchesTerm(post *model.FullPost, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(post.Post.Title), term) ||
		strings.Contains(strings.ToLower(post.Post.Content), term)
}

func matchesFlags(post *model.FullPost, selection map[string]bool) bool {
	if len(selection) == 0 {
		return true
	}
	for _, flag := range post.Flags {
		if selection[strings.ToLower(flag)] {
			return true
		}
	}
	return false
}
