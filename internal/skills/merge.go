// Package skills provides the category-aware union of skill lists.
package skills

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Merge unions src into dst and returns the result. Categories match
// case-insensitively; within a matched category, src skills already present
// case-insensitively are skipped and new unique skills are appended in src
// order. Categories with no match are appended whole. First-seen casing wins
// for both categories and skills, so merging an already-merged source again
// changes nothing.
func Merge(dst, src []types.SkillCategory) []types.SkillCategory {
	index := make(map[string]int, len(dst))
	for i, cat := range dst {
		index[strings.ToLower(cat.Category)] = i
	}

	for _, cat := range src {
		if i, ok := index[strings.ToLower(cat.Category)]; ok {
			dst[i].Skills = mergeSkills(dst[i].Skills, cat.Skills)
		} else {
			dst = append(dst, cat)
			index[strings.ToLower(cat.Category)] = len(dst) - 1
		}
	}
	return dst
}

// mergeSkills appends skills from src that are not already present in dst,
// comparing case-insensitively and preserving order.
func mergeSkills(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range src {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		dst = append(dst, s)
		seen[key] = struct{}{}
	}
	return dst
}
