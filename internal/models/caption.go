package models

import (
	"regexp"
	"strings"
)

var (
	hashtagRegex = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	mentionRegex = regexp.MustCompile(`@([a-zA-Z0-9_.]+)`)
)

// ExtractHashtags returns the lowercased, deduplicated hashtags in a
// caption, in order of first appearance.
func ExtractHashtags(caption string) []string {
	return extract(hashtagRegex, caption, true)
}

// ExtractMentions returns the deduplicated @-mentions in a caption, in
// order of first appearance. Handles keep their case.
func ExtractMentions(caption string) []string {
	return extract(mentionRegex, caption, false)
}

func extract(re *regexp.Regexp, caption string, lower bool) []string {
	matches := re.FindAllStringSubmatch(caption, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := m[1]
		if lower {
			tag = strings.ToLower(tag)
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
