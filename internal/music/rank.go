package music

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RankTracks orders search results by fuzzy distance between the query and
// "name artist". Results the matcher does not rank keep their original order
// after the ranked ones. The input slice is not modified.
func RankTracks(tracks []Track, query string) []Track {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(tracks) < 2 {
		return cloneTracks(tracks)
	}
	labels := make([]string, len(tracks))
	for i, t := range tracks {
		labels[i] = t.Name + " " + t.Artist
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]Track, 0, len(tracks))
	seen := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		if rank.OriginalIndex < 0 || rank.OriginalIndex >= len(tracks) {
			continue
		}
		if _, dup := seen[rank.OriginalIndex]; dup {
			continue
		}
		seen[rank.OriginalIndex] = struct{}{}
		out = append(out, tracks[rank.OriginalIndex])
	}
	for i, t := range tracks {
		if _, ok := seen[i]; !ok {
			out = append(out, t)
		}
	}
	return out
}

func cloneTracks(tracks []Track) []Track {
	if tracks == nil {
		return nil
	}
	dup := make([]Track, len(tracks))
	copy(dup, tracks)
	return dup
}
