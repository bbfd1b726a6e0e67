package news

import (
	"fmt"
	"sort"
	"time"
)

// Tier is the repeat-strength bucket of a cluster. TierNone marks unique
// stories.
type Tier int

const (
	TierNone Tier = iota
	TierLow
	TierMedium
	TierHigh
)

const (
	mediumThreshold = 4
	highThreshold   = 6
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	}
	return ""
}

// LightText reports whether a renderer should switch to a light foreground
// for contrast. A hint only.
func (t Tier) LightText() bool {
	return t == TierHigh
}

func tierFor(repeatCount int) Tier {
	switch {
	case repeatCount >= highThreshold:
		return TierHigh
	case repeatCount >= mediumThreshold:
		return TierMedium
	case repeatCount > 1:
		return TierLow
	}
	return TierNone
}

// RankedEntry is one output row: a cluster's representative plus repeat
// metadata for the renderer.
type RankedEntry struct {
	Item        Item
	RepeatCount int
	Repeated    bool
	Tier        Tier
	OtherLinks  []string
	TimeLabel   string
}

// Result holds the two ordered output sequences. Both slices are always
// non-nil, even when empty.
type Result struct {
	Repeated []RankedEntry
	Unique   []RankedEntry
}

// Rank builds one entry per cluster, sorts all entries by representative
// publish date descending (unknown dates after all dated entries, stable
// among themselves) and partitions them into repeated and unique sequences,
// preserving the post-sort relative order within each partition.
func Rank(clusters []Cluster, now time.Time) Result {
	entries := make([]RankedEntry, 0, len(clusters))
	for _, c := range clusters {
		rep := c.Representative
		var others []string
		if len(c.Members) > 1 {
			for _, m := range c.Members {
				if m.Link != rep.Link {
					others = append(others, m.Link)
				}
			}
		}
		size := len(c.Members)
		entries = append(entries, RankedEntry{
			Item:        rep,
			RepeatCount: size,
			Repeated:    size > 1,
			Tier:        tierFor(size),
			OtherLinks:  others,
			TimeLabel:   RelativeTime(now, rep.Published),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Item.Published, entries[j].Item.Published
		if pi == nil {
			return false
		}
		if pj == nil {
			return true
		}
		return pi.After(*pj)
	})

	res := Result{Repeated: []RankedEntry{}, Unique: []RankedEntry{}}
	for _, e := range entries {
		if e.Repeated {
			res.Repeated = append(res.Repeated, e)
		} else {
			res.Unique = append(res.Unique, e)
		}
	}
	return res
}

// NoDateLabel is shown when an item's publish date is unknown.
const NoDateLabel = "Date not available"

// RelativeTime renders "N units ago" for a publish date against the given
// reference time. Months use a 30-day approximation.
func RelativeTime(now time.Time, published *time.Time) string {
	if published == nil {
		return NoDateLabel
	}
	d := now.Sub(*published)
	if d < 0 {
		d = 0
	}

	secs := int(d.Seconds())
	switch {
	case secs <= 1:
		return "just now"
	case secs < 60:
		return fmt.Sprintf("%d seconds ago", secs)
	case secs < 60*60:
		return agoLabel(secs/60, "minute")
	case secs < 24*60*60:
		return agoLabel(secs/(60*60), "hour")
	}

	days := secs / (24 * 60 * 60)
	switch {
	case days < 30:
		return agoLabel(days, "day")
	case days < 365:
		return agoLabel(days/30, "month")
	}
	return agoLabel(days/365, "year")
}

func agoLabel(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
