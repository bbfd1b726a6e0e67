package news

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datedItem(title, link string, published time.Time) Item {
	return Item{Title: title, Link: link, Published: &published}
}

func TestBuildClustersGroupsSameStory(t *testing.T) {
	items := []Item{
		{Title: "Storm hits coast", Link: "https://a/1", Description: "Heavy rain floods streets"},
		{Title: "Storm hits coast", Link: "https://b/1", Description: "Heavy rainfall floods downtown streets"},
	}

	clusters := BuildClusters(items, DefaultThreshold)
	require.Len(t, clusters, 1)
	assert.Equal(t, 2, clusters[0].Size())
}

func TestBuildClustersEveryItemInExactlyOneCluster(t *testing.T) {
	items := []Item{
		{Title: "Storm hits coast", Link: "https://a/1", Description: "Heavy rain floods streets"},
		{Title: "Markets rally", Link: "https://a/2", Description: "Shares climb on earnings"},
		{Title: "Storm hits coast", Link: "https://b/1", Description: "Heavy rainfall floods downtown"},
		{Title: "Election results announced", Link: "https://c/1", Description: "Votes counted overnight"},
	}

	clusters := BuildClusters(items, DefaultThreshold)

	total := 0
	seen := map[string]int{}
	for _, c := range clusters {
		total += c.Size()
		for _, m := range c.Members {
			seen[m.Link]++
		}
	}
	assert.Equal(t, len(items), total)
	for _, it := range items {
		assert.Equal(t, 1, seen[it.Link], "item %s", it.Link)
	}
}

func TestBuildClustersDeterministic(t *testing.T) {
	var items []Item
	for i := 0; i < 20; i++ {
		items = append(items, Item{
			Title:       fmt.Sprintf("story number %d about topic %d", i, i%5),
			Link:        fmt.Sprintf("https://x/%d", i),
			Description: fmt.Sprintf("details on topic %d", i%5),
		})
	}

	first := BuildClusters(items, 40)
	second := BuildClusters(items, 40)
	assert.Equal(t, first, second)
}

func TestBuildClustersJoinsFirstMatchNotBestMatch(t *testing.T) {
	i1 := Item{Title: "alpha beta gamma", Link: "https://x/1"}
	i2 := Item{Title: "delta epsilon zeta", Link: "https://x/2"}
	// Scores 66 against the first anchor and 100 against the second; the
	// greedy pass still joins the first cluster.
	i3 := Item{Title: "alpha beta delta epsilon zeta", Link: "https://x/3"}

	clusters := BuildClusters([]Item{i1, i2, i3}, 60)
	require.Len(t, clusters, 2)
	assert.Equal(t, 2, clusters[0].Size())
	assert.Equal(t, "https://x/3", clusters[0].Members[1].Link)
	assert.Equal(t, 1, clusters[1].Size())
}

func TestBuildClustersComparesAgainstAnchorNotRepresentative(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	anchor := datedItem("quake shakes city", "https://x/1", t1)
	// Later-dated superset of the anchor: becomes the representative.
	newer := datedItem("quake shakes city downtown area tonight heavy damage", "https://x/2", t2)
	// Scores 66 against the anchor but only 33 against the newer
	// representative; it must still join because the anchor never changes.
	third := Item{Title: "quake shakes suburbs brick walls collapse", Link: "https://x/3"}

	clusters := BuildClusters([]Item{anchor, newer, third}, 50)
	require.Len(t, clusters, 1)
	assert.Equal(t, 3, clusters[0].Size())
	assert.Equal(t, "https://x/2", clusters[0].Representative.Link)
}

func TestRepresentativePrefersLatestDate(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)

	items := []Item{
		datedItem("storm hits coast", "https://a/1", t1),
		datedItem("storm hits coast", "https://b/1", t2),
	}
	clusters := BuildClusters(items, DefaultThreshold)
	require.Len(t, clusters, 1)
	assert.Equal(t, "https://b/1", clusters[0].Representative.Link)
}

func TestRepresentativeUnknownDateNeverDisplacesDated(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	items := []Item{
		datedItem("storm hits coast", "https://a/1", t1),
		{Title: "storm hits coast", Link: "https://b/1"},
	}
	clusters := BuildClusters(items, DefaultThreshold)
	require.Len(t, clusters, 1)
	assert.Equal(t, "https://a/1", clusters[0].Representative.Link)
}

func TestRepresentativeDatedDisplacesUnknown(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	items := []Item{
		{Title: "storm hits coast", Link: "https://a/1"},
		datedItem("storm hits coast", "https://b/1", t1),
	}
	clusters := BuildClusters(items, DefaultThreshold)
	require.Len(t, clusters, 1)
	assert.Equal(t, "https://b/1", clusters[0].Representative.Link)
}

func TestRepresentativeEqualDateDoesNotDisplace(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	items := []Item{
		datedItem("storm hits coast", "https://a/1", t1),
		datedItem("storm hits coast", "https://b/1", t1),
	}
	clusters := BuildClusters(items, DefaultThreshold)
	require.Len(t, clusters, 1)
	assert.Equal(t, "https://a/1", clusters[0].Representative.Link)
}

func TestBuildClustersThresholdZeroMergesEverything(t *testing.T) {
	items := []Item{
		{Title: "storm", Link: "https://a/1"},
		{Title: "completely unrelated story", Link: "https://a/2"},
	}
	clusters := BuildClusters(items, 0)
	require.Len(t, clusters, 1)
	assert.Equal(t, 2, clusters[0].Size())
}
