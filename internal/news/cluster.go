package news

// DefaultThreshold is the similarity percentage at which two items are
// considered the same story.
const DefaultThreshold = 50

// Cluster groups items judged to report the same story. Members keeps
// insertion order; the anchor (first member) seeds all similarity
// comparisons and never changes, while Representative tracks the
// most-recently-dated member for display.
type Cluster struct {
	Members        []Item
	Representative Item

	anchor Item
}

// Size returns the number of members.
func (c *Cluster) Size() int {
	return len(c.Members)
}

func (c *Cluster) add(it Item) {
	c.Members = append(c.Members, it)
	// A dated item displaces an undated representative or a strictly older
	// one; an undated item never displaces anything.
	if it.Published != nil &&
		(c.Representative.Published == nil || it.Published.After(*c.Representative.Published)) {
		c.Representative = it
	}
}

// BuildClusters partitions items into clusters with a single greedy
// left-to-right pass: each item joins the first existing cluster (in
// creation order) whose anchor scores at least threshold against it, or
// opens a new cluster. The result is deterministic for a given input order,
// and order-sensitive by contract: the first-seen item of a topic anchors
// its cluster.
func BuildClusters(items []Item, threshold int) []Cluster {
	var open []*Cluster
	for _, it := range items {
		joined := false
		for _, c := range open {
			if Score(c.anchor, it) >= threshold {
				c.add(it)
				joined = true
				break
			}
		}
		if !joined {
			open = append(open, &Cluster{
				Members:        []Item{it},
				Representative: it,
				anchor:         it,
			})
		}
	}

	clusters := make([]Cluster, len(open))
	for i, c := range open {
		clusters[i] = *c
	}
	return clusters
}
