package analysis

type playerCount struct {
	id      string
	count   int
	leagues []string
}

// playerCounter accumulates per-player appearances across teams. Insertion
// order is kept so league lists and pre-sort order never depend on map order.
type playerCounter struct {
	counts map[string]*playerCount
	order  []string
}

func newPlayerCounter() *playerCounter {
	return &playerCounter{counts: make(map[string]*playerCount)}
}

// addTeam counts each distinct non-empty id once for the given league.
func (c *playerCounter) addTeam(ids []string, league string) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		pc, ok := c.counts[id]
		if !ok {
			pc = &playerCount{id: id}
			c.counts[id] = pc
			c.order = append(c.order, id)
		}
		pc.count++
		if !containsString(pc.leagues, league) {
			pc.leagues = append(pc.leagues, league)
		}
	}
}

// each visits counted players in discovery order.
func (c *playerCounter) each(fn func(pc *playerCount)) {
	for _, id := range c.order {
		fn(c.counts[id])
	}
}

func (c *playerCounter) len() int {
	return len(c.order)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
