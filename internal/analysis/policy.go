package analysis

import (
	"fmt"

	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
)

// ConflictPolicy decides what happens to a player starting both for the user
// and for an opponent in the same week.
type ConflictPolicy string

const (
	// PolicyIndependent lists the player in both tables with table-scoped counts.
	PolicyIndependent ConflictPolicy = "independent"
	// PolicyHigherCount keeps the player only in the table with the higher
	// count. Ties stay in cheering for.
	PolicyHigherCount ConflictPolicy = "higher-count"
)

func ParseConflictPolicy(raw string) (ConflictPolicy, error) {
	switch ConflictPolicy(raw) {
	case "", PolicyIndependent:
		return PolicyIndependent, nil
	case PolicyHigherCount:
		return PolicyHigherCount, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q", raw)
	}
}

// ApplyConflictPolicy reconciles the two allegiance tables after computation.
// The input is not modified and ranking order is preserved.
func ApplyConflictPolicy(data models.GamedayData, policy ConflictPolicy) models.GamedayData {
	if policy != PolicyHigherCount {
		return data
	}

	forCounts := make(map[string]int, len(data.CheeringFor))
	for _, p := range data.CheeringFor {
		forCounts[p.ID] = p.Count
	}
	againstCounts := make(map[string]int, len(data.CheeringAgainst))
	for _, p := range data.CheeringAgainst {
		againstCounts[p.ID] = p.Count
	}

	out := data
	out.CheeringFor = make([]models.PlayerAllegiance, 0, len(data.CheeringFor))
	for _, p := range data.CheeringFor {
		if against, ok := againstCounts[p.ID]; ok && against > p.Count {
			continue
		}
		out.CheeringFor = append(out.CheeringFor, p)
	}
	out.CheeringAgainst = make([]models.PlayerAllegiance, 0, len(data.CheeringAgainst))
	for _, p := range data.CheeringAgainst {
		if forCount, ok := forCounts[p.ID]; ok && forCount >= p.Count {
			continue
		}
		out.CheeringAgainst = append(out.CheeringAgainst, p)
	}
	return out
}
