package memory

import (
	"sync"
	"time"

	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
)

// Repository keeps the latest snapshot and the user's team-filter choices.
// Stored snapshots are treated as immutable.
type Repository struct {
	snapshot    *models.AnalysisInput
	lastUpdated time.Time
	selections  map[string]bool
	mu          sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{selections: make(map[string]bool)}
}

func (r *Repository) SaveSnapshot(snapshot *models.AnalysisInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = snapshot
	r.lastUpdated = time.Now()
}

func (r *Repository) GetSnapshot() (*models.AnalysisInput, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot, r.lastUpdated
}

func (r *Repository) SetSelected(leagueID string, selected bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selections[leagueID] = selected
}

// Toggle flips the stored flag for leagueID, starting from current when no
// override exists yet, and returns the new value.
func (r *Repository) Toggle(leagueID string, current bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if selected, ok := r.selections[leagueID]; ok {
		current = selected
	}
	r.selections[leagueID] = !current
	return !current
}

func (r *Repository) Selection(leagueID string) (bool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	selected, ok := r.selections[leagueID]
	return selected, ok
}

// ApplySelections returns a copy of snapshot with stored overrides applied.
func (r *Repository) ApplySelections(snapshot *models.AnalysisInput) *models.AnalysisInput {
	if snapshot == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	selections := make([]models.TeamSelection, len(snapshot.Selections))
	for i, s := range snapshot.Selections {
		if selected, ok := r.selections[s.LeagueID]; ok {
			s.Selected = selected
		}
		selections[i] = s
	}
	return snapshot.WithSelections(selections)
}
