package analysis

import (
	"sort"

	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
)

// rankAllegiance orders by count desc, then name, then id.
func rankAllegiance(rows []models.PlayerAllegiance) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return lessByName(rows[i].PlayerInfo, rows[j].PlayerInfo)
	})
}

// rankExposure orders by exposure percentage desc, then name, then id.
func rankExposure(rows []models.PlayerExposure) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ExposurePercentage != rows[j].ExposurePercentage {
			return rows[i].ExposurePercentage > rows[j].ExposurePercentage
		}
		return lessByName(rows[i].PlayerInfo, rows[j].PlayerInfo)
	})
}

func lessByName(a, b models.PlayerInfo) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}
