package directory

import (
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/millermeares/FantasyFootballSuperUser/internal/models"
)

const searchThreshold = 0.7

// Directory is the read-only player dataset. It is loaded once and shared.
type Directory struct {
	players map[string]models.PlayerInfo
}

func New(players map[string]models.PlayerInfo) *Directory {
	d := &Directory{players: make(map[string]models.PlayerInfo, len(players))}
	for id, p := range players {
		p.ID = id
		d.players[id] = p
	}
	return d
}

// Load reads a players file shaped as {"<id>": {...player...}}.
func Load(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "reading players file %s", path)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Directory, error) {
	var entries map[string]models.PlayerResponse
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, crerr.Wrap(err, "decoding players file")
	}

	players := make(map[string]models.PlayerInfo, len(entries))
	for id, entry := range entries {
		if id == "" {
			continue
		}
		team := ""
		if entry.Team != nil {
			team = *entry.Team
		}
		players[id] = models.PlayerInfo{
			Name:     displayName(entry),
			Position: entry.Position,
			Team:     team,
		}
	}
	return New(players), nil
}

func displayName(p models.PlayerResponse) string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.players)
}

// Resolve never fails: unknown ids and blank fields get the documented fallbacks.
func (d *Directory) Resolve(id string) models.PlayerInfo {
	info := models.FallbackPlayer(id)
	if d == nil {
		return info
	}
	p, ok := d.players[id]
	if !ok {
		return info
	}
	if p.Name != "" {
		info.Name = p.Name
	}
	if p.Position != "" {
		info.Position = p.Position
	}
	if p.Team != "" {
		info.Team = p.Team
	}
	return info
}

// Search picks the candidate whose name best matches query. An exact id match
// wins outright; otherwise the closest name above the similarity threshold.
func (d *Directory) Search(query string, candidates []string) (models.PlayerInfo, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.PlayerInfo{}, false
	}

	for _, id := range candidates {
		if id == query {
			return d.Resolve(id), true
		}
	}

	ids := append([]string(nil), candidates...)
	sort.Strings(ids)

	var best models.PlayerInfo
	bestScore := -1.0
	needle := strings.ToLower(query)
	for _, id := range ids {
		info := d.Resolve(id)
		score := similarity(needle, strings.ToLower(info.Name))
		if score <= searchThreshold {
			continue
		}
		if score > bestScore || (score == bestScore && info.Name < best.Name) {
			best = info
			bestScore = score
		}
	}

	return best, bestScore >= 0
}

func similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}
