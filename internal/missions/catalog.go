package missions

import (
	"fmt"
	"sort"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/models"
)

// Catalog is a named, ordered set of daily missions. The order is the display order.
type Catalog struct {
	Name     string
	Missions []models.Mission
}

var catalogs = map[string]Catalog{
	constants.CatalogDefault: {
		Name: constants.CatalogDefault,
		Missions: []models.Mission{
			{ID: 1, Title: "Log your mood in the journal"},
			{ID: 2, Title: "Do one breathing exercise"},
			{ID: 3, Title: "Read a health tip"},
			{ID: 4, Title: "Drink a glass of water"},
		},
	},
	constants.CatalogClassic: {
		Name: constants.CatalogClassic,
		Missions: []models.Mission{
			{ID: 1, Title: "Log your mood in the journal"},
			{ID: 2, Title: "Do one breathing exercise"},
			{ID: 3, Title: "Walk for ten minutes"},
			{ID: 4, Title: "Drink a glass of water"},
			{ID: 5, Title: "Skip the after-meal cigarette ritual"},
			{ID: 6, Title: "Tell someone about your progress"},
		},
	},
}

// Lookup returns the catalog registered under name.
func Lookup(name string) (Catalog, error) {
	c, ok := catalogs[name]
	if !ok {
		return Catalog{}, fmt.Errorf("unknown mission catalog %q", name)
	}
	return c, nil
}

// Names lists the registered catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fresh returns the catalog's missions, all incomplete.
func (c Catalog) Fresh() []models.Mission {
	out := make([]models.Mission, len(c.Missions))
	for i, m := range c.Missions {
		out[i] = models.Mission{ID: m.ID, Title: m.Title}
	}
	return out
}

// Matches reports whether missions carry exactly the catalog's ids in catalog order.
func (c Catalog) Matches(missions []models.Mission) bool {
	if len(missions) != len(c.Missions) {
		return false
	}
	for i := range missions {
		if missions[i].ID != c.Missions[i].ID {
			return false
		}
	}
	return true
}
