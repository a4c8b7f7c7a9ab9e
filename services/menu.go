package services

import (
	"cafe-gandom/models"
)

// menuItems is the café catalog in display order.
var menuItems = []models.MenuItem{
	{ID: "1", Name: "اسپرسو دوبل", NumericPrice: 70000},
	{ID: "2", Name: "اسپرسو تک", NumericPrice: 60000},
	{ID: "3", Name: "لاته", NumericPrice: 100000},
	{ID: "4", Name: "کاپوچینو", NumericPrice: 100000},
	{ID: "5", Name: "چای ماسالا", NumericPrice: 100000},
	{ID: "6", Name: "چای کرک", NumericPrice: 100000},
	{ID: "7", Name: "آمریکانو", NumericPrice: 100000},
	{ID: "8", Name: "موکا", NumericPrice: 100000},
	{ID: "9", Name: "چای", NumericPrice: 50000},
	{ID: "10", Name: "هات چاکلت", NumericPrice: 100000},
	{ID: "11", Name: "نسکافه", NumericPrice: 100000},
	{ID: "12", Name: "املت", NumericPrice: 180000},
	{ID: "13", Name: "نیمرو", NumericPrice: 150000},
}

// Catalog is a read-only, ordered menu with lookup by id.
type Catalog struct {
	items []models.MenuItem
	byID  map[string]int
}

// NewCatalog indexes items. Later duplicates of an id are dropped so ids stay unique.
func NewCatalog(items []models.MenuItem) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(items))}
	for _, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			continue
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// DefaultCatalog returns the built-in café menu.
func DefaultCatalog() *Catalog {
	return NewCatalog(menuItems)
}

func (c *Catalog) ListAllMenu() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) GetMenuItem(id string) (models.MenuItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[i], true
}
