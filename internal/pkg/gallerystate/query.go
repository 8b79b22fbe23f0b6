package gallerystate

import (
	"strconv"

	"github.com/dmcfuji/studiosite/app/models"
)

// Query is the gallery view selection carried in a page URL
type Query struct {
	Category      string
	Page          int
	ViewportWidth int
}

// ParseQuery reads ?category=&page=&vw= values; missing or malformed values use defaults.
func ParseQuery(category, page, viewportWidth string) Query {
	q := Query{Category: category, Page: 1}
	if q.Category == "" {
		q.Category = models.CategoryAll
	}
	if p, err := strconv.Atoi(page); err == nil {
		q.Page = p
	}
	if w, err := strconv.Atoi(viewportWidth); err == nil {
		q.ViewportWidth = w
	}
	return q
}

// Apply drives a controller to the selection. An out-of-range page is rejected by the
// controller and the view stays on page 1.
func (q Query) Apply(c *Controller) {
	if q.Category != models.CategoryAll {
		c.SetActiveCategory(q.Category)
	}
	if q.Page != 1 {
		c.SetPage(q.Page)
	}
}
