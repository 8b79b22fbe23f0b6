package viewmodel

// OpenGraph carries the social preview tags rendered in the layout head
type OpenGraph struct {
	Title       string
	Description string
	// Path relative to the site root, e.g. /ja/gallery
	Path   string
	Image  string
	Locale string
}

// ogLocales maps site locales to og:locale values
var ogLocales = map[string]string{
	"ja": "ja_JP",
	"en": "en_US",
}

// NewOpenGraph builds the preview for a page. Unknown locales fall back to ja_JP.
func NewOpenGraph(title, description, path, locale string) *OpenGraph {
	og, ok := ogLocales[locale]
	if !ok {
		og = ogLocales["ja"]
	}
	return &OpenGraph{Title: title, Description: description, Path: path, Locale: og}
}

// WithImage sets the preview image
func (o *OpenGraph) WithImage(url string) *OpenGraph {
	o.Image = url
	return o
}
