package models

// CategoryAll is the filter sentinel that matches every image.
const CategoryAll = "all"

// Category maps a storage folder to the filter tag stamped on its images.
type Category struct {
	Folder string            `yaml:"folder" json:"folder"`
	Name   string            `yaml:"category" json:"category"`
	Labels map[string]string `yaml:"labels" json:"labels"`
}

// Label returns the display label for a locale, falling back to the category name.
func (c Category) Label(locale string) string {
	if l, ok := c.Labels[locale]; ok && l != "" {
		return l
	}
	return c.Name
}

// DefaultCategories mirrors the folders of the production bucket.
func DefaultCategories() []Category {
	return []Category{
		{Folder: "kimono", Name: "kimono", Labels: map[string]string{"ja": "着物撮影", "en": "Kimono"}},
		{Folder: "dmc", Name: "studio", Labels: map[string]string{"ja": "スタジオ", "en": "Studio"}},
		{Folder: "chloe", Name: "chloe", Labels: map[string]string{"ja": "Chloe", "en": "Chloe"}},
		{Folder: "gallery", Name: "gallery", Labels: map[string]string{"ja": "ギャラリー", "en": "Gallery"}},
	}
}
