package models

import "fmt"

// GalleryImage is one displayable image from the storage bucket. Values are built fresh on every
// listing and never mutated; a refresh replaces the whole list.
type GalleryImage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StoragePath string `json:"url"` // bucket-relative, e.g. "kimono/DSC_0001.JPG"
	Category    string `json:"category"`
	PublicURL   string `json:"publicUrl"`
	ProxiedURL  string `json:"proxiedUrl"`
}

// NewGalleryImage builds an image entry. The ID combines category and filename, which is unique
// as long as filenames are unique within a category folder.
func NewGalleryImage(category, name, storagePath, publicURL, proxiedURL string) GalleryImage {
	return GalleryImage{
		ID:          fmt.Sprintf("%s-%s", category, name),
		Name:        name,
		StoragePath: storagePath,
		Category:    category,
		PublicURL:   publicURL,
		ProxiedURL:  proxiedURL,
	}
}
