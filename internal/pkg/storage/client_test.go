package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	objects map[string][]Object
	errs    map[string]error
	calls   []string
}

func (f *fakeLister) ListObjects(_ context.Context, bucket, folder string, _ int) ([]Object, error) {
	f.calls = append(f.calls, bucket+"/"+folder)
	if err := f.errs[folder]; err != nil {
		return nil, err
	}
	return f.objects[folder], nil
}

func objectsNamed(folder string, names ...string) []Object {
	out := make([]Object, 0, len(names))
	for _, n := range names {
		out = append(out, Object{Key: folder + "/" + n, Name: n})
	}
	return out
}

func TestIsImageFile(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.jpg", "B.JPEG", "c.png", "d.webp", "e.gif", "f.avif", "DSC_0001.JPG"} {
		assert.True(t, IsImageFile(name), name)
	}
	for _, name := range []string{"b.txt", ".hidden.png", ".emptyFolderPlaceholder", "noext", "", "x.svg", "x.jpg.bak"} {
		assert.False(t, IsImageFile(name), name)
	}
}

func TestListImages_FiltersExtensionsAndHiddenFiles(t *testing.T) {
	lister := &fakeLister{objects: map[string][]Object{
		"kimono": objectsNamed("kimono", "a.jpg", "b.txt", ".hidden.png"),
	}}
	client := NewClient(lister, NewLocator("https://ref.supabase.co/"), 0)

	images := client.ListImages(context.Background(), "DMC", "kimono", "kimono")

	require.Len(t, images, 1)
	img := images[0]
	assert.Equal(t, "kimono-a.jpg", img.ID)
	assert.Equal(t, "a.jpg", img.Name)
	assert.Equal(t, "kimono/a.jpg", img.StoragePath)
	assert.Equal(t, "kimono", img.Category)
	assert.Equal(t, "https://ref.supabase.co/storage/v1/object/public/DMC/kimono/a.jpg", img.PublicURL)
	assert.Equal(t, "/api/img/DMC/kimono/a.jpg", img.ProxiedURL)
}

func TestListImages_ListingFailureYieldsEmpty(t *testing.T) {
	lister := &fakeLister{errs: map[string]error{"dmc": errors.New("permission denied")}}
	client := NewClient(lister, NewLocator("https://ref.supabase.co"), 10)

	images := client.ListImages(context.Background(), "DMC", "dmc", "studio")

	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestListImages_PreservesListingOrder(t *testing.T) {
	lister := &fakeLister{objects: map[string][]Object{
		"chloe": objectsNamed("chloe", "01.jpg", "02.png", "10.webp"),
	}}
	client := NewClient(lister, NewLocator("https://ref.supabase.co"), 10)

	images := client.ListImages(context.Background(), "DMC", "chloe", "chloe")

	require.Len(t, images, 3)
	assert.Equal(t, "01.jpg", images[0].Name)
	assert.Equal(t, "10.webp", images[2].Name)
}

func TestLocator_EscapesSegments(t *testing.T) {
	t.Parallel()

	l := NewLocator("https://ref.supabase.co")
	assert.Equal(t,
		"https://ref.supabase.co/storage/v1/render/image/public/DMC/kimono/%E6%88%90%E4%BA%BA%20%E5%BC%8F.jpg",
		l.RenderURL("DMC", "kimono/成人 式.jpg"))
	assert.Equal(t,
		"https://ref.supabase.co/storage/v1/object/public/DMC/kimono/a%3Fb.jpg",
		l.ObjectURL("DMC", "kimono/a?b.jpg"))
	assert.Equal(t, "/api/img/DMC/kimono/a%23b.jpg", ProxyPath("DMC", "kimono/a#b.jpg"))
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := &Config{BaseURL: "https://ref.supabase.co", Bucket: "DMC"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.ListLimit)

	cfg = &Config{BaseURL: "ref.supabase.co", Bucket: "DMC"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{BaseURL: "https://ref.supabase.co", Bucket: "DMC", AccessKeyID: "id"}
	assert.Error(t, cfg.Validate())
}
