package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsorted on purpose, with the folder placeholder object providers create
const kimonoListing = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>DMC</Name>
  <Prefix>kimono/</Prefix>
  <Delimiter>/</Delimiter>
  <MaxKeys>50</MaxKeys>
  <KeyCount>4</KeyCount>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>kimono/c.jpg</Key><LastModified>2026-01-03T00:00:00.000Z</LastModified><Size>30</Size></Contents>
  <Contents><Key>kimono/</Key><LastModified>2026-01-01T00:00:00.000Z</LastModified><Size>0</Size></Contents>
  <Contents><Key>kimono/a.jpg</Key><LastModified>2026-01-01T00:00:00.000Z</LastModified><Size>10</Size></Contents>
  <Contents><Key>kimono/b.png</Key><LastModified>2026-01-02T00:00:00.000Z</LastModified><Size>20</Size></Contents>
  <CommonPrefixes><Prefix>kimono/archive/</Prefix></CommonPrefixes>
</ListBucketResult>`

type s3Stub struct {
	mu    sync.Mutex
	path  string
	query url.Values
	auth  string
}

func newS3Stub(t *testing.T) (*s3Stub, string) {
	t.Helper()
	stub := &s3Stub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.path = r.URL.Path
		stub.query = r.URL.Query()
		stub.auth = r.Header.Get("Authorization")
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(kimonoListing))
	}))
	t.Cleanup(srv.Close)
	return stub, srv.URL
}

func TestS3Lister_ListObjects(t *testing.T) {
	stub, endpoint := newS3Stub(t)
	lister, err := NewS3Lister(&Config{S3Endpoint: endpoint, Region: "ap-northeast-1"})
	require.NoError(t, err)

	objects, err := lister.ListObjects(context.Background(), "DMC", "/kimono/", 50)
	require.NoError(t, err)

	require.Len(t, objects, 3)
	assert.Equal(t, []string{"a.jpg", "b.png", "c.jpg"}, []string{objects[0].Name, objects[1].Name, objects[2].Name})
	assert.Equal(t, "kimono/a.jpg", objects[0].Key)
	assert.Equal(t, int64(10), objects[0].Size)
	assert.Equal(t, 2026, objects[0].LastModified.Year())

	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Equal(t, "/DMC", stub.path)
	assert.Equal(t, "kimono/", stub.query.Get("prefix"))
	assert.Equal(t, "/", stub.query.Get("delimiter"))
	assert.Equal(t, "50", stub.query.Get("max-keys"))
	assert.Equal(t, "2", stub.query.Get("list-type"))
	// public buckets are listed without signing
	assert.Empty(t, stub.auth)
}

func TestS3Lister_SignsWithCredentials(t *testing.T) {
	stub, endpoint := newS3Stub(t)
	lister, err := NewS3Lister(&Config{
		S3Endpoint:      endpoint,
		Region:          "ap-northeast-1",
		AccessKeyID:     "access",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	_, err = lister.ListObjects(context.Background(), "DMC", "kimono", 100)
	require.NoError(t, err)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Contains(t, stub.auth, "AWS4-HMAC-SHA256")
	assert.Contains(t, stub.auth, "Credential=access/")
}

func TestS3Lister_FeedsClientFilter(t *testing.T) {
	_, endpoint := newS3Stub(t)
	lister, err := NewS3Lister(&Config{S3Endpoint: endpoint, Region: "ap-northeast-1"})
	require.NoError(t, err)

	client := NewClient(lister, NewLocator("https://cdn.example.com"), 50)
	images := client.ListImages(context.Background(), "DMC", "kimono", "kimono")

	require.Len(t, images, 3)
	assert.Equal(t, "kimono-a.jpg", images[0].ID)
	assert.Equal(t, "/api/img/DMC/kimono/c.jpg", images[2].ProxiedURL)
}
