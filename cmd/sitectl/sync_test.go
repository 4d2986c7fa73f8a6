package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	keys         []string
	contentTypes map[string]string
	buckets      map[string]bool
}

func (f *fakeUploader) Upload(input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	key := aws.StringValue(input.Key)
	f.keys = append(f.keys, key)
	if f.contentTypes == nil {
		f.contentTypes = map[string]string{}
	}
	f.contentTypes[key] = aws.StringValue(input.ContentType)
	if f.buckets == nil {
		f.buckets = map[string]bool{}
	}
	f.buckets[aws.StringValue(input.Bucket)] = true
	return &s3manager.UploadOutput{}, nil
}

func TestSyncDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo"), []byte{0x89, 0x50}, 0o644))

	up := &fakeUploader{}
	require.NoError(t, syncDir(up, "chatapp-dev-frontend-123456789012", dir))

	assert.ElementsMatch(t, []string{"index.html", "assets/app.js", "logo"}, up.keys)
	assert.Contains(t, up.contentTypes["index.html"], "text/html")
	assert.Equal(t, "application/octet-stream", up.contentTypes["logo"])
	assert.True(t, up.buckets["chatapp-dev-frontend-123456789012"])
}

func TestSyncDirMissingDirectory(t *testing.T) {
	up := &fakeUploader{}
	assert.Error(t, syncDir(up, "bucket", filepath.Join(t.TempDir(), "missing")))
}
