package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	k1 := ObjectKey(12, "Contract.PDF")
	k2 := ObjectKey(12, "Contract.PDF")
	assert.Regexp(t, regexp.MustCompile(`^cases/12/[0-9a-f-]{36}\.pdf$`), k1)
	assert.NotEqual(t, k1, k2)
}

func TestLocal_PutDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir)
	ctx := context.Background()

	loc, err := s.Put(ctx, "cases/1/a.txt", strings.NewReader("hello"), "text/plain", 5)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(loc, "cases/1/a.txt"))

	b, err := os.ReadFile(filepath.Join(dir, "cases", "1", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	require.NoError(t, s.Delete(ctx, "cases/1/a.txt"))
	_, err = os.Stat(filepath.Join(dir, "cases", "1", "a.txt"))
	assert.True(t, os.IsNotExist(err))

	// Missing key is fine.
	assert.NoError(t, s.Delete(ctx, "cases/1/a.txt"))
}

func TestSupabase_PutDelete(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotAuth = r.Method, r.URL.Path, r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSupabase(srv.URL+"/", "key-1", "docs")
	loc, err := s.Put(context.Background(), "cases/2/x.pdf", strings.NewReader("pdf"), "application/pdf", 3)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/storage/v1/object/docs/cases/2/x.pdf", gotPath)
	assert.Equal(t, "Bearer key-1", gotAuth)
	assert.Equal(t, "pdf", gotBody)
	assert.Equal(t, srv.URL+"/storage/v1/object/authenticated/docs/cases/2/x.pdf", loc)

	// 404 on delete is treated as already deleted.
	assert.NoError(t, s.Delete(context.Background(), "cases/2/x.pdf"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestSupabase_UploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewSupabase(srv.URL, "k", "b").Put(context.Background(), "k", strings.NewReader(""), "text/plain", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestS3_Location(t *testing.T) {
	s := &S3{bucket: "legal"}
	assert.Equal(t, "s3://legal/cases/1/a.pdf", s.location("cases/1/a.pdf"))
	s.publicURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/cases/1/a.pdf", s.location("cases/1/a.pdf"))
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), S3Options{Region: "auto"})
	assert.Error(t, err)
}
