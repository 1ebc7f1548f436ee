package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

/*
Supabase wraps the Storage REST API calls the case file flow needs.

Authorization: a legacy service_role JWT needs both `apikey` and
`Authorization: Bearer <token>`; both are sent.
*/
type Supabase struct {
	baseURL string // e.g. https://<project>.supabase.co
	apiKey  string
	bucket  string
	client  *http.Client
}

func NewSupabase(baseURL, apiKey, bucket string) *Supabase {
	return &Supabase{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Supabase) objectURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)
}

func (s *Supabase) authorize(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
}

// Put uploads via POST /storage/v1/object/{bucket}/{key} and returns the
// authenticated object URL.
func (s *Supabase) Put(ctx context.Context, key string, r io.Reader, contentType string, size int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(key), r)
	if err != nil {
		return "", err
	}
	if size > 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", contentType)
	s.authorize(req)

	res, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("supabase upload error: %s | %s", res.Status, string(body))
	}
	return fmt.Sprintf("%s/storage/v1/object/authenticated/%s/%s", s.baseURL, s.bucket, key), nil
}

// Delete removes an object: DELETE /storage/v1/object/{bucket}/{key}.
// 404 counts as success (already gone).
func (s *Supabase) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(key), nil)
	if err != nil {
		return err
	}
	s.authorize(req)

	res, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("supabase delete error: %s | %s", res.Status, string(b))
	}
	return nil
}
