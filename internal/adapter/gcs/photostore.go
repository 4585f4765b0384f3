// Package gcs stores visit photos in a Google Cloud Storage bucket and
// hands back publicly servable links.
package gcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/viamunicipal/potholes-backend/internal/config"
)

// File is one photo to upload. Name is the client-supplied filename,
// used (after sanitization) as the object's basename.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// PhotoStore uploads photos under <street>/<dd.mm.yyyy>/<filename> object keys.
type PhotoStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

// New builds a PhotoStore. Explicit JSON credentials from config take
// precedence; otherwise Application Default Credentials are used.
func New(ctx context.Context, cfg config.StorageConfig) (*PhotoStore, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &PhotoStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *PhotoStore) Close() error {
	return s.client.Close()
}

// Upload writes every file before returning; the first failure aborts the
// rest and returns an error, so callers never persist a partial link set.
// Returned links follow the order of files.
func (s *PhotoStore) Upload(ctx context.Context, street string, day time.Time, files []File) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	prefix := ObjectPrefix(street, day)
	links := make([]string, 0, len(files))
	taken := make(map[string]struct{}, len(files))

	for _, f := range files {
		name := uniqueName(SanitizeFilename(f.Name), taken)
		taken[name] = struct{}{}
		key := prefix + "/" + name

		if err := s.write(ctx, key, f); err != nil {
			return nil, fmt.Errorf("upload %q: %w", name, err)
		}

		links = append(links, s.PublicURL(key))
	}

	return links, nil
}

func (s *PhotoStore) write(ctx context.Context, key string, f File) error {
	data, err := io.ReadAll(f.Content)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

// PublicURL maps an object key to the link stored on records. Without a
// configured base URL the canonical storage.googleapis.com form is used.
func (s *PhotoStore) PublicURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return "https://storage.googleapis.com/" + s.bucket + "/" + key
}

var (
	streetUnsafe   = regexp.MustCompile(`[\\/?%*:|"<>]`)
	filenameUnsafe = regexp.MustCompile(`[^\w\s.\-]`)
)

// ObjectPrefix groups photos by street and by capture date, with the date
// rendered dd.mm.yyyy so keys stay readable in the bucket browser.
func ObjectPrefix(street string, day time.Time) string {
	sanitized := streetUnsafe.ReplaceAllString(strings.TrimSpace(street), "_")
	return sanitized + "/" + day.Format("02.01.2006")
}

// SanitizeFilename strips characters that are awkward in object keys.
func SanitizeFilename(name string) string {
	name = path.Base(strings.TrimSpace(name))
	name = filenameUnsafe.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "photo"
	}
	return name
}

// uniqueName appends _1, _2, ... before the extension until the name is
// free within the current upload batch.
func uniqueName(name string, taken map[string]struct{}) string {
	if _, ok := taken[name]; !ok {
		return name
	}

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
