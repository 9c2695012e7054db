package esign

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/afero"
)

// DocumentReader loads the raw bytes of a document to attach to an envelope.
type DocumentReader interface {
	ReadDocument(ctx context.Context, path string) ([]byte, error)
}

// FileReader reads documents from a filesystem. Errors from the filesystem are
// returned as-is so callers can test them with errors.Is(err, fs.ErrNotExist).
type FileReader struct {
	fs afero.Fs
}

// NewFileReader returns a reader over fs, or over the OS filesystem when fs is nil.
func NewFileReader(fs afero.Fs) *FileReader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileReader{fs: fs}
}

func (r *FileReader) ReadDocument(_ context.Context, path string) ([]byte, error) {
	return afero.ReadFile(r.fs, path)
}

// ObjectGetter fetches a whole object from a bucket.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// S3Reader reads documents addressed as s3://bucket/key.
type S3Reader struct {
	objects ObjectGetter
}

func NewS3Reader(objects ObjectGetter) *S3Reader {
	return &S3Reader{objects: objects}
}

func (r *S3Reader) ReadDocument(ctx context.Context, path string) ([]byte, error) {
	bucket, key, err := parseS3Path(path)
	if err != nil {
		return nil, err
	}
	return r.objects.GetObject(ctx, bucket, key)
}

func parseS3Path(path string) (string, string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", "", fmt.Errorf("invalid document path %q: %w", path, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("invalid document path %q: expected s3:// scheme", path)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid document path %q: bucket and key are required", path)
	}
	return u.Host, key, nil
}

// SourceReader sends s3:// paths to the object-storage reader and everything
// else to the local reader.
type SourceReader struct {
	Local  DocumentReader
	Remote DocumentReader
}

func (r *SourceReader) ReadDocument(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, "s3://") {
		if r.Remote == nil {
			return nil, fmt.Errorf("no object storage configured for document %q", path)
		}
		return r.Remote.ReadDocument(ctx, path)
	}
	if r.Local == nil {
		return nil, fmt.Errorf("no local reader configured for document %q", path)
	}
	return r.Local.ReadDocument(ctx, path)
}
