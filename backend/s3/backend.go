package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/traverse/data"
)

// S3Backend lists the object hierarchy of a bucket.
// Object keys are split on '/'. Common prefixes and zero-byte objects with a
// trailing slash or the directory content type are directories.
type S3Backend struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
}

func NewS3Backend(endpoint, bucketName, accessKey, secretKey string, useSsl bool) (*S3Backend, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &S3Backend{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// Returns the identifier name defined for this backend
func (*S3Backend) Name() string {
	return "s3"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *S3Backend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	exists, err := sb.client.BucketExists(ctx, sb.bucketName)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("s3: bucket '%s' does not exist", sb.bucketName)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *S3Backend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return nil
}

// WriteObject uploads content as the object for p.
func (sb *S3Backend) WriteObject(ctx context.Context, p string, content []byte) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.client.PutObject(ctx, sb.bucketName, toObjectKey(p), bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: string(data.GetMIMEType(p)),
	})
	return err
}

// Mkdir creates an explicit zero-byte directory object for p.
func (sb *S3Backend) Mkdir(ctx context.Context, p string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.client.PutObject(ctx, sb.bucketName, toObjectKey(p)+"/", bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{
		ContentType: data.ContentTypeDirectory,
	})
	return err
}

// Remove deletes the object for p and every object below it.
func (sb *S3Backend) Remove(ctx context.Context, p string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key := toObjectKey(p)
	objectsCh := sb.client.ListObjects(ctx, sb.bucketName, minio.ListObjectsOptions{
		Prefix:    childPrefix(key),
		Recursive: true,
	})

	errs := data.Errors{}
	for object := range objectsCh {
		if object.Err != nil {
			errs.Add(object.Err)
			continue
		}
		if err := sb.client.RemoveObject(ctx, sb.bucketName, object.Key, minio.RemoveObjectOptions{}); err != nil {
			errs.Add(err)
		}
	}

	if key != "" {
		if err := sb.client.RemoveObject(ctx, sb.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
			errs.Add(err)
		}
	}

	return errs.Errors()
}

// Stat resolves p into an object, an explicit directory object or an implicit
// directory formed by the keys below it.
func (sb *S3Backend) Stat(ctx context.Context, p string) (*data.Entry, error) {
	abs, err := data.ToAbsolutePath(p)
	if err != nil {
		return nil, data.NewListingError(data.KindPathNotExist, p, err)
	}

	sb.mu.RLock()
	defer sb.mu.RUnlock()

	return sb.stat(ctx, abs)
}

func (sb *S3Backend) stat(ctx context.Context, abs string) (*data.Entry, error) {
	key := toObjectKey(abs)
	// Handle empty key (root of bucket) - return synthetic directory entry
	if key == "" {
		return data.NewDirectoryEntry(abs, 0755), nil
	}

	objInfo, err := sb.client.StatObject(ctx, sb.bucketName, key, minio.StatObjectOptions{})
	if err == nil {
		return toEntry(abs, objInfo), nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return nil, toListingError(abs, err)
	}

	// Check if it's an implicit directory
	objectsCh := sb.client.ListObjects(ctx, sb.bucketName, minio.ListObjectsOptions{
		Prefix:  childPrefix(key),
		MaxKeys: 1,
	})

	found := false
	for object := range objectsCh {
		if object.Err != nil {
			return nil, toListingError(abs, object.Err)
		}
		found = true
	}

	if !found {
		return nil, data.NewListingError(data.KindPathNotExist, abs, nil)
	}

	return data.NewDirectoryEntry(abs, 0755), nil
}

// ListChildren lists the objects and common prefixes directly below p in the
// lexical order S3 returns them.
func (sb *S3Backend) ListChildren(ctx context.Context, p string) ([]*data.Entry, error) {
	abs, err := data.ToAbsolutePath(p)
	if err != nil {
		return nil, data.NewListingError(data.KindPathNotExist, p, err)
	}

	sb.mu.RLock()
	defer sb.mu.RUnlock()

	dir, err := sb.stat(ctx, abs)
	if err != nil {
		return nil, err
	}
	if !dir.IsDir() {
		return nil, data.NewListingError(data.KindNotDirectory, abs, nil)
	}

	prefix := childPrefix(toObjectKey(abs))
	objectsCh := sb.client.ListObjects(ctx, sb.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	})

	seen := make(map[string]bool)
	var entries []*data.Entry
	for object := range objectsCh {
		if object.Err != nil {
			return nil, toListingError(abs, object.Err)
		}

		// Skip the directory object itself
		name := strings.TrimSuffix(strings.TrimPrefix(object.Key, prefix), "/")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		entries = append(entries, toEntry(path.Join(abs, name), object))
	}

	return entries, nil
}

// toObjectKey strips the leading slash of an absolute path.
func toObjectKey(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func childPrefix(key string) string {
	if key == "" {
		return ""
	}
	return key + "/"
}

func isDirectory(objInfo minio.ObjectInfo) bool {
	return strings.HasSuffix(objInfo.Key, "/") || objInfo.ContentType == data.ContentTypeDirectory
}

// toEntry converts minio.ObjectInfo to an entry
func toEntry(p string, objInfo minio.ObjectInfo) *data.Entry {
	if isDirectory(objInfo) {
		entry := data.NewDirectoryEntry(p, 0755)
		entry.ModifyTime = objInfo.LastModified
		return entry
	}

	entry := data.NewEntry(p, 0644, objInfo.Size, objInfo.LastModified)
	if objInfo.ContentType != "" {
		entry.ContentType = data.ContentType(objInfo.ContentType)
	}

	return entry
}

func toListingError(p string, err error) *data.ListingError {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return data.NewListingError(data.KindPathNotExist, p, err)
	case "AccessDenied":
		return data.NewListingError(data.KindNotReadable, p, err)
	default:
		return data.NewListingError(data.KindUnknown, p, err)
	}
}
