package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	p "path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/litebase/blockfs/pkg/config"

	internalStorage "github.com/litebase/blockfs/internal/storage"
)

// ObjectClient is the subset of the S3 API used by the object driver.
// *s3.Client satisfies it.
type ObjectClient interface {
	s3.ListObjectsV2APIClient
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectFileSystemDriver stores every file as one object in a bucket. The
// object key is the file path without a leading slash. Directories are
// implied by key prefixes, so Mkdir and MkdirAll are no-ops.
//
// Objects carry no lock state: advisory locking is not available on this
// driver.
type ObjectFileSystemDriver struct {
	bucket  string
	client  ObjectClient
	context context.Context
}

// NewObjectFileSystemDriver creates an S3 client from the storage settings of
// c and returns a driver bound to the configured bucket.
func NewObjectFileSystemDriver(c *config.Config) (*ObjectFileSystemDriver, error) {
	ctx := context.Background()

	options := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(c.StorageRegion),
	}

	if c.StorageEndpoint != "" {
		options = append(options, awsConfig.WithBaseEndpoint(c.StorageEndpoint))
	}

	if c.StorageAccessKeyId != "" {
		options = append(options, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				c.StorageAccessKeyId,
				c.StorageSecretAccessKey,
				"",
			),
		))
	}

	sdkConfig, err := awsConfig.LoadDefaultConfig(ctx, options...)

	if err != nil {
		slog.Error("Failed to load object storage configuration", "error", err)
		return nil, err
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		o.UsePathStyle = c.StoragePathStyle
	})

	return NewObjectFileSystemDriverWithClient(c.StorageBucket, client), nil
}

func NewObjectFileSystemDriverWithClient(bucket string, client ObjectClient) *ObjectFileSystemDriver {
	return &ObjectFileSystemDriver{
		bucket:  bucket,
		client:  client,
		context: context.Background(),
	}
}

func (fs *ObjectFileSystemDriver) Mkdir(path string, perm fs.FileMode) error {
	// This is a no-op since we can't create directories in S3
	return nil
}

func (fs *ObjectFileSystemDriver) MkdirAll(path string, perm fs.FileMode) error {
	// This is a no-op since we can't create directories in S3
	return nil
}

// Path returns the object key for path.
func (fs *ObjectFileSystemDriver) Path(path string) string {
	return strings.TrimLeft(path, "/")
}

func (fs *ObjectFileSystemDriver) prefix(path string) string {
	key := strings.TrimRight(fs.Path(path), "/")

	if key == "" {
		return ""
	}

	return key + "/"
}

// ReadDir lists the objects and common prefixes directly below path.
func (fs *ObjectFileSystemDriver) ReadDir(path string) ([]internalStorage.DirEntry, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(fs.bucket),
		Delimiter: aws.String("/"),
		MaxKeys:   aws.Int32(1000),
		Prefix:    aws.String(fs.prefix(path)),
	}

	paginator := s3.NewListObjectsV2Paginator(fs.client, input)

	entries := make([]internalStorage.DirEntry, 0)

	for paginator.HasMorePages() {
		response, err := paginator.NextPage(fs.context)

		if err != nil {
			if isObjectNotFound(err) {
				return nil, os.ErrNotExist
			}

			return nil, err
		}

		for _, obj := range response.Contents {
			key := p.Base(aws.ToString(obj.Key))

			entries = append(entries,
				internalStorage.NewDirEntry(
					key,
					false,
					NewStaticFileInfo(key, aws.ToInt64(obj.Size), aws.ToTime(obj.LastModified)),
				),
			)
		}

		for _, prefix := range response.CommonPrefixes {
			key := p.Base(strings.TrimRight(aws.ToString(prefix.Prefix), "/"))

			entries = append(entries,
				internalStorage.NewDirEntry(
					key,
					true,
					NewStaticFileInfo(key+"/", 0, time.Time{}),
				),
			)
		}
	}

	return entries, nil
}

func (fs *ObjectFileSystemDriver) ReadFile(path string) ([]byte, error) {
	output, err := fs.client.GetObject(fs.context, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.Path(path)),
	})

	if err != nil {
		if isObjectNotFound(err) {
			return nil, os.ErrNotExist
		}

		return nil, err
	}

	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)

	if err != nil {
		return nil, err
	}

	return body, nil
}

// Remove deletes the object at path. Like os.Remove it reports a missing
// object with fs.ErrNotExist.
func (fs *ObjectFileSystemDriver) Remove(path string) error {
	if _, err := fs.Stat(path); err != nil {
		return err
	}

	_, err := fs.client.DeleteObject(fs.context, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.Path(path)),
	})

	return err
}

// RemoveAll deletes the object at path and every object below it.
func (fs *ObjectFileSystemDriver) RemoveAll(path string) error {
	keys, err := fs.listKeys(path)

	if err != nil {
		return err
	}

	keys = append(keys, fs.Path(path))

	for start := 0; start < len(keys); start += 1000 {
		end := min(start+1000, len(keys))

		objectsToDelete := make([]s3types.ObjectIdentifier, 0, end-start)

		for _, key := range keys[start:end] {
			objectsToDelete = append(objectsToDelete, s3types.ObjectIdentifier{Key: aws.String(key)})
		}

		_, err = fs.client.DeleteObjects(fs.context, &s3.DeleteObjectsInput{
			Bucket: aws.String(fs.bucket),
			Delete: &s3types.Delete{
				Objects: objectsToDelete,
				Quiet:   aws.Bool(true),
			},
		})

		if err != nil {
			return err
		}
	}

	return nil
}

// Rename moves a single object, or every object below oldpath when oldpath
// names a directory. S3 has no rename, so this copies and then deletes.
func (fs *ObjectFileSystemDriver) Rename(oldpath, newpath string) error {
	if _, err := fs.Stat(oldpath); err != nil {
		return err
	}

	keys, err := fs.listKeys(oldpath)

	if err != nil {
		return err
	}

	oldKey, newKey := fs.Path(oldpath), fs.Path(newpath)

	if len(keys) == 0 {
		keys = []string{oldKey}
	}

	for _, key := range keys {
		target := newKey + strings.TrimPrefix(key, oldKey)

		if err := fs.moveObject(key, target); err != nil {
			return err
		}
	}

	return nil
}

func (fs *ObjectFileSystemDriver) moveObject(oldKey, newKey string) error {
	_, err := fs.client.CopyObject(fs.context, &s3.CopyObjectInput{
		Bucket:     aws.String(fs.bucket),
		CopySource: aws.String(fmt.Sprintf("%s/%s", fs.bucket, oldKey)),
		Key:        aws.String(newKey),
	})

	if err != nil {
		return err
	}

	_, err = fs.client.DeleteObject(fs.context, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(oldKey),
	})

	return err
}

// Stat reports the object at path, or a directory when objects exist below
// path.
func (fs *ObjectFileSystemDriver) Stat(path string) (internalStorage.FileInfo, error) {
	output, err := fs.client.HeadObject(fs.context, &s3.HeadObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.Path(path)),
	})

	if err == nil {
		return NewStaticFileInfo(p.Base(fs.Path(path)), aws.ToInt64(output.ContentLength), aws.ToTime(output.LastModified)), nil
	}

	if !isObjectNotFound(err) {
		return nil, err
	}

	response, err := fs.client.ListObjectsV2(fs.context, &s3.ListObjectsV2Input{
		Bucket:  aws.String(fs.bucket),
		MaxKeys: aws.Int32(1),
		Prefix:  aws.String(fs.prefix(path)),
	})

	if err != nil {
		return nil, err
	}

	if len(response.Contents) == 0 {
		return nil, os.ErrNotExist
	}

	return NewStaticFileInfo(p.Base(fs.Path(path))+"/", 0, time.Time{}), nil
}

func (fs *ObjectFileSystemDriver) WriteFile(path string, data []byte, perm fs.FileMode) error {
	_, err := fs.client.PutObject(fs.context, &s3.PutObjectInput{
		Body:          bytes.NewReader(data),
		Bucket:        aws.String(fs.bucket),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
		Key:           aws.String(fs.Path(path)),
	})

	return err
}

// listKeys returns every object key below path.
func (fs *ObjectFileSystemDriver) listKeys(path string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(fs.client, &s3.ListObjectsV2Input{
		Bucket:  aws.String(fs.bucket),
		MaxKeys: aws.Int32(1000),
		Prefix:  aws.String(fs.prefix(path)),
	})

	var keys []string

	for paginator.HasMorePages() {
		response, err := paginator.NextPage(fs.context)

		if err != nil {
			return nil, err
		}

		for _, obj := range response.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

func isObjectNotFound(err error) bool {
	var noKey *s3types.NoSuchKey
	var notFound *s3types.NotFound

	if errors.As(err, &notFound) || errors.As(err, &noKey) {
		return true
	}

	var apiErr smithy.APIError

	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}
