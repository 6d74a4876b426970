package test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/litebase/blockfs/internal/utils"
)

type object struct {
	data    []byte
	modTime time.Time
}

// ObjectClient is an in-memory stand-in for an S3 bucket. It implements the
// calls made by storage.ObjectFileSystemDriver and ignores the bucket name.
type ObjectClient struct {
	mutex   sync.Mutex
	objects map[string]object
}

func NewObjectClient() *ObjectClient {
	return &ObjectClient{
		objects: make(map[string]object),
	}
}

// Keys returns every stored key in lexical order.
func (c *ObjectClient) Keys() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	keys := make([]string, 0, len(c.objects))

	for key := range c.objects {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func (c *ObjectClient) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, source, _ := strings.Cut(aws.ToString(params.CopySource), "/")

	obj, ok := c.objects[source]

	if !ok {
		return nil, &s3types.NoSuchKey{}
	}

	c.objects[aws.ToString(params.Key)] = object{
		data:    bytes.Clone(obj.data),
		modTime: time.Now().UTC(),
	}

	return &s3.CopyObjectOutput{}, nil
}

func (c *ObjectClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.objects, aws.ToString(params.Key))

	return &s3.DeleteObjectOutput{}, nil
}

func (c *ObjectClient) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, id := range params.Delete.Objects {
		delete(c.objects, aws.ToString(id.Key))
	}

	return &s3.DeleteObjectsOutput{}, nil
}

func (c *ObjectClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	obj, ok := c.objects[aws.ToString(params.Key)]

	if !ok {
		return nil, &s3types.NoSuchKey{}
	}

	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(bytes.Clone(obj.data))),
		ContentLength: aws.Int64(int64(len(obj.data))),
		LastModified:  aws.Time(obj.modTime),
	}, nil
}

func (c *ObjectClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	obj, ok := c.objects[aws.ToString(params.Key)]

	if !ok {
		return nil, &s3types.NotFound{}
	}

	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(obj.data))),
		LastModified:  aws.Time(obj.modTime),
	}, nil
}

// ListObjectsV2 pages through the matching keys in lexical order. The
// continuation token is the last key of the previous page.
func (c *ObjectClient) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	prefix := aws.ToString(params.Prefix)
	delimiter := aws.ToString(params.Delimiter)
	maxKeys := int(aws.ToInt32(params.MaxKeys))
	after := aws.ToString(params.ContinuationToken)

	keys := make([]string, 0)

	for key := range c.objects {
		if strings.HasPrefix(key, prefix) && key > after {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	output := &s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Prefix:      params.Prefix,
	}

	seenPrefixes := make(map[string]bool)

	for i, key := range keys {
		if maxKeys > 0 && len(output.Contents)+len(output.CommonPrefixes) >= maxKeys {
			output.IsTruncated = aws.Bool(true)
			output.NextContinuationToken = aws.String(keys[i-1])
			break
		}

		if delimiter != "" {
			rest := strings.TrimPrefix(key, prefix)

			if i := strings.Index(rest, delimiter); i >= 0 {
				commonPrefix := prefix + rest[:i+len(delimiter)]

				if !seenPrefixes[commonPrefix] {
					seenPrefixes[commonPrefix] = true
					output.CommonPrefixes = append(output.CommonPrefixes, s3types.CommonPrefix{Prefix: aws.String(commonPrefix)})
				}

				continue
			}
		}

		obj := c.objects[key]

		output.Contents = append(output.Contents, s3types.Object{
			Key:          aws.String(key),
			LastModified: aws.Time(obj.modTime),
			Size:         aws.Int64(int64(len(obj.data))),
		})
	}

	keyCount, err := utils.SafeIntToInt32(len(output.Contents) + len(output.CommonPrefixes))

	if err != nil {
		return nil, err
	}

	output.KeyCount = aws.Int32(keyCount)

	return output, nil
}

func (c *ObjectClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)

	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.objects[aws.ToString(params.Key)] = object{
		data:    data,
		modTime: time.Now().UTC(),
	}

	return &s3.PutObjectOutput{}, nil
}
