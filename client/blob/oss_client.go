package blob

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Bucket is the object store used for project files. Keys follow
// "{projectId}/{fileName}".
type Bucket interface {
	PutObject(ctx context.Context, key string, r io.Reader) error
	DeleteObject(ctx context.Context, key string) error
	ObjectURL(key string) string
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

type OSSBucket struct {
	bucket        *oss.Bucket
	publicBaseURL string
}

func BuildBucket(endpoint, accessKey, secretKey, bucketName, publicBaseURL string) (*OSSBucket, error) {
	// endpoint http://oss-cn-hangzhou.aliyuncs.com
	cli, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, err
	}

	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	if publicBaseURL == "" {
		publicBaseURL = virtualHostURL(endpoint, bucketName)
	}
	return &OSSBucket{bucket: bucket, publicBaseURL: strings.TrimSuffix(publicBaseURL, "/")}, nil
}

func virtualHostURL(endpoint, bucketName string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "https://" + bucketName + "." + strings.TrimPrefix(endpoint, "//")
	}
	return u.Scheme + "://" + bucketName + "." + u.Host
}

// ObjectKey builds the storage key of a project file.
func ObjectKey(projectID, fileName string) string {
	return projectID + "/" + fileName
}

// PublicURL joins a base URL and an object key, escaping each key segment.
func PublicURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.Join(segments, "/")
}

func (b *OSSBucket) ObjectURL(key string) string {
	return PublicURL(b.publicBaseURL, key)
}

// PutObject overwrites any existing object under the same key.
func (b *OSSBucket) PutObject(ctx context.Context, key string, r io.Reader) error {
	sp := startSpan(ctx, "put-object", key)
	err := b.bucket.PutObject(key, r)
	finishSpan(sp, err)
	return err
}

func (b *OSSBucket) DeleteObject(ctx context.Context, key string) error {
	sp := startSpan(ctx, "delete-object", key)
	err := b.bucket.DeleteObject(key)
	finishSpan(sp, err)
	return err
}

func (b *OSSBucket) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	sp := startSpan(ctx, "list-objects", prefix)
	var result []ObjectInfo
	var err error
	defer func() { finishSpan(sp, err) }()

	marker := oss.Marker("")
	pre := oss.Prefix(prefix)
	for {
		// default page size is 100
		var r oss.ListObjectsResult
		r, err = b.bucket.ListObjects(marker, pre)
		if err != nil {
			return nil, err
		}
		for _, o := range r.Objects {
			result = append(result, ObjectInfo{Key: o.Key, LastModified: o.LastModified})
		}
		if r.IsTruncated {
			pre = oss.Prefix(r.Prefix)
			marker = oss.Marker(r.NextMarker)
		} else {
			break
		}
	}
	return result, nil
}

func startSpan(ctx context.Context, operation, key string) opentracing.Span {
	if ctx == nil {
		return nil
	}
	parentSpan := opentracing.SpanFromContext(ctx)
	if parentSpan == nil {
		return nil
	}
	sp := parentSpan.Tracer().StartSpan(operation, opentracing.ChildOf(parentSpan.Context()))
	sp.SetTag("object-key", key)
	return sp
}

func finishSpan(sp opentracing.Span, err error) {
	if sp == nil {
		return
	}
	ext.Error.Set(sp, err != nil)
	sp.Finish()
}
