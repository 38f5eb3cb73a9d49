package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultS3Region = "us-east-1"

// S3Config points the archive at an S3 compatible endpoint such as MinIO.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func (c S3Config) normalized() (S3Config, error) {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	c.AccessKey = strings.TrimSpace(c.AccessKey)
	c.SecretKey = strings.TrimSpace(c.SecretKey)
	c.Bucket = strings.TrimSpace(c.Bucket)
	c.Region = strings.TrimSpace(c.Region)
	switch {
	case c.Endpoint == "":
		return c, errors.New("s3 endpoint is required")
	case c.AccessKey == "" || c.SecretKey == "":
		return c, errors.New("s3 access key and secret key are required")
	case c.Bucket == "":
		return c, errors.New("s3 bucket is required")
	}
	if c.Region == "" {
		c.Region = defaultS3Region
	}
	return c, nil
}

// S3Store archives proposals as objects under proposals/<id>.pdf. The
// bucket is created on first use.
type S3Store struct {
	client *minio.Client
	cfg    S3Config

	bucketOnce sync.Once
	bucketErr  error
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Store{client: client, cfg: cfg}, nil
}

func (s *S3Store) bucket(ctx context.Context) (string, error) {
	s.bucketOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
		switch {
		case err != nil:
			s.bucketErr = err
		case !exists:
			s.bucketErr = s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region})
		}
	})
	if s.bucketErr != nil {
		return "", fmt.Errorf("ensure bucket %s: %w", s.cfg.Bucket, s.bucketErr)
	}
	return s.cfg.Bucket, nil
}

func (s *S3Store) Put(ctx context.Context, id string, pdf []byte) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	bucket, err := s.bucket(ctx)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, bucket, objectKey(id), bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	return err
}

// Get reads the object. GetObject is lazy, so a missing key only surfaces
// on the first read.
func (s *S3Store) Get(ctx context.Context, id string) ([]byte, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	bucket, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, bucket, objectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, notFoundOr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return data, nil
}

func (s *S3Store) List(ctx context.Context) ([]string, error) {
	bucket, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	objects := s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: keyPrefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if id, ok := idFromKey(obj.Key); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func notFoundOr(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrNotFound
	default:
		return err
	}
}
