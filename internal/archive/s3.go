package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	ierr "github.com/rezonia/gst-invoice/internal/errors"
)

// S3Config selects the bucket and, for S3-compatible services, the endpoint
type S3Config struct {
	Bucket       string
	Region       string
	Prefix       string
	Endpoint     string
	UsePathStyle bool

	// Static credentials; when empty the default AWS chain is used
	AccessKeyID     string
	SecretAccessKey string
}

// S3Store uploads documents to a bucket
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}

	var opts []func(*awsConfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsConfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to load aws config").
			Mark(ierr.ErrStorage)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (s *S3Store) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

// Put returns an s3:// URI for the stored object. An existing object is
// never replaced; the error is marked ErrConflict.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	objectKey := s.objectKey(key)

	exists, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		return "", conflict(key, nil)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(ContentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHintf("failed to upload invoice to bucket %s", s.bucket).
			Mark(ierr.ErrStorage)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, objectKey), nil
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ierr.WithError(err).
				WithHintf("archived invoice %s not found", key).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to download invoice").
			Mark(ierr.ErrStorage)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("read object body").Mark(ierr.ErrStorage)
	}
	return data, nil
}

func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("failed to check invoice existence").
			Mark(ierr.ErrStorage)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
