// Package source opens join inputs and outputs by path. Inputs may be local
// files or s3://bucket/key objects; outputs are always local files.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/pipescan/defectjoin/join"
)

const s3Scheme = "s3://"

// S3Config holds connection settings for s3:// sources. Empty fields fall back
// to the AWS SDK's default chain (environment, shared config, instance role).
type S3Config struct {
	Region          string
	Endpoint        string // custom endpoint, e.g. a MinIO server; enables path-style addressing
	AccessKeyID     string
	SecretAccessKey string
}

// objectGetter is the subset of the S3 client the opener needs.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener resolves source paths to readers.
type Opener struct {
	S3 S3Config

	client objectGetter // built lazily on the first s3:// path
}

// ParseS3URL splits s3://bucket/key. ok is false for anything else.
func ParseS3URL(raw string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(raw, s3Scheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(raw, s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// Open returns a reader for a local path or an s3:// object.
func (o *Opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, s3Scheme) {
		f, err := os.Open(path)
		if err != nil {
			return nil, &join.IOError{Op: "open", Path: path, Err: err}
		}
		return f, nil
	}

	bucket, key, ok := ParseS3URL(path)
	if !ok {
		return nil, &join.IOError{Op: "open", Path: path, Err: fmt.Errorf("malformed S3 URL; want s3://bucket/key")}
	}
	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, &join.IOError{Op: "open", Path: path, Err: err}
	}
	logrus.Debugf("fetching s3 object bucket=%s key=%s", bucket, key)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &join.IOError{Op: "open", Path: path, Err: err}
	}
	return out.Body, nil
}

// Create creates or truncates a local output file.
func (o *Opener) Create(path string) (*os.File, error) {
	if strings.HasPrefix(path, s3Scheme) {
		return nil, &join.IOError{Op: "create", Path: path, Err: fmt.Errorf("outputs must be local files")}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, &join.IOError{Op: "create", Path: path, Err: err}
	}
	return f, nil
}

func (o *Opener) s3Client(ctx context.Context) (objectGetter, error) {
	if o.client != nil {
		return o.client, nil
	}
	var opts []func(*config.LoadOptions) error
	if o.S3.Region != "" {
		opts = append(opts, config.WithRegion(o.S3.Region))
	}
	if o.S3.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.S3.AccessKeyID,
			o.S3.SecretAccessKey,
			"",
		)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	endpoint := o.S3.Endpoint
	o.client = s3.NewFromConfig(awsCfg, func(so *s3.Options) {
		if endpoint != "" {
			so.BaseEndpoint = aws.String(endpoint)
			so.UsePathStyle = true
		}
	})
	return o.client, nil
}
