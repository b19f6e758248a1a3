// Package filestore uploads post images to S3 and hands back the public URL
// under which they are served.
package filestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3FileStore struct {
	bucket string
	publicPrefix string
	uploader *s3manager.Uploader
}

// NewS3 builds a store for the given bucket. publicPrefix, when set, is the
// CDN origin uploaded keys are reachable under; otherwise the plain S3 URL
// is returned.
func NewS3(bucket string, region string, publicPrefix string) (*S3FileStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket: bucket,
		publicPrefix: publicPrefix,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func (s *S3FileStore) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL: aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key: aws.String(key),
		Body: body,
	})
	if err != nil {
		return "", err
	}

	if s.publicPrefix != "" {
		return strings.TrimSuffix(s.publicPrefix, "/") + "/" + key, nil
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}
