package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store uploads appointment attachments to a single bucket. Object keys
// are uuid-based so concurrent uploads of same-named files never collide.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(region, accessKey, secretKey, bucket string) *S3Store {
	client := s3.New(s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			awscreds.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	})

	return &S3Store{
		client: client,
		bucket: bucket,
	}
}

// Put streams the file up and returns the generated object key.
func (s *S3Store) Put(
	ctx context.Context,
	appointmentID uint,
	fileName string,
	contentType string,
	body io.Reader,
) (string, error) {

	key := fmt.Sprintf(
		"attachments/%d/%s%s",
		appointmentID,
		uuid.NewString(),
		filepath.Ext(fileName),
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}
