package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/AngelCh415/sdr-funnel/internal/models"
)

// S3GetAPI is the slice of the S3 client the source needs.
type S3GetAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads <prefix>index.json and <prefix><date>.json from a bucket.
type S3Source struct {
	client S3GetAPI
	bucket string
	prefix string
}

func NewS3Source(client S3GetAPI, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// NewS3SourceFromConfig builds the client from the default AWS credential chain.
func NewS3SourceFromConfig(ctx context.Context, bucket, region, prefix string) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for snapshot bucket: %w", err)
	}
	return NewS3Source(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func (s *S3Source) get(ctx context.Context, name string, decode func(io.Reader) error) error {
	key := s.prefix + name
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return ErrNotFound
		}
		return fmt.Errorf("S3 GetObject %s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()
	return decode(out.Body)
}

func (s *S3Source) Dates(ctx context.Context) ([]string, error) {
	var dates []string
	err := s.get(ctx, indexFile, func(r io.Reader) error {
		var err error
		dates, err = decodeIndex(r)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	return dates, err
}

func (s *S3Source) FetchDay(ctx context.Context, date string) (*models.DailyRecord, error) {
	var rec *models.DailyRecord
	err := s.get(ctx, dayFile(date), func(r io.Reader) error {
		var err error
		rec, err = decodeRecord(r, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
