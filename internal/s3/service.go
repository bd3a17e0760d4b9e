package s3

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
)

const contentTypePdf = "application/pdf"

type Service interface {
	UploadDocument(ctx context.Context, document *Document) (string, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
}

// NewService returns nil when archiving is disabled
func NewService(cfg *config.Configuration) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := config.LoadAwsConfig(context.Background(), cfg.S3.Region)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return &s3ServiceImpl{
		config: &cfg.S3,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

func (s *s3ServiceImpl) key(id string, docType types.DocumentType, number string) string {
	return ObjectKey(s.config.KeyPrefix, id, docType, number)
}

// UploadDocument stores the PDF and returns its object key
func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) (string, error) {
	key := s.key(document.ID, document.Type, document.Number)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(document.Data),
		ContentType: aws.String(contentTypePdf),
	})
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	return key, nil
}
