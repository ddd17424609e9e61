package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"cvanalyzer/internal/database"
)

const presignTTL = 15 * time.Minute

var errNoDocument = errors.New("no resume document found")

type r2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// objectStore is the R2 bucket holding uploaded résumés.
type objectStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func newObjectStore(ctx context.Context, cfg r2Config) (*objectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &objectStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

func (s *objectStore) upload(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func (s *objectStore) download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// presignGet issues a time-bounded read URL for a stored document.
func (s *objectStore) presignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}
	return req.URL, nil
}

func resumeObjectKey(userID uuid.UUID, ext string) string {
	return "cvs/" + userID.String() + ext
}

// resumeDocument is a located candidate document ready for extraction.
type resumeDocument struct {
	Extension string
	Data      []byte
}

type documentLocator interface {
	Locate(ctx context.Context, userID uuid.UUID) (*resumeDocument, error)
}

// resumeLocator finds a user's stored résumé: the locator row written at
// upload time first, then probing the deterministic per-user keys across
// supported extensions in priority order. errNoDocument when nothing turns
// up in any form.
type resumeLocator struct {
	db    *database.Queries
	store *objectStore
}

var _ documentLocator = (*resumeLocator)(nil)

func (l *resumeLocator) Locate(ctx context.Context, userID uuid.UUID) (*resumeDocument, error) {
	if record, err := l.db.GetResumeByUser(ctx, userID); err == nil {
		data, err := retry(3, func() ([]byte, error) {
			return l.store.download(ctx, record.ObjectKey)
		})
		if err == nil {
			return &resumeDocument{Extension: record.Extension, Data: data}, nil
		}
	}

	for _, ext := range resumeExtensions {
		data, err := l.store.download(ctx, resumeObjectKey(userID, ext))
		if err != nil {
			continue
		}
		return &resumeDocument{Extension: ext, Data: data}, nil
	}

	return nil, errNoDocument
}
