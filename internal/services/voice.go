package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// VoiceStore keeps voice-note audio out of the chat log and hands back a reference to it
type VoiceStore interface {
	Put(ctx context.Context, matchID string, audio []byte) (string, error)
}

// S3PutAPI is the part of the S3 client the voice store uses
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3 voice store
type S3Options struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint is set for S3-compatible providers; path-style addressing is used then
	Endpoint string
}

// S3VoiceStore uploads voice notes to an S3 bucket
type S3VoiceStore struct {
	client S3PutAPI
	bucket string
}

// NewS3VoiceStore creates a voice store backed by a real S3 client
func NewS3VoiceStore(ctx context.Context, opts S3Options) (*S3VoiceStore, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3VoiceStoreWithClient(client, opts.Bucket), nil
}

// NewS3VoiceStoreWithClient creates a voice store on an existing client
func NewS3VoiceStoreWithClient(client S3PutAPI, bucket string) *S3VoiceStore {
	return &S3VoiceStore{client: client, bucket: bucket}
}

// Put uploads audio under voice/{match_id}/{uuid}.webm and returns its s3:// reference
func (s *S3VoiceStore) Put(ctx context.Context, matchID string, audio []byte) (string, error) {
	key := fmt.Sprintf("voice/%s/%s.webm", matchID, uuid.New().String())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(audio),
		ContentType: aws.String("audio/webm"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload voice note: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
