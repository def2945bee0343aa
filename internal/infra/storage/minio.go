package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store keeps meal photos in a MinIO/S3 bucket.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New connects to MinIO and makes sure the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// UploadBytes implements foodlog.MediaStore. Photos arrive as multipart
// bytes, never as local files, so the upload streams straight from memory.
func (s *Store) UploadBytes(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	// public URL (bucket is public for meal photos); private buckets would need presigned URLs
	url := fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.bucketName, key)
	return url, nil
}

// Ping checks the bucket is still reachable, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucketName)
	return err
}
