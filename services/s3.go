package services

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"jobbuddy/config"
)

type S3Service struct {
	s3Client *s3.S3
	bucket   string
	region   string
}

func NewS3Service(cfg config.S3Config) (*S3Service, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %v", err)
	}

	return &S3Service{
		s3Client: s3.New(sess),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
	}, nil
}

// UploadFile uploads a local file under the given key and returns the key.
func (s *S3Service) UploadFile(filePath, key string) (string, error) {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileContent),
		ContentType: aws.String("image/png"),
	}

	if _, err := s.s3Client.PutObject(input); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	log.Printf("File uploaded to S3 with key: %s", key)
	return key, nil
}
