// Package settlement publishes batch-submit reports toward the downstream
// settlement network's S3 drop bucket. Reports are advisory: the batch has
// already committed in the ledger when a report is written.
package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	sc "github.com/dspetrov/payportal/internal/server/config"
	"github.com/dspetrov/payportal/internal/server/payments"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return client.PutObject(ctx, in)
	}
)

// Report is the JSON document dropped into the settlement bucket after a
// batch submit.
type Report struct {
	BatchID     string                      `json:"batch_id"`
	SubmittedAt time.Time                   `json:"submitted_at"`
	Count       int                         `json:"count"`
	Payments    []payments.SubmittedPayment `json:"payments"`
}

type S3Reporter struct {
	config *sc.Config
}

func NewS3Reporter(config *sc.Config) *S3Reporter {
	return &S3Reporter{config: config}
}

func (r *S3Reporter) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(r.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			r.config.S3RootUser,
			r.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if r.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(r.config.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return client, nil
}

func reportStorageKey(batchID string, now time.Time) string {
	return fmt.Sprintf("settlement/%d/%02d/%02d/%s.json", now.Year(), now.Month(), now.Day(), batchID)
}

// Publish uploads one report per batch. Implements payments.SettlementReporter.
func (r *S3Reporter) Publish(ctx context.Context, batch []payments.SubmittedPayment) error {

	client, err := r.getClient()
	if err != nil {
		return fmt.Errorf("error creating s3 client: %w", err)
	}

	now := time.Now().UTC()
	report := Report{
		BatchID:     uuid.NewString(),
		SubmittedAt: now,
		Count:       len(batch),
		Payments:    batch,
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("error marshalling report: %w", err)
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.config.S3Bucket),
		Key:         aws.String(reportStorageKey(report.BatchID, now)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("error uploading report: %w", err)
	}

	return nil
}
