package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	sc "github.com/dspetrov/payportal/internal/server/config"
	"github.com/dspetrov/payportal/internal/server/payments"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func testConfig() *sc.Config {
	return &sc.Config{
		S3Bucket:       "settlement",
		S3Region:       "eu-west-1",
		S3BaseEndpoint: "http://127.0.0.1:9000/",
		S3RootUser:     "minio",
		S3RootPassword: "miniosecret",
	}
}

func testBatch() []payments.SubmittedPayment {
	return []payments.SubmittedPayment{
		{ID: "p-1", BeneficiaryIBAN: "GB29NWBK60161331926819", Amount: decimal.RequireFromString("150.25"), Currency: "GBP"},
		{ID: "p-2", BeneficiaryIBAN: "DE89370400440532013000", Amount: decimal.RequireFromString("99.00"), Currency: "EUR"},
	}
}

func TestPublish_UploadsReport(t *testing.T) {
	orig := putObject
	t.Cleanup(func() { putObject = orig })

	var captured *s3.PutObjectInput
	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		captured = in
		return &s3.PutObjectOutput{}, nil
	}

	reporter := NewS3Reporter(testConfig())
	err := reporter.Publish(context.Background(), testBatch())
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "settlement", *captured.Bucket)
	assert.Regexp(t, `^settlement/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.json$`, *captured.Key)
	assert.Equal(t, "application/json", *captured.ContentType)

	body, err := io.ReadAll(captured.Body)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 2, report.Count)
	require.Len(t, report.Payments, 2)
	assert.Equal(t, "p-1", report.Payments[0].ID)
	assert.True(t, report.Payments[0].Amount.Equal(decimal.RequireFromString("150.25")))
}

func TestPublish_UploadErrorPropagates(t *testing.T) {
	orig := putObject
	t.Cleanup(func() { putObject = orig })

	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, errors.New("bucket offline")
	}

	reporter := NewS3Reporter(testConfig())
	err := reporter.Publish(context.Background(), testBatch())
	assert.Error(t, err)
}

func TestReportStorageKey(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	key := reportStorageKey("batch-1", now)
	assert.Equal(t, "settlement/2025/03/07/batch-1.json", key)
}
