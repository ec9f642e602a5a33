package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-a", ":9443",
		"-d", "postgres://example/payments",
		"-s", "supersecret",
		"-t", "30",
		"-o", "https://portal.example.com",
		"-k",
		"-l", "5",
		"-b", "settlement",
		"-g", "eu-west-1",
		"-e", "http://127.0.0.1:9000/",
		"-u", "minio",
		"-p", "miniosecret",
	}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":9443", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://example/payments", c.DatabaseDSN)
	assert.Equal(t, "supersecret", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.SessionValidityDuration)
	assert.Equal(t, "https://portal.example.com", c.CORSOrigin)
	assert.True(t, c.SecureMode)
	assert.Equal(t, 5, c.AuthRateLimitPerMinute)
	assert.Equal(t, "settlement", c.S3Bucket)
	assert.Equal(t, "eu-west-1", c.S3Region)
	assert.Equal(t, "http://127.0.0.1:9000/", c.S3BaseEndpoint)
	assert.Equal(t, "minio", c.S3RootUser)
	assert.Equal(t, "miniosecret", c.S3RootPassword)
}

func TestParseFlags_UnknownFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-z", "whatever", "-a", ":7000"}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":7000", c.EndpointAddrHTTP)
}
