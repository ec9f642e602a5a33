package config

import (
	"encoding/json"
	"os"

	"github.com/dspetrov/payportal/internal/flagx"
	"github.com/dspetrov/payportal/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "2h" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	CORSOrigin              string         `json:"cors_origin"`
	SecureMode              bool           `json:"secure_mode"`
	AuthRateLimitPerMinute  int            `json:"auth_rate_limit_per_minute"`

	BootstrapEmployeeUsername string `json:"bootstrap_employee_username"`
	BootstrapEmployeePassword string `json:"bootstrap_employee_password"`
	BootstrapEmployeeFullName string `json:"bootstrap_employee_full_name"`

	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
}

// parseJson loads configuration values from an optional JSON file into the
// provided Config. The file path is taken from the -c or -config flags; when
// neither is set, nothing is loaded. An unreadable or malformed file panics:
// a half-applied config is worse than refusing to start.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.CORSOrigin != "" {
		config.CORSOrigin = c.CORSOrigin
	}
	if c.SecureMode {
		config.SecureMode = true
	}
	if c.AuthRateLimitPerMinute != 0 {
		config.AuthRateLimitPerMinute = c.AuthRateLimitPerMinute
	}

	if c.BootstrapEmployeeUsername != "" {
		config.BootstrapEmployeeUsername = c.BootstrapEmployeeUsername
	}
	if c.BootstrapEmployeePassword != "" {
		config.BootstrapEmployeePassword = c.BootstrapEmployeePassword
	}
	if c.BootstrapEmployeeFullName != "" {
		config.BootstrapEmployeeFullName = c.BootstrapEmployeeFullName
	}

	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
}
