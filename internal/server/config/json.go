package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sentinelx/breachwatch/internal/flagx"
	"github.com/sentinelx/breachwatch/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "90s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON config
// files; after unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	HIBPAPIKey                  string         `json:"hibp_api_key"`
	HIBPUserAgent               string         `json:"hibp_user_agent"`
	SourceTimeout               timex.Duration `json:"source_timeout"`
	UseSimulatedData            bool           `json:"use_simulated_data"`
	MonitorInterval             timex.Duration `json:"monitor_interval"`
	AlertEmailFrom              string         `json:"alert_email_from"`
	SMTPHost                    string         `json:"smtp_host"`
	SMTPPort                    int            `json:"smtp_port"`
	SMTPUsername                string         `json:"smtp_username"`
	SMTPPassword                string         `json:"smtp_password"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	S3CatalogKey                string         `json:"s3_catalog_key"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. An unreadable file or
// invalid JSON panics, matching flag-parse failure behavior.
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

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.HIBPAPIKey = c.HIBPAPIKey
	config.HIBPUserAgent = c.HIBPUserAgent
	config.SourceTimeout = time.Duration(c.SourceTimeout.Duration)
	config.UseSimulatedData = c.UseSimulatedData
	config.MonitorInterval = time.Duration(c.MonitorInterval.Duration)
	config.AlertEmailFrom = c.AlertEmailFrom
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUsername = c.SMTPUsername
	config.SMTPPassword = c.SMTPPassword
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3CatalogKey = c.S3CatalogKey
}
