package config

import (
	"flag"
	"os"
	"time"

	"github.com/sentinelx/breachwatch/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    HTTP bind address (e.g., ":8080")
//	-d string    PostgreSQL DSN
//	-s string    JWT HMAC secret key
//	-t int       access token validity, minutes
//	-hk string   HIBP API key
//	-hu string   HIBP user agent
//	-ht int      live source timeout, seconds
//	-sim bool    use the simulated catalog instead of the live source
//	-mi int      monitor cycle interval, minutes (0 disables)
//	-mf string   alert email From address
//	-mh string   SMTP host
//	-mp int      SMTP port
//	-mu string   SMTP username
//	-mw string   SMTP password
//	-u string    S3 root user
//	-p string    S3 root password
//	-b string    S3 bucket holding the simulated catalog ("" disables)
//	-g string    S3 region
//	-e string    S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-ck string   S3 object key of the catalog
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-hk", "-hu", "-ht", "-sim",
		"-mi", "-mf", "-mh", "-mp", "-mu", "-mw",
		"-u", "-p", "-b", "-g", "-e", "-ck",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.HIBPAPIKey, "hk", config.HIBPAPIKey, "HIBP API key")
	fs.StringVar(&config.HIBPUserAgent, "hu", config.HIBPUserAgent, "HIBP user agent")
	sourceTimeout := fs.Int("ht", int(config.SourceTimeout.Seconds()), "live source timeout (in seconds)")
	fs.BoolVar(&config.UseSimulatedData, "sim", config.UseSimulatedData, "use simulated breach catalog")

	monitorInterval := fs.Int("mi", int(config.MonitorInterval.Minutes()), "monitor interval (in minutes, 0 disables)")
	fs.StringVar(&config.AlertEmailFrom, "mf", config.AlertEmailFrom, "alert email From address")
	fs.StringVar(&config.SMTPHost, "mh", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "mp", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUsername, "mu", config.SMTPUsername, "SMTP username")
	fs.StringVar(&config.SMTPPassword, "mw", config.SMTPPassword, "SMTP password")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 catalog bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3CatalogKey, "ck", config.S3CatalogKey, "S3 catalog object key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.SourceTimeout = time.Duration(*sourceTimeout) * time.Second
	config.MonitorInterval = time.Duration(*monitorInterval) * time.Minute
}
