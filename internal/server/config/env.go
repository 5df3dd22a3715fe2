package config

import (
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. WARDROBE_DATABASE_DSN.
const EnvPrefix = "WARDROBE"

// parseEnv overlays values from WARDROBE_* environment variables. Durations
// use time.ParseDuration syntax ("24h", "30s").
func parseEnv(config *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	stringKeys := map[string]*string{
		"HTTP_ADDR":          &config.EndpointAddrHTTP,
		"DATABASE_DSN":       &config.DatabaseDSN,
		"BLOB_BACKEND":       &config.BlobBackend,
		"S3_ACCESS_KEY":      &config.S3AccessKey,
		"S3_SECRET_KEY":      &config.S3SecretKey,
		"S3_BUCKET":          &config.S3Bucket,
		"S3_REGION":          &config.S3Region,
		"S3_BASE_ENDPOINT":   &config.S3BaseEndpoint,
		"S3_PUBLIC_BASE_URL": &config.S3PublicBaseURL,
		"LOG_FORMAT":         &config.LogFormat,
	}
	for key, dst := range stringKeys {
		bindEnv(v, key)
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	bindEnv(v, "SESSION_VALIDITY")
	if v.IsSet("SESSION_VALIDITY") {
		config.SessionValidityDuration = v.GetDuration("SESSION_VALIDITY")
	}

	bindEnv(v, "UPLOAD_TIMEOUT")
	if v.IsSet("UPLOAD_TIMEOUT") {
		config.UploadTimeout = v.GetDuration("UPLOAD_TIMEOUT")
	}

	bindEnv(v, "BCRYPT_COST")
	if v.IsSet("BCRYPT_COST") {
		config.BcryptCost = v.GetInt("BCRYPT_COST")
	}
}

func bindEnv(v *viper.Viper, key string) {
	if err := v.BindEnv(key); err != nil {
		panic(err)
	}
}
