package config

// Provider names accepted in Options.Provider
const (
	ProviderS3    = "s3"
	ProviderMinIO = "minio"
)

// ACL values accepted in Options.ACL
const (
	ACLPublicRead = "public-read"
	ACLPrivate    = "private"
	ACLNone       = "none"
)

// DefaultRegion is used when no region is configured. Most non-AWS providers
// ignore it, but request signing needs a value.
const DefaultRegion = "us-east-1"

// Options holds the raw, possibly incomplete configuration inputs
type Options struct {
	Bucket               string `json:"bucket" mapstructure:"bucket"`
	Region               string `json:"region,omitempty" mapstructure:"region"`
	Endpoint             string `json:"endpoint,omitempty" mapstructure:"endpoint"`     // explicit API endpoint, wins over derivation
	PublicURL            string `json:"public_url" mapstructure:"public_url"`           // base for returned URLs (CDN, bucket website...)
	AccessKeyID          string `json:"access_key_id" mapstructure:"access_key_id"`
	SecretAccessKey      string `json:"secret_access_key" mapstructure:"secret_access_key"`
	Provider             string `json:"provider,omitempty" mapstructure:"provider"`     // s3 (default), minio
	ACL                  string `json:"acl,omitempty" mapstructure:"acl"`               // public-read (default), private, none
	Overwrite            bool   `json:"overwrite,omitempty" mapstructure:"overwrite"`   // exists() always reports false
	MaxConcurrentUploads int    `json:"max_concurrent_uploads,omitempty" mapstructure:"max_concurrent_uploads"`
	LogLevel             string `json:"log_level,omitempty" mapstructure:"log_level"`   // debug, info, warn, error (default: info)
	LogFormat            string `json:"log_format,omitempty" mapstructure:"log_format"` // json, console (default: json)
}

// GetMaxConcurrentUploads returns the batch upload concurrency (defaults to 4)
func (o *Options) GetMaxConcurrentUploads() int {
	if o.MaxConcurrentUploads > 0 {
		return o.MaxConcurrentUploads
	}
	return 4
}

// GetLogLevel returns the log level (defaults to info)
func (o *Options) GetLogLevel() string {
	if o.LogLevel != "" {
		return o.LogLevel
	}
	return "info"
}

// GetLogFormat returns the log format (defaults to json)
func (o *Options) GetLogFormat() string {
	if o.LogFormat != "" {
		return o.LogFormat
	}
	return "json"
}

// Credentials is a static access key pair
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// ClientConfig is the validated store configuration. It can only be built by
// Resolve and exposes read-only accessors, so a value is always complete.
type ClientConfig struct {
	bucket    string
	region    string
	endpoint  string
	publicURL string
	creds     Credentials
	provider  string
	acl       string
}

func (c ClientConfig) Bucket() string { return c.bucket }
func (c ClientConfig) Region() string { return c.region }

// Endpoint is the base API endpoint, scheme://host[:port] unless given explicitly.
func (c ClientConfig) Endpoint() string { return c.endpoint }

// PublicURL is the base under which objects are reachable, without trailing slash.
func (c ClientConfig) PublicURL() string { return c.publicURL }

func (c ClientConfig) Credentials() Credentials { return c.creds }
func (c ClientConfig) Provider() string         { return c.provider }

// ACL is the canned ACL sent on upload, or "" when none should be sent.
func (c ClientConfig) ACL() string { return c.acl }

// PathStyle is always on: MinIO and most non-AWS providers need it and AWS accepts it.
func (c ClientConfig) PathStyle() bool { return true }

// String renders the config without secrets
func (c ClientConfig) String() string {
	return "bucket=" + c.bucket + " region=" + c.region + " endpoint=" + c.endpoint +
		" public_url=" + c.publicURL + " provider=" + c.provider
}
