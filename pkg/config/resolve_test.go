package config

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions() Options {
	return Options{
		Bucket:          "ghost-images",
		PublicURL:       "https://cdn.example.com/assets",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "super-secret-value",
	}
}

func TestResolve_EndpointDerivation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(o *Options)
		endpoint string
		region   string
	}{
		{
			name:     "derived from public url",
			mutate:   func(o *Options) {},
			endpoint: "https://cdn.example.com",
			region:   DefaultRegion,
		},
		{
			name: "derived from public url keeps port",
			mutate: func(o *Options) {
				o.PublicURL = "http://localhost:9000/ghost-images"
			},
			endpoint: "http://localhost:9000",
			region:   DefaultRegion,
		},
		{
			name: "explicit endpoint wins",
			mutate: func(o *Options) {
				o.Endpoint = "https://nyc3.digitaloceanspaces.com"
				o.Region = "nyc3"
			},
			endpoint: "https://nyc3.digitaloceanspaces.com",
			region:   "nyc3",
		},
		{
			name: "explicit endpoint used verbatim",
			mutate: func(o *Options) {
				o.Endpoint = "http://minio:9000/"
			},
			endpoint: "http://minio:9000/",
			region:   DefaultRegion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)

			cfg, err := Resolve(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.endpoint, cfg.Endpoint())
			assert.Equal(t, tt.region, cfg.Region())
			assert.True(t, cfg.PathStyle())
		})
	}
}

func TestDeriveEndpoint(t *testing.T) {
	public, err := url.Parse("https://media.example.org:8443/content/images")
	require.NoError(t, err)

	tests := []struct {
		name     string
		explicit string
		public   *url.URL
		region   string
		want     string
		wantErr  bool
	}{
		{"explicit", "http://minio:9000", public, "eu-west-1", "http://minio:9000", false},
		{"public url host and port", "", public, "eu-west-1", "https://media.example.org:8443", false},
		{"aws regional default", "", nil, "eu-west-1", "https://s3.eu-west-1.amazonaws.com", false},
		{"nothing to derive from", "", nil, "", "", false},
		{"invalid explicit", "not a url", public, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deriveEndpoint(tt.explicit, tt.public, tt.region)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_RegionOnlyStillNeedsPublicURL(t *testing.T) {
	opts := validOptions()
	opts.PublicURL = ""
	opts.Region = "eu-west-1"

	_, err := Resolve(opts)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	statuses := statusMap(cfgErr)
	assert.Equal(t, StatusSet, statuses["endpoint"], "endpoint falls back to the regional AWS endpoint")
	assert.Equal(t, StatusMissing, statuses["public_url"])
}

func TestResolve_AggregatesMissingFields(t *testing.T) {
	_, err := Resolve(Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	statuses := statusMap(cfgErr)
	assert.Equal(t, StatusMissing, statuses["bucket"])
	assert.Equal(t, StatusSet, statuses["region"], "region is defaulted, never missing")
	assert.Equal(t, StatusMissing, statuses["endpoint"])
	assert.Equal(t, StatusMissing, statuses["public_url"])
	assert.Equal(t, StatusMissing, statuses["access_key_id"])
	assert.Equal(t, StatusMissing, statuses["secret_access_key"])

	assert.Len(t, cfgErr.Problems(), 5)
	assert.Contains(t, err.Error(), "bucket=MISSING")
	assert.Contains(t, err.Error(), "secret_access_key=MISSING")
}

func TestResolve_NeverEchoesSecrets(t *testing.T) {
	opts := validOptions()
	opts.Bucket = ""

	_, err := Resolve(opts)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), opts.SecretAccessKey)
	assert.NotContains(t, err.Error(), opts.AccessKeyID)
	assert.Contains(t, err.Error(), "access_key_id=SET")
	assert.Contains(t, err.Error(), "secret_access_key=SET")
}

func TestResolve_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
		field  string
	}{
		{"endpoint without scheme", func(o *Options) { o.Endpoint = "minio:9000" }, "endpoint"},
		{"endpoint with ftp scheme", func(o *Options) { o.Endpoint = "ftp://minio" }, "endpoint"},
		{"public url without host", func(o *Options) { o.PublicURL = "https://" }, "public_url"},
		{"unknown provider", func(o *Options) { o.Provider = "gcs" }, "provider"},
		{"unknown acl", func(o *Options) { o.ACL = "world-writable" }, "acl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)

			_, err := Resolve(opts)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, StatusInvalid, statusMap(cfgErr)[tt.field])
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(validOptions())
	require.NoError(t, err)

	assert.Equal(t, "ghost-images", cfg.Bucket())
	assert.Equal(t, "https://cdn.example.com/assets", cfg.PublicURL())
	assert.Equal(t, ProviderS3, cfg.Provider())
	assert.Equal(t, ACLPublicRead, cfg.ACL())
	assert.Equal(t, Credentials{AccessKeyID: "AKIAEXAMPLE", SecretAccessKey: "super-secret-value"}, cfg.Credentials())
	assert.NotContains(t, cfg.String(), "super-secret-value")
}

func TestResolve_NormalisesInputs(t *testing.T) {
	opts := validOptions()
	opts.PublicURL = "https://cdn.example.com/"
	opts.Provider = "MinIO"
	opts.ACL = "none"

	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", cfg.PublicURL())
	assert.Equal(t, ProviderMinIO, cfg.Provider())
	assert.Empty(t, cfg.ACL())
}

func statusMap(e *ConfigurationError) map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Name] = f.Status
	}
	return m
}
