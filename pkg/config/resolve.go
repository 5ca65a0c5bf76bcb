package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Field status values reported by ConfigurationError
const (
	StatusSet     = "SET"
	StatusMissing = "MISSING"
	StatusInvalid = "INVALID"
)

// FieldStatus describes one configuration field after resolution
type FieldStatus struct {
	Name   string
	Status string
	Reason string // only for INVALID
}

// ConfigurationError lists the status of every field when resolution fails.
// It never carries field values.
type ConfigurationError struct {
	Fields []FieldStatus
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid storage configuration:")
	for _, f := range e.Fields {
		b.WriteString(" ")
		b.WriteString(f.Name)
		b.WriteString("=")
		b.WriteString(f.Status)
		if f.Reason != "" {
			b.WriteString(" (" + f.Reason + ")")
		}
	}
	return b.String()
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Problems returns the fields that are not SET
func (e *ConfigurationError) Problems() []FieldStatus {
	var out []FieldStatus
	for _, f := range e.Fields {
		if f.Status != StatusSet {
			out = append(out, f)
		}
	}
	return out
}

// Resolve fills in defaults and validates raw options.
//
// Endpoint priority: explicit endpoint, then scheme://host[:port] of the
// public URL, then the AWS regional endpoint when a region was given. Region
// falls back to DefaultRegion afterwards.
func Resolve(opts Options) (ClientConfig, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	rawEndpoint := strings.TrimSpace(opts.Endpoint)
	rawPublic := strings.TrimSpace(opts.PublicURL)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)

	var fields []FieldStatus
	failed := false
	record := func(name, status, reason string) {
		if status != StatusSet {
			failed = true
		}
		fields = append(fields, FieldStatus{Name: name, Status: status, Reason: reason})
	}
	presence := func(name, v string) {
		if v == "" {
			record(name, StatusMissing, "")
			return
		}
		record(name, StatusSet, "")
	}

	presence("bucket", bucket)

	publicURL, publicErr := parseBaseURL(rawPublic)
	if publicErr != nil {
		publicURL = nil
	}
	endpoint, endpointErr := deriveEndpoint(rawEndpoint, publicURL, region)

	if region == "" {
		region = DefaultRegion
	}
	presence("region", region)

	switch {
	case endpointErr != nil:
		record("endpoint", StatusInvalid, endpointErr.Error())
	default:
		presence("endpoint", endpoint)
	}

	switch {
	case rawPublic == "":
		record("public_url", StatusMissing, "")
	case publicErr != nil:
		record("public_url", StatusInvalid, publicErr.Error())
	default:
		record("public_url", StatusSet, "")
	}

	presence("access_key_id", accessKey)
	presence("secret_access_key", secretKey)

	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	switch provider {
	case "":
		provider = ProviderS3
	case ProviderS3, ProviderMinIO:
	default:
		record("provider", StatusInvalid, fmt.Sprintf("unknown provider %q", provider))
	}

	acl := strings.ToLower(strings.TrimSpace(opts.ACL))
	switch acl {
	case "":
		acl = ACLPublicRead
	case ACLPublicRead, ACLPrivate:
	case ACLNone:
		acl = ""
	default:
		record("acl", StatusInvalid, fmt.Sprintf("unknown acl %q", acl))
	}

	if failed {
		return ClientConfig{}, &ConfigurationError{Fields: fields}
	}

	return ClientConfig{
		bucket:    bucket,
		region:    region,
		endpoint:  endpoint,
		publicURL: strings.TrimSuffix(rawPublic, "/"),
		creds: Credentials{
			AccessKeyID:     accessKey,
			SecretAccessKey: secretKey,
		},
		provider: provider,
		acl:      acl,
	}, nil
}

// deriveEndpoint applies the endpoint priority. An empty result with a nil
// error means nothing could be derived.
func deriveEndpoint(explicit string, public *url.URL, region string) (string, error) {
	switch {
	case explicit != "":
		if _, err := parseBaseURL(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	case public != nil:
		return public.Scheme + "://" + public.Host, nil
	case region != "":
		return "https://s3." + region + ".amazonaws.com", nil
	}
	return "", nil
}

// parseBaseURL accepts absolute http(s) URLs with a host
func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.New("not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("scheme must be http or https")
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	return u, nil
}
