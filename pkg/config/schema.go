package config

// Schema is the JSON schema for validating configuration files
const Schema = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "bucket": {
            "type": "string",
            "minLength": 1,
            "description": "Target bucket name"
        },
        "region": {
            "type": "string"
        },
        "endpoint": {
            "type": "string",
            "pattern": "^https?://",
            "description": "Explicit API endpoint, derived from public_url when omitted"
        },
        "public_url": {
            "type": "string",
            "pattern": "^https?://",
            "description": "Base URL under which uploaded objects are reachable"
        },
        "access_key_id": {
            "type": "string"
        },
        "secret_access_key": {
            "type": "string"
        },
        "provider": {
            "type": "string",
            "enum": ["s3", "minio"]
        },
        "acl": {
            "type": "string",
            "enum": ["public-read", "private", "none"]
        },
        "overwrite": {
            "type": "boolean"
        },
        "max_concurrent_uploads": {
            "type": "integer",
            "minimum": 1
        },
        "log_level": {
            "type": "string",
            "enum": ["debug", "info", "warn", "error"]
        },
        "log_format": {
            "type": "string",
            "enum": ["json", "console"]
        }
    },
    "additionalProperties": false
}`
