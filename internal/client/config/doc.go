// Package config loads runtime configuration for the vaultshare owner CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. VAULTSHARE_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string          address:port of the backend gRPC endpoint
//	-token string      owner access token (JWT)
//	-s string          JWT secret, only needed by the mint command
//	-timeout duration  per-request timeout
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "secret_key": "secretKey",
//	  "request_timeout": "10s"
//	}
package config
