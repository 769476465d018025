// Package client is the owner-side gRPC client for vaultshare.ShareService.
// It attaches the owner's access token to every call and maps transport
// status codes to package errors.
package client
