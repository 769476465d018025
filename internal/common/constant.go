// Package common contains shared constants and sentinel errors used across
// vaultshare components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the owner's
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ShareTokenBytes is the number of random bytes behind a raw share token.
const ShareTokenBytes = 32
