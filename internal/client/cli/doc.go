// Package cli implements the vaultshare owner command line:
//
//	cli [global flags] share  -vault <id> [-minutes 60] [-views 1] [-note text]
//	cli [global flags] revoke -id <share id>
//	cli [global flags] open   [-t <raw token> | -link <share url>]
//	cli [global flags] mint   -user <id> [-ttl 15]
//
// Global flags are handled by the config package. When open has no token or
// mint has no signing secret from any config layer, the value is read from
// the terminal without echo.
package cli
