// Package wire owns the closed enumerations and grammar shared by the
// XenStore wire protocol: operation codes, the path/name grammar, the
// ACL codec, and the opaque watch token.
//
// Ownership boundary:
// - op code bijection
// - path/name parsing and resolution
// - ACL encoding
// - error taxonomy shared by packet, request, response and stream
package wire
