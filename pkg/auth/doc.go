// Package auth implements the session issuer: bcrypt secret hashing,
// HS256 JWT issuance on login, and token verification for protected
// operations.
package auth
