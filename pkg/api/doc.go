// Package api exposes the organization registry over HTTP: public
// registration and login, and token-protected read, rename, and delete
// of organizations. Domain errors map onto HTTP status codes in one
// place so handlers stay thin.
package api
