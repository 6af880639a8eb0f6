// Package cli provides the Orgmaster command-line interface for tenant management.
//
// # Overview
//
// This package implements the `orgmaster` CLI tool for operators to create,
// inspect, rename and delete organizations, and to obtain bearer tokens, from
// the terminal.
//
// # Commands
//
// create: Register a new organization with its bootstrap admin
//
//	orgmaster create \
//		--name acme \
//		--email admin@acme.test \
//		--password s3cret \
//		--registry http://localhost:8080
//
// login: Authenticate and print a bearer token
//
//	export ORGMASTER_TOKEN=$(orgmaster login --email admin@acme.test --password s3cret)
//
// get: Show an organization and its admin
//
//	orgmaster get --name acme
//
// rename: Rename an organization, migrating its partition
//
//	orgmaster rename --name acme --new-name globex
//
// delete: Remove an organization, its admin and its partition
//
//	orgmaster delete --name acme --yes
//
// Authenticated commands read the token from --token or the ORGMASTER_TOKEN
// environment variable.
package cli
