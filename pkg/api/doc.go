// Package api declares the request and response messages of the
// splitledger.v1 services. Messages travel as JSON; see package apiconnect
// for the service definitions.
package api
