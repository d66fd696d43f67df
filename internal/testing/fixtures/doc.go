// Package fixtures provides builders for domain objects used across tests.
package fixtures
