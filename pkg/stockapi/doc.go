// Package stockapi defines the JSON bodies served by the stock HTTP API.
// The server encodes them and stockclient decodes into them.
package stockapi
