// Package dto builds the JSON payloads of the stock HTTP API from domain values.
// The payload types themselves live in pkg/stockapi.
package dto

import "nautilus/pkg/stockapi"

type ErrorResponse = stockapi.ErrorResponse

// EmptyResponse is returned when a lookup yields nothing: {"data": []}.
type EmptyResponse struct {
	Data []any `json:"data"`
}

// NewEmptyResponse returns an EmptyResponse that encodes data as [] rather than null.
func NewEmptyResponse() EmptyResponse {
	return EmptyResponse{Data: []any{}}
}
