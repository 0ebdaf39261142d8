package domain

import "errors"

var (
	// ErrInvalidAddress is returned when the contract address is malformed
	ErrInvalidAddress = errors.New("invalid address")

	// ErrContractNotFound is returned when there is no executable code at the address
	ErrContractNotFound = errors.New("contract not found")

	// ErrClassificationUncertain marks a contract whose standard could not be probed.
	// It is logged, never returned: classification degrades to the default standard.
	ErrClassificationUncertain = errors.New("classification uncertain")

	// ErrProbeInconclusive marks a probe whose remote call failed.
	// It is logged, never returned: the token is reported as unminted.
	ErrProbeInconclusive = errors.New("probe inconclusive")

	// ErrMetadataTerminal is returned when an inline or HTTP metadata payload was located
	// but could not be decoded
	ErrMetadataTerminal = errors.New("metadata terminal failure")

	// ErrAllGatewaysExhausted is returned when every content gateway failed
	ErrAllGatewaysExhausted = errors.New("all gateways exhausted")

	// ErrUnsupportedURIScheme is returned for token URIs with an unknown prefix
	ErrUnsupportedURIScheme = errors.New("unsupported URI format")

	// ErrTokenURIUnavailable is returned when a token's metadata URI cannot be read from the contract
	ErrTokenURIUnavailable = errors.New("token URI unavailable")

	// ErrInvalidTokenID is returned when a token identifier cannot be parsed
	ErrInvalidTokenID = errors.New("invalid token id")

	// ErrEmptyResult is returned when a contract call returns no data
	ErrEmptyResult = errors.New("empty call result")
)
