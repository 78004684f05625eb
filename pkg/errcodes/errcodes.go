package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"
	MethodNotAllowed    failure.ErrorCode = "MethodNotAllowed"

	// Catalog.
	PolicyNotFound  failure.ErrorCode = "PolicyNotFound"
	UnknownCategory failure.ErrorCode = "UnknownCategory"
	CatalogLoad     failure.ErrorCode = "CatalogLoad"

	// Quote.
	InvalidBand failure.ErrorCode = "InvalidBand"

	// Handoff.
	TicketNotFound    failure.ErrorCode = "TicketNotFound"
	HandoffStore      failure.ErrorCode = "HandoffStore"
	HandoffForwarding failure.ErrorCode = "HandoffForwarding"

	// Enrichment.
	EnrichmentFailed failure.ErrorCode = "EnrichmentFailed"
)
