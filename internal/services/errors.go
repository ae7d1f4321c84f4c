package services

import "errors"

// Sentinel errors returned by the service layer. The HTTP transport maps
// these onto response status codes.
var (
	ErrCountyNotFound   = errors.New("county not found")
	ErrProviderNotFound = errors.New("provider not found")
	ErrYearNotFound     = errors.New("year not found")
	ErrNoData           = errors.New("no data loaded")
)
