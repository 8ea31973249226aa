// Package services defines the business logic of the matching engine: report
// submission, candidate scoring and decision policy, fuzzy number search, and
// notification access. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes should be performed at the
// handler layer.
package services

import "errors"

var (
	// ErrReportNotFound indicates that the requested report does not exist.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidReport is returned when a submitted report is missing its
	// type or title, or carries an unknown document type.
	ErrInvalidReport = errors.New("invalid report")

	// ErrInvalidStatus is returned when a report status is neither lost
	// nor found.
	ErrInvalidStatus = errors.New("status must be lost or found")

	// ErrIncompleteLocation is returned when only one of latitude/longitude
	// is provided. Coordinates travel as a pair or not at all.
	ErrIncompleteLocation = errors.New("latitude and longitude must be provided together")

	// ErrRetrievalFailed wraps a document-store failure during candidate
	// retrieval. Matching passes degrade to an empty result; the error is
	// surfaced so callers can log it without failing report creation.
	ErrRetrievalFailed = errors.New("candidate retrieval failed")

	// ErrNotificationNotFound indicates that the requested notification does
	// not exist or belongs to another recipient.
	ErrNotificationNotFound = errors.New("notification not found")
)
