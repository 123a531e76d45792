// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrUnauthorized     = errors.New("request not authorized")
	ErrBadDocumentPath  = errors.New("malformed document path")
)

// Field-value sentinels resolved by the backend at write time.
var (
	// ServerTimestamp is replaced with the database server's clock.
	ServerTimestamp sentinel = "server-timestamp"

	// Delete removes the field from the document on a merge write.
	Delete sentinel = "delete-field"
)

type sentinel string
