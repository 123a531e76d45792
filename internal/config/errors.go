// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

var (
	ErrUnknownRemoteBackend     = errors.New("remote backend must be \"firestore\" or \"http\"")
	ErrFirestoreProjectRequired = errors.New("firestore backend requires a project id or a credentials file")
	ErrHTTPAddressRequired      = errors.New("http backend requires a remote address")
)
