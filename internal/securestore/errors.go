// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package securestore

import "errors"

var (
	ErrCiphertextTooShort = errors.New("ciphertext shorter than nonce")
	ErrBadDeviceSecret    = errors.New("device secret file has unexpected size")
)
