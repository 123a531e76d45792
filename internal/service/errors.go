// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var ErrNotSignedIn = errors.New("no signed-in session")
