/*

SPDX-Copyright: Copyright (c) Capital One Services, LLC
SPDX-License-Identifier: Apache-2.0
Copyright 2025 Capital One Services, LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and limitations under the License.

*/
// Package signature authenticates GitHub webhook deliveries using the
// X-Hub-Signature-256 header.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// Header carries the signature of the request body.
	Header = "X-Hub-Signature-256"
	// Prefix precedes the hex digest in the header value.
	Prefix = "sha256="
)

// Sign returns the header value GitHub sends for body when the
// webhook is configured with secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return Prefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether received is the signature of body under
// secret. The comparison runs in constant time. An empty secret or
// an empty or malformed header never verifies.
func Verify(body []byte, secret, received string) bool {
	if secret == "" || !strings.HasPrefix(received, Prefix) {
		return false
	}
	expected := Sign(body, secret)
	return hmac.Equal([]byte(expected), []byte(received))
}
