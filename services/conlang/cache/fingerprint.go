// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// fingerprintVersion is baked into every fingerprint so a future change to
// the canonicalization scheme invalidates old entries instead of silently
// colliding with them.
const fingerprintVersion = "v1"

// Fingerprint computes the stable content hash of a request.
//
// Description:
//
//	The value is serialized to JSON, decoded into generic maps, and
//	re-encoded; encoding/json writes map keys in sorted order, which
//	makes the second encoding independent of the original field or key
//	ordering. The canonical bytes are hashed with SHA-256.
//
// Outputs:
//
//	string - "v1-" followed by the hex digest.
//	error - Non-nil if the value cannot be serialized.
func Fingerprint(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint serialize: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("fingerprint canonicalize: %w", err)
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("fingerprint canonicalize: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return fingerprintVersion + "-" + hex.EncodeToString(sum[:]), nil
}
