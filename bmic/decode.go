// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package bmic

import (
	"bytes"
	"encoding/binary"
)

// DecodeString interprets a fixed-width, space-padded device string field.
// Controller firmware does not null-terminate these fields, so at most maxLen
// source bytes are copied into a zeroed buffer one byte longer than maxLen
// before trimming whitespace from both ends.
func DecodeString(raw []byte, maxLen int) string {
	buf := make([]byte, maxLen+1)
	if len(raw) > maxLen {
		raw = raw[:maxLen]
	}
	copy(buf, raw)

	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}

	return string(bytes.TrimSpace(buf))
}

// DecodeLE32 converts a little-endian 32-bit wire value to host byte order.
func DecodeLE32(raw []byte) uint32 {
	return binary.LittleEndian.Uint32(raw)
}
