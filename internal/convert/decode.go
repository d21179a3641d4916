// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

const utf8BOM = "\ufeff"

// Decode converts raw document bytes to UTF-8 on a best-effort basis.
// Input that is valid UTF-8 throughout is used as is. Anything else is
// decoded with the encoding named by a byte-order mark or <meta> charset
// declaration, or windows-1252 when neither is present. Bytes that still
// do not decode are dropped.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return strings.TrimPrefix(string(raw), utf8BOM)
	}
	// DetermineEncoding only inspects the first 1024 bytes, so it is
	// consulted after the whole-input UTF-8 check.
	enc, _, _ := charset.DetermineEncoding(raw, "text/html")
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		decoded = raw
	}
	return strings.ToValidUTF8(string(decoded), "")
}
