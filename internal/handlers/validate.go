// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for comment content.
const (
	maxContentLen = 10_000
)

// validateComment checks comment content and returns the first error
// found, or "" when valid. Content is judged after trimming, matching
// the client-side rule: whitespace-only comments never reach the wire.
func validateComment(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "Comment content is required."
	}
	if utf8.RuneCountInString(trimmed) > maxContentLen {
		return "Comment is too long (max 10,000 characters)."
	}
	return ""
}
