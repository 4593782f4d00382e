// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package thread

import "errors"

// Error taxonomy for every operation the package exposes. Callers match
// with errors.Is; the concrete error may carry extra detail from the
// backend's response body.
var (
	// ErrValidation covers input rejected before any network call, such
	// as empty comment content or an unknown reaction kind.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized means no usable credential: either the gate
	// reported unauthenticated (the call never left the client) or the
	// backend rejected an expired token.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden means the principal is authenticated but does not own
	// the resource. The backend's verdict is authoritative.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound covers stale ids, e.g. a comment deleted concurrently
	// by another client.
	ErrNotFound = errors.New("not found")

	// ErrTransient covers timeouts, connection failures, and server
	// errors. The operation may succeed if retried; nothing is retried
	// automatically.
	ErrTransient = errors.New("transient network failure")

	// ErrPending means the same node already has an operation in flight.
	// Double-clicked submit buttons land here instead of creating
	// duplicate comments.
	ErrPending = errors.New("operation already in flight")
)
