package ai

import "errors"

// ErrQuotaExceeded indicates the model provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMediaUnsupported is returned by text-only backends when a media attachment is passed.
var ErrMediaUnsupported = errors.New("backend does not accept media attachments")
