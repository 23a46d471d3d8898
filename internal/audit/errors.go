package audit

import "errors"

// Document-level failures. Each one is fatal to the document being processed
// but never to the batch; the batch runner reports it and moves on.
var (
	// ErrNoExtractableText means the PDF yielded less text than the minimum
	// threshold. In practice this is a scanned image, not a digital statement.
	ErrNoExtractableText = errors.New("no extractable text in document")

	// ErrCompletionUnavailable wraps any failure of the completion service
	// call, including an empty response.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrEmptyExtraction means the model responded but the parser found zero
	// usable data rows. Distinct from a legitimately empty statement, which
	// is implausible; this signals a structural failure in the response.
	ErrEmptyExtraction = errors.New("no data rows in model response")
)
