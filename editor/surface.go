// Package editor defines the boundary to the rich-text editing surface. The
// draft engine never inspects document structure; content is an opaque
// markup string with replace-all and read-all semantics.
package editor

// Surface is the capability interface any editing surface must satisfy.
// The surface is the sole owner of cursor, selection, and undo state.
type Surface interface {
	// GetContent returns the full serialized markup
	GetContent() string

	// SetContent atomically replaces the full markup
	SetContent(content string)

	// IsEmpty reports whether the document has no content
	IsEmpty() bool

	// Clear removes all content
	Clear()

	// OnChange registers a callback fired on every content change
	OnChange(fn func())
}
