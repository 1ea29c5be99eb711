package tracing

// Span names.
const (
	SpanRun           = "commands.run"
	SpanPrefixCommand = "command."
	SpanPrefixRender  = "render."
	SpanReload        = "album.reload"
)

// Span attribute keys.
const (
	AttrLineNumber = "command.line"
	AttrKeyword    = "command.keyword"
	AttrLines      = "commands.lines"
	AttrApplied    = "commands.applied"
	AttrFailed     = "commands.failed"
	AttrSource     = "commands.source"
	AttrSnapshots  = "album.snapshots"
	AttrShapes     = "album.shapes"
	AttrView       = "render.view"
)
