package domain

// ErrorCode identifies a protocol-level failure in a Response.
type ErrorCode string

const (
	ErrorCodeInvalidJSON    ErrorCode = "invalid_json"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
	ErrorCodeToolNotFound   ErrorCode = "tool_not_found"
	ErrorCodeToolError      ErrorCode = "tool_error"
)

// Tool names exposed by the gateway.
const (
	ToolPing       = "ping"
	ToolMeta       = "ingest.meta"
	ToolSegment    = "ingest.segment"
	ToolExtract    = "ingest.extract"
	ToolToSoustack = "ingest.toSoustack"
	ToolValidate   = "ingest.validate"
	ToolDocument   = "ingest.document"
)

// Stage names a provider capability.
type Stage string

const (
	StageNormalize  Stage = "normalize"
	StageSegment    Stage = "segment"
	StageExtract    Stage = "extract"
	StageToSoustack Stage = "toSoustack"
	StageIngest     Stage = "ingest"
	StageValidate   Stage = "validate"
)
