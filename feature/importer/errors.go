package importer

// Error codes returned to callers of an import.
const (
	CodeMissingAppID = "missing_app_id"
	CodeInvalidAppID = "invalid_app_id"
	CodeFetchFailed  = "fetch_failed"
)

// Error is an import failure carrying a machine readable code.
type Error struct {
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}
