package request

// ListRequest carries the limit/offset window accepted by the list endpoints
type ListRequest struct {
	Limit  int `json:"limit" validate:"min=0"`
	Offset int `json:"offset" validate:"min=0"`
}

// Normalize falls back to defaultLimit when no positive limit was supplied
func (l ListRequest) Normalize(defaultLimit int) ListRequest {
	if l.Limit <= 0 {
		l.Limit = defaultLimit
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
	return l
}
