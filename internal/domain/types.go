package domain

// Pagination carries paging params and totals.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// Normalize clamps limit into [1, max] and offset to >= 0.
func (p Pagination) Normalize(def, max int) Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}
