package dto

// EndorseResponse is the wire shape of the endorsement endpoint:
// {ok: true, count: N} on success, {ok: false, error: "..."} on failure.
// Count is a pointer so a zero counter is still reported on success while
// failure responses omit the field entirely.
type EndorseResponse struct {
	OK    bool   `json:"ok"`
	Count *uint  `json:"count,omitempty"`
	Error string `json:"error,omitempty"`
}

// EndorsementAuditResponse exposes the denormalized counter next to the true
// row count. Drift is expected after admin overrides.
type EndorsementAuditResponse struct {
	SkillID string `json:"skill_id"`
	Counter uint   `json:"counter"`
	Rows    int64  `json:"rows"`
	Drift   int64  `json:"drift"`
}
