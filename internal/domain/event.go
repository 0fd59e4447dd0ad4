package domain

// WorkItemEvent is the normalized form of an inbound work-item webhook,
// forwarded as-is to the downstream dispatch endpoint. Tags arrive as a
// single semicolon-separated field and are split during normalization.
type WorkItemEvent struct {
	Tags       []string `json:"tags"`
	Action     string   `json:"action"`
	Project    string   `json:"project"`
	State      string   `json:"state"`
	Delivery   string   `json:"delivery"`
	WorkItemID int      `json:"workItemId"`
}
