package api

// RoleResponse is one catalog entry.
type RoleResponse struct {
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
}

// RoleListResponse is the response for GET /api/v1/roles.
type RoleListResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// GenerateRequest is the request body for POST /api/v1/workflows.
type GenerateRequest struct {
	Goal   string `json:"goal"`
	Role   string `json:"role,omitempty"`
	Region string `json:"region,omitempty"`
}

// WorkflowResponse is the response for POST /api/v1/workflows.
type WorkflowResponse struct {
	Workflow    string `json:"workflow"`
	GoalSummary string `json:"goal_summary"`
	Filename    string `json:"filename"`
}

// DocumentRequest is the request body for POST /api/v1/workflows/document.
// When Workflow is set the document is rendered from it directly; otherwise
// the workflow is generated from Goal, Role and Region first.
type DocumentRequest struct {
	Goal        string `json:"goal"`
	Role        string `json:"role,omitempty"`
	Region      string `json:"region,omitempty"`
	Workflow    string `json:"workflow,omitempty"`
	GoalSummary string `json:"goal_summary,omitempty"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
