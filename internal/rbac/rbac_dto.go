package rbac

type EnforceRequest struct {
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
	Resource  string `json:"resource" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type PermissionsResponse struct {
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
}

type RolesResponse struct {
	Roles []string `json:"roles"`
}
