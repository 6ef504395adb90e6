package app

import "erp-admin/internal/core"

// CreateUserRequest is the input for provisioning a console account.
type CreateUserRequest struct {
	Username string
	Email    string
	Password string
	Role     string // core.RoleAdmin or core.RoleMember; empty means member
}

// SetHiddenMenusRequest overwrites the lists that are non-nil.
type SetHiddenMenusRequest struct {
	Main    *[]string
	Toolbar *[]string
}

// SaveCompanyRequest is a company editor submission.
type SaveCompanyRequest struct {
	ID    int // 0 creates a new company
	Nonce string
	Input core.CompanyInput
}
