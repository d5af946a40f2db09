// Package apidef describes the parts of the logbook service's HTTP API that the contract tests
// call: resource paths, role labels, and the JSON request bodies.
package apidef

import "fmt"

const (
	PathLogin          = "/api/auth/login"
	PathAdminAccounts  = "/api/admin/accounts"
	PathAdminLogHeads  = "/api/admin/log-heads"
	PathLogHeads       = "/api/log-heads"
	PathWritableHeads  = "/api/log-heads/writable"
	PathLogContents    = "/api/log-contents"
	RoleAdmin          = "admin"
	RoleMember         = "member"
	DefaultLogContent  = "Test content"
	memberPhonePrefix  = 88
	memberPhoneModulus = 1000000
)

type LoginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateAccountParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    int64  `json:"phone"`
	Password string `json:"password"`
}

// CreateLogHeadParams is the body of POST /api/admin/log-heads. Account identifiers are
// passed through exactly as the service returned them, whatever their JSON type.
type CreateLogHeadParams struct {
	Subject      string `json:"subject"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	WriterIDList []ID   `json:"writer_id_list"`
	OwnerID      ID     `json:"owner_id"`
}

type CreateLogContentParams struct {
	LogHeadID ID     `json:"log_head_id"`
	Content   string `json:"content"`
	Date      string `json:"date"`
}

// AdminLogHeadPath returns the path of a single log head on the admin API.
func AdminLogHeadPath(id string) string {
	return PathAdminLogHeads + "/" + id
}

// AdminAccountPath returns the path of a single account on the admin API.
func AdminAccountPath(id string) string {
	return PathAdminAccounts + "/" + id
}

// NewMemberAccount builds the account parameters for a member whose username, email, and phone
// are all derived from suffix, so that two runs started in different seconds never collide.
func NewMemberAccount(suffix int64, password string) CreateAccountParams {
	username := fmt.Sprintf("member_%d", suffix)
	return CreateAccountParams{
		Username: username,
		Email:    username + "@example.com",
		Phone:    memberPhone(suffix),
		Password: password,
	}
}

func memberPhone(suffix int64) int64 {
	tail := suffix % memberPhoneModulus
	if tail < 0 {
		tail = -tail
	}
	return memberPhonePrefix*memberPhoneModulus + tail
}
