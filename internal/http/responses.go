package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/brightpath-agency/brightpath/internal/domain"
)

// ClientResponse is the full client projection returned to authenticated
// staff. The share endpoint uses service.SharedClient instead, which drops
// the account linkage.
type ClientResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Location      string `json:"location,omitempty"`
	Skills        string `json:"skills,omitempty"`
	PreferredRole string `json:"preferredRole,omitempty"`
	Education     string `json:"education,omitempty"`
	LinkedinURL   string `json:"linkedinUrl,omitempty"`
	Experience    string `json:"experience,omitempty"`
	Status        string `json:"status"`
	CVFilePath    string `json:"cvFilePath,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

func toClientResponse(c domain.Client) ClientResponse {
	return ClientResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		FullName:      c.FullName,
		Email:         c.Email,
		PhoneNumber:   c.PhoneNumber,
		Location:      c.Location,
		Skills:        c.Skills,
		PreferredRole: c.PreferredRole,
		Education:     c.Education,
		LinkedinURL:   c.LinkedinURL,
		Experience:    c.Experience,
		Status:        string(c.Status),
		CVFilePath:    c.CVFilePath,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}

type CompanyResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	PhoneNumber   string   `json:"phoneNumber,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	WorkforceSize string   `json:"workforceSize,omitempty"`
	Location      string   `json:"location,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	Specification string   `json:"specification,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
}

func toCompanyResponse(c domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		PhoneNumber:   c.PhoneNumber,
		Industry:      c.Industry,
		WorkforceSize: c.WorkforceSize,
		Location:      c.Location,
		Roles:         c.Roles,
		Specification: c.Specification,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}

type AssignmentResponse struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	CompanyID  int64  `json:"companyId"`
	AssignedBy int64  `json:"assignedBy"`
	Status     string `json:"status"`
	AssignedAt string `json:"assignedAt"`
}

func toAssignmentResponse(a domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.ID,
		ClientID:   a.ClientID,
		CompanyID:  a.CompanyID,
		AssignedBy: a.AssignedBy,
		Status:     string(a.Status),
		AssignedAt: a.AssignedAt.Format(time.RFC3339),
	}
}

type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// pathID parses the {id} path segment. Zero and negative values are as
// invalid as garbage.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
