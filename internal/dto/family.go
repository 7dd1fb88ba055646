package dto

import (
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
)

// CreateFamilyRequest defines the data needed to create a family.
type CreateFamilyRequest struct {
	Name                string  `json:"name" binding:"required,max=100"`
	Description         string  `json:"description,omitempty"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode,omitempty" binding:"omitempty,len=3,uppercase"`
}

// JoinFamilyRequest joins the caller to the family owning the invite code.
type JoinFamilyRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

// UpdateMemberRoleRequest changes a member's role within a family.
type UpdateMemberRoleRequest struct {
	Role domain.UserFamilyRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY REMOVED"`
}

// FamilyResponse defines the data returned for a family.
type FamilyResponse struct {
	FamilyID            string    `json:"familyID"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	InviteCode          string    `json:"inviteCode,omitempty"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

// FamilyMemberResponse defines the data returned for one family member.
type FamilyMemberResponse struct {
	UserID   string                `json:"userID"`
	UserName string                `json:"userName"`
	Role     domain.UserFamilyRole `json:"role"`
	JoinedAt time.Time             `json:"joinedAt"`
}

// ToFamilyResponse converts a domain.Family to FamilyResponse DTO.
// includeInvite controls whether the invite code is exposed; only family
// admins should see it.
func ToFamilyResponse(family *domain.Family, includeInvite bool) FamilyResponse {
	resp := FamilyResponse{
		FamilyID:            family.FamilyID,
		Name:                family.Name,
		Description:         family.Description,
		DefaultCurrencyCode: family.DefaultCurrencyCode,
		IsActive:            family.IsActive,
		CreatedAt:           family.CreatedAt,
	}
	if includeInvite {
		resp.InviteCode = family.InviteCode
	}
	return resp
}

// ToListFamilyResponse converts a slice of domain.Family to DTOs, never
// exposing invite codes in list form.
func ToListFamilyResponse(families []domain.Family) []FamilyResponse {
	res := make([]FamilyResponse, len(families))
	for i := range families {
		res[i] = ToFamilyResponse(&families[i], false)
	}
	return res
}

// ToFamilyMemberResponse converts a domain.UserFamily to a DTO.
func ToFamilyMemberResponse(m domain.UserFamily) FamilyMemberResponse {
	return FamilyMemberResponse{
		UserID:   m.UserID,
		UserName: m.UserName,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}
