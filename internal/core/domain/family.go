package domain

import "time"

// Family represents a shared budget group. Expenses, income and categories
// belong to exactly one family.
type Family struct {
	FamilyID            string  `json:"familyID"` // Primary Key (UUID)
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	InviteCode          string  `json:"inviteCode"`          // Short code used to join this family
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // Display currency for this family (e.g. "USD")
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// UserFamilyRole defines the possible roles a user can have within a family.
type UserFamilyRole string

const (
	FamilyRoleAdmin    UserFamilyRole = "ADMIN"
	FamilyRoleMember   UserFamilyRole = "MEMBER"
	FamilyRoleReadOnly UserFamilyRole = "READONLY" // Users with read-only access to family data
	FamilyRoleRemoved  UserFamilyRole = "REMOVED"  // For users who have been removed from the family
)

// UserFamily represents the membership of a User in a Family.
type UserFamily struct {
	UserID   string         `json:"userID"`
	UserName string         `json:"userName"`
	FamilyID string         `json:"familyID"`
	Role     UserFamilyRole `json:"role"`
	JoinedAt time.Time      `json:"joinedAt"`
}
