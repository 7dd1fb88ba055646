package handlers

import (
	"net/http"

	"github.com/famled/family_finance_app/internal/core/domain"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// FamilyHandler handles family management requests.
type FamilyHandler struct {
	familyService portssvc.FamilySvcFacade
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(fs portssvc.FamilySvcFacade) *FamilyHandler {
	return &FamilyHandler{familyService: fs}
}

// registerFamilyRoutes sets up family routes and the entity routes nested
// under a family.
func registerFamilyRoutes(
	rg *gin.RouterGroup,
	familySvc portssvc.FamilySvcFacade,
	categorySvc portssvc.CategorySvcFacade,
	expenseSvc portssvc.ExpenseSvcFacade,
	incomeSvc portssvc.IncomeSvcFacade,
	reportingSvc portssvc.ReportingSvcFacade,
	converter *currency.Converter,
) {
	h := NewFamilyHandler(familySvc)

	families := rg.Group("/families")
	{
		families.POST("", h.CreateFamily)
		families.GET("", h.ListFamilies)
		families.POST("/join", h.JoinFamily)
		families.GET("/:familyID", h.GetFamily)
		families.DELETE("/:familyID", h.DeactivateFamily)
		families.GET("/:familyID/members", h.ListMembers)
		families.PUT("/:familyID/members/:userID/role", h.UpdateMemberRole)
		families.POST("/:familyID/invite", h.RegenerateInviteCode)
	}

	registerCategoryRoutes(families, categorySvc)
	registerExpenseRoutes(families, expenseSvc, familySvc, converter)
	registerIncomeRoutes(families, incomeSvc, familySvc, converter)
	registerReportingRoutes(families, reportingSvc)
}

// isFamilyAdmin reports whether the caller holds the ADMIN role in the family.
func (h *FamilyHandler) isFamilyAdmin(c *gin.Context, familyID, userID string) bool {
	_, err := h.familyService.AuthorizeMember(c.Request.Context(), familyID, userID, domain.FamilyRoleAdmin)
	return err == nil
}

// CreateFamily godoc
// @Summary Create family
// @Description Creates a family with the caller as its first ADMIN member. An invite code is generated.
// @Tags families
// @Accept json
// @Produce json
// @Param family body dto.CreateFamilyRequest true "Family Info"
// @Success 201 {object} dto.FamilyResponse
// @Failure 400 {object} ErrorResponse
// @Router /families [post]
func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	family, err := h.familyService.CreateFamily(c.Request.Context(), req, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	// The creator is the family admin, so the invite code is included.
	c.JSON(http.StatusCreated, dto.ToFamilyResponse(family, true))
}

// ListFamilies godoc
// @Summary List the caller's families
// @Tags families
// @Produce json
// @Success 200 {array} dto.FamilyResponse
// @Router /families [get]
func (h *FamilyHandler) ListFamilies(c *gin.Context) {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	families, err := h.familyService.ListFamiliesForUser(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListFamilyResponse(families))
}

// JoinFamily godoc
// @Summary Join a family by invite code
// @Tags families
// @Accept json
// @Produce json
// @Param join body dto.JoinFamilyRequest true "Invite Code"
// @Success 200 {object} dto.FamilyResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already a member"
// @Router /families/join [post]
func (h *FamilyHandler) JoinFamily(c *gin.Context) {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	// Member names are resolved from the users table when listing, so no
	// name needs to be carried here.
	family, err := h.familyService.JoinFamily(c.Request.Context(), req.InviteCode, callerID, "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyResponse(family, false))
}

// GetFamily godoc
// @Summary Get family by ID
// @Description Returns the family. The invite code is only included for family admins.
// @Tags families
// @Produce json
// @Param familyID path string true "Family ID"
// @Success 200 {object} dto.FamilyResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID} [get]
func (h *FamilyHandler) GetFamily(c *gin.Context) {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return
	}
	familyID := c.Param("familyID")

	family, err := h.familyService.GetFamilyByID(c.Request.Context(), familyID, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyResponse(family, h.isFamilyAdmin(c, familyID, callerID)))
}

// ListMembers godoc
// @Summary List family members
// @Tags families
// @Produce json
// @Param familyID path string true "Family ID"
// @Success 200 {array} dto.FamilyMemberResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/members [get]
func (h *FamilyHandler) ListMembers(c *gin.Context) {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	members, err := h.familyService.ListMembers(c.Request.Context(), c.Param("familyID"), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.FamilyMemberResponse, len(members))
	for i := range members {
		res[i] = dto.ToFamilyMemberResponse(members[i])
	}
	c.JSON(http.StatusOK, res)
}

// UpdateMemberRole godoc
// @Summary Change a member's family role
// @Description Family admins can promote, demote or remove members. The last admin cannot demote themselves.
// @Tags families
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID"
// @Param userID path string true "Member User ID"
// @Param role body dto.UpdateMemberRoleRequest true "New family role"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/members/{userID}/role [put]
func (h *FamilyHandler) UpdateMemberRole(c *gin.Context) {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	err := h.familyService.UpdateMemberRole(c.Request.Context(), c.Param("familyID"), c.Param("userID"), req.Role, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegenerateInviteCode godoc
// @Summary Regenerate the family invite code
// @Description Replaces the invite code, invalidating the old one. Family admins only.
// @Tags families
// @Produce json
// @Param familyID path string true "Family ID"
// @Success 200 {object} dto.FamilyResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/invite [post]
func (h *FamilyHandler) RegenerateInviteCode(c *gin.Context) {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	family, err := h.familyService.RegenerateInviteCode(c.Request.Context(), c.Param("familyID"), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyResponse(family, true))
}

// DeactivateFamily godoc
// @Summary Deactivate family
// @Description Disables the family. Existing data is kept but no new entries can be made. Family admins only.
// @Tags families
// @Produce json
// @Param familyID path string true "Family ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID} [delete]
func (h *FamilyHandler) DeactivateFamily(c *gin.Context) {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.familyService.DeactivateFamily(c.Request.Context(), c.Param("familyID"), callerID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
