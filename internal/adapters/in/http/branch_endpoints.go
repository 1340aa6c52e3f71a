package http

import (
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateBranch handles POST /api/v1/branches. An absent capacityLimit makes
// the branch unlimited.
func (s *Server) CreateBranch(c echo.Context) error {
	var req createBranchRequest
	if err := s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	companyID, err := parseID("companyId", req.CompanyID)
	if err != nil {
		return s.fail(c, err)
	}

	branchID := kernel.NewUUID()
	cmd, err := commands.NewCreateBranchCommand(branchID, companyID, req.Name, req.CapacityLimit)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateBranch.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: branchID.String()})
}

// UpdateBranchCapacity handles PUT /api/v1/branches/:id/capacity.
func (s *Server) UpdateBranchCapacity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req updateCapacityRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewUpdateBranchCapacityCommand(id, req.CapacityLimit)
	return dispatch(s, c, s.h.UpdateBranchCapacity, cmd, err)
}

// GetBranchLoad handles GET /api/v1/companies/:companyId/branches/load.
func (s *Server) GetBranchLoad(c echo.Context) error {
	companyID, err := pathID(c, "companyId")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetBranchLoadQuery(companyID)
	if err != nil {
		return s.fail(c, err)
	}
	rows, err := s.h.GetBranchLoad.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]branchLoadResponse, len(rows))
	for i, b := range rows {
		response[i] = branchLoadResponse{
			ID:                    b.ID.String(),
			Name:                  b.Name,
			Status:                b.Status,
			CapacityLimit:         b.CapacityLimit,
			CurrentLoad:           b.CurrentLoad,
			Available:             b.Available,
			IsFull:                b.IsFull,
			UtilizationPercentage: b.UtilizationPercentage,
		}
	}
	return c.JSON(http.StatusOK, response)
}
