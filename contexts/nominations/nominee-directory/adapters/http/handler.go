package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"trustvote/contexts/nominations/nominee-directory/application/commands"
	"trustvote/contexts/nominations/nominee-directory/application/queries"
	"trustvote/contexts/nominations/nominee-directory/domain/entities"
	httptransport "trustvote/contexts/nominations/nominee-directory/transport/http"
)

type Handler struct {
	Directory commands.DirectoryUseCase
	Queries   queries.DirectoryQueryUseCase
	Logger    *slog.Logger
}

// @Summary Submit a nomination
// @Description Registers a new nominee with a zero tally. Email is the natural key.
// @Tags nominee-directory
// @Accept json
// @Produce json
// @Param request body httptransport.NominateRequest true "Nomination"
// @Success 201 {object} httptransport.NomineeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/nominees [post]
func (h Handler) NominateHandler(ctx context.Context, req httptransport.NominateRequest) (httptransport.NomineeResponse, error) {
	nominee, err := h.Directory.Nominate(ctx, commands.NominateCommand{
		Name:            req.Name,
		Email:           req.Email,
		CollegeName:     req.CollegeName,
		Description:     req.Description,
		Reason:          req.Reason,
		Location:        req.Location,
		PhotoURL:        req.PhotoURL,
		LinkedinProfile: req.LinkedinProfile,
	})
	if err != nil {
		return httptransport.NomineeResponse{}, err
	}
	return toNomineeResponse(nominee), nil
}

// @Summary Get a nominee profile
// @Tags nominee-directory
// @Produce json
// @Param nominee_id path string true "Nominee id"
// @Success 200 {object} httptransport.NomineeResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/nominees/{nominee_id} [get]
func (h Handler) GetNomineeHandler(ctx context.Context, nomineeID string) (httptransport.NomineeResponse, error) {
	nominee, err := h.Queries.Get(ctx, nomineeID)
	if err != nil {
		return httptransport.NomineeResponse{}, err
	}
	return toNomineeResponse(nominee), nil
}

// @Summary Featured nominees
// @Description Returns the curated spotlight set, capped at three profiles.
// @Tags nominee-directory
// @Produce json
// @Success 200 {object} httptransport.NomineeListResponse
// @Router /v1/nominees/featured [get]
func (h Handler) FeaturedHandler(ctx context.Context) (httptransport.NomineeListResponse, error) {
	nominees, err := h.Queries.Featured(ctx)
	if err != nil {
		return httptransport.NomineeListResponse{}, err
	}
	return toNomineeListResponse(nominees), nil
}

// @Summary Search nominees by name prefix
// @Tags nominee-directory
// @Produce json
// @Param search query string true "Name prefix"
// @Param limit query int false "Max results (default 5)"
// @Success 200 {object} httptransport.NomineeListResponse
// @Router /v1/nominees [get]
func (h Handler) SearchHandler(ctx context.Context, prefix string, limit int) (httptransport.NomineeListResponse, error) {
	nominees, err := h.Queries.Search(ctx, prefix, limit)
	if err != nil {
		return httptransport.NomineeListResponse{}, err
	}
	return toNomineeListResponse(nominees), nil
}

func toNomineeResponse(nominee entities.Nominee) httptransport.NomineeResponse {
	return httptransport.NomineeResponse{
		NomineeID:       nominee.NomineeID,
		Name:            nominee.Name,
		Email:           nominee.Email,
		CollegeName:     nominee.CollegeName,
		Description:     nominee.Description,
		Reason:          nominee.Reason,
		Location:        nominee.Location,
		PhotoURL:        nominee.PhotoURL,
		LinkedinProfile: nominee.LinkedinProfile,
		Featured:        nominee.Featured,
		Votes:           nominee.Votes,
		CreatedAt:       nominee.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toNomineeListResponse(nominees []entities.Nominee) httptransport.NomineeListResponse {
	items := make([]httptransport.NomineeResponse, 0, len(nominees))
	for _, nominee := range nominees {
		items = append(items, toNomineeResponse(nominee))
	}
	return httptransport.NomineeListResponse{Items: items}
}
