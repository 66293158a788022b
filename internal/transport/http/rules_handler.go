package http

import (
	"errors"

	"checkers/internal/core"
	"checkers/internal/rules"
	"checkers/internal/service"
	"checkers/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ProbesQuery filters GET /probes
type ProbesQuery struct {
	Type  string `query:"type" validate:"omitempty,oneof=move capture *"`
	Color string `query:"color" validate:"omitempty,oneof=b w *"`
	Limit int    `query:"limit" validate:"min=0,max=1000"`
}

// CheckMove answers whether a piece can step to a square
func (h *HTTPHandler) CheckMove(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*core.MoveCheckRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing request body")
	}

	desc, err := toPieceSpec(req.Piece)
	if err != nil {
		return invalidRequest(c, err)
	}

	v, err := h.svc.CheckMove(desc, *req.Row, *req.Column)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toVerdictResponse(v))
}

// CheckCapture answers whether a piece can jump another
func (h *HTTPHandler) CheckCapture(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*core.CaptureCheckRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing request body")
	}

	desc, err := toPieceSpec(req.Piece)
	if err != nil {
		return invalidRequest(c, err)
	}
	target, err := toPieceSpec(req.Target)
	if err != nil {
		return invalidRequest(c, err)
	}

	v, err := h.svc.CheckCapture(desc, target)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toVerdictResponse(v))
}

// Targets lists the squares a piece can step to
func (h *HTTPHandler) Targets(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*core.TargetsRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing request body")
	}

	desc, err := toPieceSpec(req.Piece)
	if err != nil {
		return invalidRequest(c, err)
	}

	positions, err := h.svc.Targets(desc)
	if err != nil {
		return serviceError(c, err)
	}

	resp := core.TargetsResponse{
		Kind:    desc.Kind.String(),
		Color:   desc.Color.String(),
		From:    core.Square{Row: desc.Row, Column: desc.Column},
		Targets: make([]core.Square, 0, len(positions)),
	}
	for _, p := range positions {
		resp.Targets = append(resp.Targets, core.Square{Row: p.Row(), Column: p.Column()})
	}
	return c.JSON(resp)
}

// Probes lists recorded probes from the audit store
func (h *HTTPHandler) Probes(c *fiber.Ctx) error {
	var q ProbesQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidRequest(c, err)
	}
	if err := validateStruct(&q); err != nil {
		return invalidRequest(c, err)
	}

	records, err := h.svc.Probes(q.Type, q.Color, q.Limit)
	if err != nil {
		return serviceError(c, err)
	}

	resp := core.ProbesResponse{
		Probes: make([]core.ProbeResponse, 0, len(records)),
		Count:  len(records),
	}
	for _, r := range records {
		resp.Probes = append(resp.Probes, toProbeResponse(r))
	}
	return c.JSON(resp)
}

func toPieceSpec(p core.PieceSpec) (service.PieceSpec, error) {
	kind, err := core.ParseKind(p.Kind)
	if err != nil {
		return service.PieceSpec{}, err
	}
	color, err := core.ParseColor(p.Color)
	if err != nil {
		return service.PieceSpec{}, err
	}
	if p.Row == nil || p.Column == nil {
		return service.PieceSpec{}, errors.New("piece row and column are required")
	}
	return service.PieceSpec{Kind: kind, Color: color, Row: *p.Row, Column: *p.Column}, nil
}

func toVerdictResponse(v service.Verdict) core.VerdictResponse {
	return core.VerdictResponse{ProbeID: v.ProbeID, Type: v.Type, Legal: v.Legal}
}

func toProbeResponse(r storage.ProbeRecord) core.ProbeResponse {
	return core.ProbeResponse{
		ProbeID:      r.ProbeID,
		Type:         r.ProbeType,
		PieceKind:    r.PieceKind,
		PieceColor:   r.PieceColor,
		PieceRow:     r.PieceRow,
		PieceColumn:  r.PieceColumn,
		TargetRow:    r.TargetRow,
		TargetColumn: r.TargetColumn,
		TargetKind:   r.TargetKind,
		TargetColor:  r.TargetColor,
		Legal:        r.Legal,
		TimeUTC:      r.ProbeTimeUTC.Unix(),
	}
}

func invalidRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid request",
		Code:    core.ErrInvalidRequest,
		Details: err.Error(),
	})
}

// serviceError maps service and rules errors to HTTP responses
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnprocessableEntity
	resp := core.ErrorResponse{Details: err.Error()}

	switch {
	case errors.Is(err, rules.ErrInvalidPosition):
		resp.Error, resp.Code = "invalid position", core.ErrInvalidPosition
	case errors.Is(err, rules.ErrInvalidColor):
		resp.Error, resp.Code = "invalid color", core.ErrInvalidColor
	case errors.Is(err, rules.ErrInvalidKind):
		resp.Error, resp.Code = "invalid kind", core.ErrInvalidKind
	case errors.Is(err, service.ErrStorageDisabled):
		status = fiber.StatusServiceUnavailable
		resp.Error, resp.Code = "probe storage disabled", core.ErrStorageDisabled
		resp.Details = "start the server with -storage-path to record probes"
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("service error")
		status = fiber.StatusInternalServerError
		resp.Error, resp.Code, resp.Details = "internal server error", core.ErrInternalError, ""
	}

	return c.Status(status).JSON(resp)
}
