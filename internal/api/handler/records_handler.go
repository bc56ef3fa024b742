package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

type createQualityIssueRequest struct {
	RoomID      int               `json:"room_id" form:"room_id" validate:"gt=0"`
	Description string            `json:"description" form:"description" validate:"required"`
	IssueType   string            `json:"issue_type" form:"issue_type"`
	Images      string            `json:"images" form:"images"`
	RecordDate  *domain.Timestamp `json:"record_date" form:"record_date"`
}

type createCommunicationRequest struct {
	RoomID              int               `json:"room_id" form:"room_id" validate:"gt=0"`
	Content             string            `json:"content" form:"content" validate:"required"`
	CommunicationTime   *domain.Timestamp `json:"communication_time" form:"communication_time"`
	Feedback            string            `json:"feedback" form:"feedback"`
	CustomerDescription string            `json:"customer_description" form:"customer_description"`
	Image               string            `json:"image" form:"image"`
}

type setImplementedRequest struct {
	IsImplemented bool `json:"is_implemented"`
}

// ListQualityIssues handles GET /api/quality-issues.
//
// @Summary      List quality issues
// @Tags         quality-issues
// @Produce      json
// @Param        room_id  query     int  false  "Only issues of this room"
// @Success      200      {array}   object
// @Router       /api/quality-issues [get]
func (h *BackendHandler) ListQualityIssues(c echo.Context) error {
	roomID, err := queryRoomID(c)
	if err != nil {
		return err
	}
	resp, err := h.client.QualityIssues.List(c.Request().Context(), roomID)
	return relay(c, resp, err)
}

// CreateQualityIssue handles POST /api/quality-issues.
//
// @Summary      Record a quality issue
// @Tags         quality-issues
// @Accept       json
// @Produce      json
// @Param        body  body      createQualityIssueRequest  true  "Issue"
// @Success      200   {object}  object
// @Failure      400   {object}  map[string]string
// @Router       /api/quality-issues [post]
func (h *BackendHandler) CreateQualityIssue(c echo.Context) error {
	var req createQualityIssueRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	resp, err := h.client.QualityIssues.Create(c.Request().Context(), domain.QualityIssueCreate(req))
	return relay(c, resp, err)
}

// AcceptQualityIssue handles PUT /api/quality-issues/:id/accept.
//
// @Summary      Accept a fixed quality issue
// @Tags         quality-issues
// @Produce      json
// @Param        id   path      int  true  "Issue ID"
// @Success      200  {object}  object
// @Router       /api/quality-issues/{id}/accept [put]
func (h *BackendHandler) AcceptQualityIssue(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.QualityIssues.Accept(c.Request().Context(), id)
	return relay(c, resp, err)
}

// UpdateQualityIssue handles PUT /api/quality-issues/:id with a partial body.
//
// @Summary      Update a quality issue
// @Tags         quality-issues
// @Accept       json
// @Produce      json
// @Param        id    path      int     true  "Issue ID"
// @Param        body  body      object  true  "Fields to change"
// @Success      200   {object}  object
// @Router       /api/quality-issues/{id} [put]
func (h *BackendHandler) UpdateQualityIssue(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	fields, err := bindObject(c)
	if err != nil {
		return err
	}
	resp, err := h.client.QualityIssues.Update(c.Request().Context(), id, fields)
	return relay(c, resp, err)
}

// ListCommunications handles GET /api/communications.
//
// @Summary      List communication records
// @Tags         communications
// @Produce      json
// @Param        room_id  query     int  false  "Only records of this room"
// @Success      200      {array}   object
// @Router       /api/communications [get]
func (h *BackendHandler) ListCommunications(c echo.Context) error {
	roomID, err := queryRoomID(c)
	if err != nil {
		return err
	}
	resp, err := h.client.Communications.List(c.Request().Context(), roomID)
	return relay(c, resp, err)
}

// CreateCommunication handles POST /api/communications.
//
// @Summary      Record a customer communication
// @Tags         communications
// @Accept       json
// @Produce      json
// @Param        body  body      createCommunicationRequest  true  "Communication"
// @Success      200   {object}  object
// @Failure      400   {object}  map[string]string
// @Router       /api/communications [post]
func (h *BackendHandler) CreateCommunication(c echo.Context) error {
	var req createCommunicationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	resp, err := h.client.Communications.Create(c.Request().Context(), domain.CommunicationCreate(req))
	return relay(c, resp, err)
}

// SetCommunicationImplemented handles PUT /api/communications/:id.
//
// @Summary      Mark a communication as implemented
// @Tags         communications
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Communication ID"
// @Param        body  body      setImplementedRequest  true  "Flag"
// @Success      200   {object}  object
// @Router       /api/communications/{id} [put]
func (h *BackendHandler) SetCommunicationImplemented(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req setImplementedRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	resp, err := h.client.Communications.SetImplemented(c.Request().Context(), id, req.IsImplemented)
	return relay(c, resp, err)
}
