package rxtext

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler exposes the parser over HTTP.
type Handler struct {
	parser *Parser
}

// NewHandler creates a prescription parsing handler.
func NewHandler(parser *Parser) *Handler {
	return &Handler{parser: parser}
}

// RegisterRoutes registers the parsing endpoints on the provided group.
//
//	POST /prescriptions/parse  - Parse prescription text into structured JSON
//	POST /prescriptions/report - Parse and render a plain-text review report
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/prescriptions/parse", h.ParsePrescription)
	g.POST("/prescriptions/report", h.RenderReport)
}

// ParseRequest is the JSON body accepted by the parse endpoints.
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse is the parse result plus a server-assigned identifier that
// ties the response to the audit trail. Nothing is stored server-side.
type ParseResponse struct {
	ParseID string `json:"parse_id"`
	Result
}

// ParsePrescription handles POST /api/v1/prescriptions/parse.
// It accepts {"text": "..."} or a text/plain body and returns the parsed,
// validated prescription.
func (h *Handler) ParsePrescription(c echo.Context) error {
	text, err := requestText(c)
	if err != nil {
		return err
	}

	result := h.parser.Parse(text)
	validation := Validate(result)
	result.Validation = &validation

	// The parse id ties this response to its audit line without ever
	// persisting the submitted text.
	parseID := uuid.New().String()
	c.Set("parse_id", parseID)

	return c.JSON(http.StatusOK, ParseResponse{
		ParseID: parseID,
		Result:  result,
	})
}

// RenderReport handles POST /api/v1/prescriptions/report.
// It parses the submitted text and responds with the plain-text summary.
func (h *Handler) RenderReport(c echo.Context) error {
	text, err := requestText(c)
	if err != nil {
		return err
	}

	result := h.parser.Parse(text)
	validation := Validate(result)
	result.Validation = &validation

	c.Set("parse_id", uuid.New().String())

	return c.String(http.StatusOK, Report(result))
}

// requestText pulls the prescription text out of the request, from the
// "text" field of a JSON body or from a raw text body.
func requestText(c echo.Context) (string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	text := string(body)
	if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var req ParseRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return "", echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body: "+err.Error())
		}
		text = req.Text
	}

	if strings.TrimSpace(text) == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "prescription text is required")
	}
	return text, nil
}
