package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"crescer-uniformes/models"
	"crescer-uniformes/parser"
	"crescer-uniformes/service"
)

// ImportController handles HTTP requests for order list imports and their review
type ImportController struct {
	importService service.ImportServiceInterface
	reviewService service.ReviewServiceInterface
	reportService service.ReportServiceInterface
}

// NewImportController creates a new ImportController
func NewImportController(
	importService service.ImportServiceInterface,
	reviewService service.ReviewServiceInterface,
	reportService service.ReportServiceInterface,
) *ImportController {
	return &ImportController{
		importService: importService,
		reviewService: reviewService,
		reportService: reportService,
	}
}

// importTextRequest is the JSON form of an import body
type importTextRequest struct {
	Text string `json:"text"`
}

// previewResponse is a parse result with its counters
type previewResponse struct {
	*models.ImportResult
	Summary parser.Summary `json:"summary"`
}

// readOrderList reads the order list from the body: JSON {"text": "..."} or raw text
func readOrderList(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	defer r.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return string(body), nil
	}

	var req importTextRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	return req.Text, nil
}

// ImportText handles POST /admin/imports
// The body is the order list as text/plain, or {"text": "..."} as JSON.
// Example response:
// {
//   "parsed": 2,
//   "staged": 2,
//   "orders": [{"school": "TRINUM", "paymentStatus": "Pago Total", "customerName": "Maria", ...}]
// }
func (c *ImportController) ImportText(w http.ResponseWriter, r *http.Request) {
	logrus.Infof("📥 ImportText: Received %s request to %s", r.Method, r.URL.Path)

	text, err := readOrderList(w, r)
	if err != nil {
		logrus.Warnf("❌ ImportText: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(text) == "" {
		http.Error(w, "order list is empty", http.StatusBadRequest)
		return
	}

	result, err := c.importService.ImportFromText(r.Context(), text)
	if err != nil {
		writeError(w, "ImportText", err)
		return
	}

	logrus.Infof("✅ ImportText: Staged %d of %d parsed orders", result.Staged, result.Parsed)
	writeJSON(w, "ImportText", http.StatusCreated, result)
}

// ImportFromDrive handles POST /admin/imports/drive/{fileId}
func (c *ImportController) ImportFromDrive(w http.ResponseWriter, r *http.Request) {
	fileID := strings.TrimSpace(mux.Vars(r)["fileId"])
	logrus.Infof("📥 ImportFromDrive: Received request for file=%s", fileID)

	if fileID == "" {
		http.Error(w, "fileId is required", http.StatusBadRequest)
		return
	}

	result, err := c.importService.ImportFromDrive(r.Context(), fileID)
	if err != nil {
		writeError(w, "ImportFromDrive", err)
		return
	}

	logrus.Infof("✅ ImportFromDrive: Staged %d of %d parsed orders", result.Staged, result.Parsed)
	writeJSON(w, "ImportFromDrive", http.StatusCreated, result)
}

// Preview handles POST /admin/imports/preview
// Parses the order list and returns the result without storing anything.
func (c *ImportController) Preview(w http.ResponseWriter, r *http.Request) {
	text, err := readOrderList(w, r)
	if err != nil {
		logrus.Warnf("❌ Preview: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := c.importService.Preview(text)
	writeJSON(w, "Preview", http.StatusOK, previewResponse{
		ImportResult: result,
		Summary:      parser.Summarize(result.Orders),
	})
}

// ListPending handles GET /admin/imports/pending
func (c *ImportController) ListPending(w http.ResponseWriter, r *http.Request) {
	orders, err := c.reviewService.ListPending(r.Context())
	if err != nil {
		writeError(w, "ListPending", err)
		return
	}

	logrus.Debugf("✅ ListPending: Returning %d pending imported orders", len(orders))
	writeJSON(w, "ListPending", http.StatusOK, models.StagingOrderListResponse{Orders: orders})
}

// ExportPendingXLSX handles GET /admin/imports/pending/export.xlsx
func (c *ImportController) ExportPendingXLSX(w http.ResponseWriter, r *http.Request) {
	content, err := c.reportService.ExportPendingXLSX(r.Context())
	if err != nil {
		writeError(w, "ExportPendingXLSX", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=pedidos-pendentes.xlsx")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// RenderPendingSheet handles GET /admin/imports/pending/sheet
// Serves the HTML review sheet that the PDF export prints.
func (c *ImportController) RenderPendingSheet(w http.ResponseWriter, r *http.Request) {
	html, err := c.reportService.RenderPendingHTML(r.Context())
	if err != nil {
		writeError(w, "RenderPendingSheet", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}

// ExportPendingPDF handles GET /admin/imports/pending/export.pdf
func (c *ImportController) ExportPendingPDF(w http.ResponseWriter, r *http.Request) {
	content, err := c.reportService.RenderPendingPDF(r.Context())
	if err != nil {
		writeError(w, "ExportPendingPDF", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pedidos-pendentes.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// Update handles PUT /admin/imports/{id}
// Example request:
// PUT /admin/imports/6c1f3f3e-8d52-4b4e-9a52-0f8f1d0c2a11
// {
//   "school": "TRINUM",
//   "customerName": "Maria Souza",
//   "phone": "98999999999",
//   "paymentStatus": "Parcial",
//   "parsedItems": [{"quantity": 2, "product": "vestido", "size": "4"}]
// }
func (c *ImportController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Update", "id")
	if !ok {
		return
	}

	var req models.UpdateStagingOrderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logrus.Warnf("❌ Update: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.reviewService.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, "Update", err)
		return
	}
	writeJSON(w, "Update", http.StatusOK, order)
}

// Approve handles POST /admin/imports/{id}/approve
// The body is optional; {"edits": {...}} saves corrections before approving.
// Example response:
// {
//   "stagingOrderId": "6c1f...",
//   "customerId": "1b9d...",
//   "customerCreated": false,
//   "resolvedBy": "phone",
//   "orderId": "a3e2...",
//   "itemCount": 2
// }
func (c *ImportController) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Approve", "id")
	if !ok {
		return
	}

	var req models.ApproveStagingOrderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && err != io.EOF {
		logrus.Warnf("❌ Approve: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := c.reviewService.Approve(r.Context(), id, req.Edits)
	if err != nil {
		writeError(w, "Approve", err)
		return
	}

	logrus.WithField("orderId", result.OrderID).Infof("✅ Approve: Imported order %s approved", id)
	writeJSON(w, "Approve", http.StatusOK, result)
}

// Ignore handles POST /admin/imports/{id}/ignore
// Requires {"confirm": true}.
func (c *ImportController) Ignore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Ignore", "id")
	if !ok {
		return
	}

	var req models.IgnoreStagingOrderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && err != io.EOF {
		logrus.Warnf("❌ Ignore: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.reviewService.Ignore(r.Context(), id, req.Confirm); err != nil {
		writeError(w, "Ignore", err)
		return
	}
	writeJSON(w, "Ignore", http.StatusOK, map[string]string{"id": id, "status": string(models.ImportIgnored)})
}
