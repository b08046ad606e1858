package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/invoice"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/httpresp"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/middleware"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/usecase/invoice"
)

type InvoiceHandler struct {
	create       *invoice.CreateInvoice
	update       *invoice.UpdateInvoice
	updateStatus *invoice.UpdateInvoiceStatus
	remove       *invoice.DeleteInvoice
	get          *invoice.GetInvoice
	list         *invoice.ListInvoices
}

func NewInvoiceHandler(
	repo domain.Repository,
	c cache.Cache,
	offloader *media.Offloader,
	dispatcher *audit.Dispatcher,
	m *metrics.Metrics,
	loc *time.Location,
) *InvoiceHandler {
	return &InvoiceHandler{
		create:       invoice.NewCreateInvoice(repo, offloader, dispatcher, m, loc),
		update:       invoice.NewUpdateInvoice(repo, c, offloader, loc),
		updateStatus: invoice.NewUpdateInvoiceStatus(repo, c),
		remove:       invoice.NewDeleteInvoice(repo, c, dispatcher),
		get:          invoice.NewGetInvoice(repo),
		list:         invoice.NewListInvoices(repo),
	}
}

// --------- Requests ---------

type InvoiceRequest struct {
	InvoiceNumber string                `json:"invoiceNumber"`
	Status        string                `json:"status"`
	IssueDate     string                `json:"issueDate"`
	DueDate       string                `json:"dueDate"`
	BilledBy      models.Party          `json:"billedBy"`
	BilledTo      models.Party          `json:"billedTo"`
	Items         []domain.RawItem      `json:"items"`
	Notes         string                `json:"notes"`
	Logo          string                `json:"logo"`
	PaymentMethod *models.PaymentMethod `json:"paymentMethod"`
	ProjectID     *uint                 `json:"projectId"`
}

func (r InvoiceRequest) input() invoice.Input {
	return invoice.Input{
		InvoiceNumber: r.InvoiceNumber,
		Status:        r.Status,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDate,
		BilledBy:      r.BilledBy,
		BilledTo:      r.BilledTo,
		Items:         r.Items,
		Notes:         r.Notes,
		Logo:          r.Logo,
		PaymentMethod: r.PaymentMethod,
		ProjectID:     r.ProjectID,
	}
}

type InvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.list.Execute(c.Request.Context(), scope(c), c.Query("status"))
	if err != nil {
		httperr.Respond(c, err, "Failed to list invoices")
		return
	}
	httpresp.List(c, "Invoices loaded", invoices)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	inv, err := h.create.Execute(c.Request.Context(), scope(c), req.input())
	if err != nil {
		httperr.Respond(c, err, "Failed to create invoice")
		return
	}
	httpresp.Created(c, "Invoice created", inv)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.get.Execute(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "Failed to load invoice")
		return
	}
	httpresp.OK(c, "Invoice loaded", inv)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	var req InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	inv, err := h.update.Execute(c.Request.Context(), scope(c), c.Param("id"), req.input())
	if err != nil {
		httperr.Respond(c, err, "Failed to update invoice")
		return
	}
	httpresp.OK(c, "Invoice updated", inv)
}

func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var req InvoiceStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	inv, err := h.updateStatus.Execute(c.Request.Context(), scope(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, err, "Failed to update invoice status")
		return
	}
	httpresp.OK(c, "Invoice status updated", inv)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), scope(c), c.Param("id")); err != nil {
		httperr.Respond(c, err, "Failed to delete invoice")
		return
	}
	httpresp.OK(c, "Invoice deleted", nil)
}

func scope(c *gin.Context) invoice.Scope {
	return invoice.Scope{
		WorkspaceID: workspaceID(c),
		UserID:      middleware.UserID(c),
	}
}
