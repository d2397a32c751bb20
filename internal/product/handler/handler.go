package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	store  product.Store
	logger logger.ZapLogger
	now    func() time.Time
}

func NewInventoryHandler(store product.Store, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

func (h *InventoryHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/inventory")

	g.GET("/view", h.GetView)
	g.GET("/metrics", h.GetMetrics)
	g.PUT("/filters", h.SetFilters)
	g.DELETE("/filters", h.ClearFilters)
	g.PUT("/sort", h.SetSort)
	g.PUT("/page", h.SetPage)
	g.POST("/refresh", h.Refresh)

	g.POST("/products/validate", h.ValidateProduct)
	g.POST("/products", h.CreateProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)
	g.POST("/products/:id/toggle", h.ToggleChecked)
}

func (h *InventoryHandler) GetView(c *gin.Context) {
	h.writeView(c, http.StatusOK)
}

// GetMetrics returns the metrics table. Overall always covers every loaded
// product regardless of the active filters.
func (h *InventoryHandler) GetMetrics(c *gin.Context) {
	metrics := make([]model.CategoryMetric, 0, len(model.MetricCategories))
	for _, cat := range model.MetricCategories {
		metrics = append(metrics, model.CategoryMetric{
			Category:   cat,
			TotalStock: h.store.TotalProductsInStock(cat),
			TotalValue: h.store.TotalValueInStock(cat),
			AvgPrice:   h.store.AveragePriceInStock(cat),
		})
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *InventoryHandler) SetFilters(c *gin.Context) {
	var req filtersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	h.store.SetSearchFilters(patch)
	h.writeView(c, http.StatusOK)
}

func (h *InventoryHandler) ClearFilters(c *gin.Context) {
	h.store.ClearSearchFilters()
	h.writeView(c, http.StatusOK)
}

func (h *InventoryHandler) SetSort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.store.SetSort(c.Request.Context(), spec); err != nil {
		h.writeError(c, "failed to refresh after sort change", err)
		return
	}
	h.writeView(c, http.StatusOK)
}

func (h *InventoryHandler) SetPage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if req.PageSize > 0 {
		h.store.SetPageSize(req.PageSize)
	}
	h.store.SetPage(req.PageIndex)
	h.writeView(c, http.StatusOK)
}

func (h *InventoryHandler) Refresh(c *gin.Context) {
	if err := h.store.Refresh(c.Request.Context()); err != nil {
		h.writeError(c, "failed to refresh products", err)
		return
	}
	h.writeView(c, http.StatusOK)
}

func (h *InventoryHandler) ValidateProduct(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saveEnabled": form.SaveEnabled()})
}

func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}
	input, err := form.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.store.AddProduct(c.Request.Context(), input); err != nil {
		h.writeError(c, "failed to add product", err)
		return
	}
	h.writeView(c, http.StatusCreated)
}

func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	form, ok := h.bindForm(c)
	if !ok {
		return
	}
	input, err := form.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.store.EditProduct(c.Request.Context(), id, (*dto.UpdateProductInput)(input)); err != nil {
		h.writeError(c, "failed to edit product", err)
		return
	}
	h.writeView(c, http.StatusOK)
}

func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, "failed to delete product", err)
		return
	}
	h.writeView(c, http.StatusOK)
}

func (h *InventoryHandler) ToggleChecked(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := h.store.ToggleChecked(c.Request.Context(), id); err != nil {
		h.writeError(c, "failed to toggle product stock", err)
		return
	}
	h.writeView(c, http.StatusOK)
}

// bindForm decodes the form and rejects it when Save would be disabled.
func (h *InventoryHandler) bindForm(c *gin.Context) (*ProductForm, bool) {
	var form ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	if !form.SaveEnabled() {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "name, category, price and stock are required, and expiration for Food"})
		return nil, false
	}
	return &form, true
}

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return 0, false
	}
	return id, true
}

func (h *InventoryHandler) writeView(c *gin.Context, status int) {
	st := h.store.Snapshot()
	c.JSON(status, mapView(st.View(h.now()), st))
}

func (h *InventoryHandler) writeError(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Warn(msg, zap.Error(err))
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, product.ErrInvalidProduct):
		return http.StatusBadRequest
	case errors.Is(err, product.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
