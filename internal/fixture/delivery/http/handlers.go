package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"admin-datagrid/internal/fixture/usecase"
	"admin-datagrid/internal/model"
	"admin-datagrid/pkg/response"
)

// List godoc
// @Summary     List records
// @Description Returns one page of a collection. Facets are collection-specific query parameters.
// @Tags        Collections
// @Produce     json
// @Param       collection path  string false "assignments, performance-records, audit-logs or products"
// @Param       page       query int    false "Page number (default: 1)"
// @Param       limit      query int    false "Page size (default: 50)"
// @Param       search     query string false "Free-text search"
// @Param       startDate  query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       endDate    query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/{collection} [GET]
func (h *handler) List(d model.Descriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		input, err := h.processListReq(c, d)
		if err != nil {
			response.Error(c, err)
			return
		}

		output, err := h.uc.List(ctx, input)
		if err != nil {
			h.l.Errorf(ctx, "uc.List %s: %v", d.Route, err)
			response.Error(c, h.mapError(err))
			return
		}

		resp := newListResp(output)
		response.OK(c, d.ItemsField, resp.Records, gin.H{"pagination": resp.Pagination})
	}
}

// Create godoc
// @Summary     Create a record
// @Tags        Collections
// @Accept      json
// @Produce     json
// @Param       collection path string true "Collection"
// @Param       body       body object true "Record fields"
// @Success     201 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "Conflict"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/{collection} [POST]
func (h *handler) Create(d model.Descriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rec, err := h.processRecordReq(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		created, err := h.uc.Create(ctx, usecase.CollectionName(d), rec)
		if err != nil {
			h.l.Warnf(ctx, "uc.Create %s: %v", d.Route, err)
			response.Error(c, h.mapError(err))
			return
		}

		response.Created(c, fmt.Sprintf("%s created", d.ItemField), d.ItemField, created)
	}
}

// Update godoc
// @Summary     Update a record
// @Description Partial update; id and createdAt cannot change.
// @Tags        Collections
// @Accept      json
// @Produce     json
// @Param       collection path string true "Collection"
// @Param       id         path string true "Record ID"
// @Param       body       body object true "Fields to update"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/{collection}/{id} [PUT]
func (h *handler) Update(d model.Descriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rec, err := h.processRecordReq(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		updated, err := h.uc.Update(ctx, usecase.CollectionName(d), c.Param("id"), rec)
		if err != nil {
			h.l.Warnf(ctx, "uc.Update %s: %v", d.Route, err)
			response.Error(c, h.mapError(err))
			return
		}

		response.JSON(c, http.StatusOK, fmt.Sprintf("%s updated", d.ItemField), d.ItemField, updated, nil)
	}
}

// Delete godoc
// @Summary     Delete a record
// @Tags        Collections
// @Produce     json
// @Param       collection path string true "Collection"
// @Param       id         path string true "Record ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/{collection}/{id} [DELETE]
func (h *handler) Delete(d model.Descriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := h.uc.Delete(ctx, usecase.CollectionName(d), c.Param("id")); err != nil {
			h.l.Warnf(ctx, "uc.Delete %s: %v", d.Route, err)
			response.Error(c, h.mapError(err))
			return
		}

		response.Message(c, fmt.Sprintf("%s deleted", d.ItemField))
	}
}

// ToggleStatus godoc
// @Summary     Toggle product status
// @Tags        Products
// @Produce     json
// @Param       id path string true "Product ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/products/{id}/toggle-status [PATCH]
func (h *handler) ToggleStatus(c *gin.Context) {
	ctx := c.Request.Context()

	rec, err := h.uc.ToggleStatus(ctx, c.Param("id"))
	if err != nil {
		h.l.Warnf(ctx, "uc.ToggleStatus: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.JSON(c, http.StatusOK, fmt.Sprintf("Product is now %s", rec["status"]), "product", rec, nil)
}

// DeleteImage godoc
// @Summary     Remove a product image
// @Tags        Products
// @Produce     json
// @Param       id path string true "Product ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Product has no image"
// @Router      /api/v1/products/{id}/image [DELETE]
func (h *handler) DeleteImage(c *gin.Context) {
	ctx := c.Request.Context()

	rec, err := h.uc.DeleteImage(ctx, c.Param("id"))
	if err != nil {
		h.l.Warnf(ctx, "uc.DeleteImage: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.JSON(c, http.StatusOK, "Image removed", "product", rec, nil)
}

// Export godoc
// @Summary     Export audit logs
// @Description Streams every audit log matching the list filters as CSV.
// @Tags        Audit Logs
// @Produce     text/csv
// @Success     200 {string} string "CSV"
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/audit-logs/export [GET]
func (h *handler) Export(d model.Descriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		input, err := h.processListReq(c, d)
		if err != nil {
			response.Error(c, err)
			return
		}

		data, err := h.uc.Export(ctx, input)
		if err != nil {
			h.l.Errorf(ctx, "uc.Export: %v", err)
			response.Error(c, h.mapError(err))
			return
		}

		c.Header("Content-Disposition", `attachment; filename="audit-logs.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	}
}

// Cleanup godoc
// @Summary     Delete old audit logs
// @Tags        Audit Logs
// @Produce     json
// @Param       olderThan query int true "Age in days"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/audit-logs/cleanup [DELETE]
func (h *handler) Cleanup(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCleanupReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.Cleanup(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Cleanup: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.JSON(c, http.StatusOK, fmt.Sprintf("Removed %d audit logs", out.Removed), "result", cleanupResp{Removed: out.Removed}, nil)
}
