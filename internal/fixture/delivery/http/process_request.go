package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/fixture/usecase"
	"admin-datagrid/internal/model"
	"admin-datagrid/internal/query"
	"admin-datagrid/pkg/response"
)

// processListReq parses and validates the list query string.
func (h *handler) processListReq(c *gin.Context, d model.Descriptor) (fixture.ListInput, error) {
	p, err := query.Parse(c.Request.URL.Query(), d.Facets)
	if err != nil {
		return fixture.ListInput{}, response.BadRequest(err)
	}
	if err := p.Validate(d.Facets); err != nil {
		return fixture.ListInput{}, response.BadRequest(err)
	}
	return fixture.ListInput{Collection: usecase.CollectionName(d), Params: p}, nil
}

// processRecordReq binds a JSON object body.
func (h *handler) processRecordReq(c *gin.Context) (fixture.Record, error) {
	var rec fixture.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		return nil, response.BadRequest(err)
	}
	if len(rec) == 0 {
		return nil, response.BadRequest(errEmptyBody)
	}
	return rec, nil
}

// processCleanupReq reads the olderThan query parameter in days.
func (h *handler) processCleanupReq(c *gin.Context) (fixture.CleanupInput, error) {
	raw := c.Query("olderThan")
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return fixture.CleanupInput{}, response.BadRequest(fmt.Errorf("olderThan must be a positive number of days, got %q", raw))
	}
	return fixture.CleanupInput{OlderThanDays: days}, nil
}
