package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"admin-datagrid/pkg/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "admin-datagrid-fixture"
)

// collectionStatus describes one mounted collection on /ready.
type collectionStatus struct {
	Name     string `json:"name"`
	Route    string `json:"route"`
	ReadOnly bool   `json:"readOnly"`
}

func (srv HTTPServer) probe(status string) gin.H {
	return gin.H{
		"status":      status,
		"version":     HealthVersion,
		"service":     ServiceName,
		"environment": srv.environment,
	}
}

// healthCheck reports the process as healthy.
// @Summary Health Check
// @Description Check if the fixture API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, "", nil, srv.probe("healthy"))
}

// readyCheck lists the collections served under /api/v1. With none mounted
// the server answers 503.
// @Summary Readiness Check
// @Description Report the collections the fixture API serves
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "No collections mounted"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	cols := make([]collectionStatus, 0, len(srv.descriptors))
	for _, d := range srv.descriptors {
		cols = append(cols, collectionStatus{Name: d.Name, Route: "/api/v1" + d.Route, ReadOnly: d.ReadOnly})
	}

	if len(cols) == 0 {
		extra := srv.probe("not_ready")
		extra["success"] = false
		response.JSON(c, http.StatusServiceUnavailable, "no collections mounted", "collections", cols, extra)
		return
	}
	response.OK(c, "collections", cols, srv.probe("ready"))
}

// liveCheck answers as long as the process can serve requests.
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, "", nil, srv.probe("alive"))
}
