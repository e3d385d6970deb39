package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-dashboard/internal/costs"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

func costRouter(h *CostHandler) http.Handler {
	r := newRouter()
	r.GET("/api/costs", h.List)
	r.GET("/api/costs/summary", h.Summary)
	return r
}

func TestCostHandler_List(t *testing.T) {
	r := costRouter(NewCostHandler(demoStore(t), quietLogger()))

	_, env := do(t, r, http.MethodGet, "/api/costs", nil)
	var list []models.Cost
	decodeData(t, env, &list)
	assert.Len(t, list, 12)

	_, env = do(t, r, http.MethodGet, "/api/costs?category=fuel", nil)
	decodeData(t, env, &list)
	assert.Len(t, list, 5)
}

func TestCostHandler_Summary(t *testing.T) {
	r := costRouter(NewCostHandler(demoStore(t), quietLogger()))

	w, env := do(t, r, http.MethodGet, "/api/costs/summary?vehicle_id=v2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var s costs.Summary
	decodeData(t, env, &s)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 1, s.Excluded)
	assert.InDelta(t, 58.70, s.Total, 1e-9)
	assert.Equal(t, []costs.MonthTotal{{Month: "2024-04", Amount: 58.70}}, s.ByMonth)
}

func TestMaintenanceHandler_List(t *testing.T) {
	h := NewMaintenanceHandler(demoStore(t), quietLogger())
	r := newRouter()
	r.GET("/api/maintenance", h.List)

	_, env := do(t, r, http.MethodGet, "/api/maintenance", nil)
	var records []models.Maintenance
	decodeData(t, env, &records)
	assert.Len(t, records, 6)

	_, env = do(t, r, http.MethodGet, "/api/maintenance?vehicle_id=v7", nil)
	decodeData(t, env, &records)
	assert.Len(t, records, 2)

	_, env = do(t, r, http.MethodGet, "/api/maintenance?vehicle_id=v8", nil)
	assert.True(t, env.Meta.Empty)
}

func TestChauffeurHandler_List(t *testing.T) {
	h := NewChauffeurHandler(demoStore(t), quietLogger())
	h.now = func() time.Time { return evalDate }
	r := newRouter()
	r.GET("/api/chauffeurs", h.List)

	_, env := do(t, r, http.MethodGet, "/api/chauffeurs", nil)
	var list []models.Chauffeur
	decodeData(t, env, &list)
	assert.Len(t, list, 3)

	_, env = do(t, r, http.MethodGet, "/api/chauffeurs?license_expiring_days=365", nil)
	decodeData(t, env, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "c2", list[0].ID)

	w, _ := do(t, r, http.MethodGet, "/api/chauffeurs?license_expiring_days=soon", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
