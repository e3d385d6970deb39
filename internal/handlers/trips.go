package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/response"
	"github.com/ukydev/fleet-dashboard/internal/triplog"
)

// TripHandler serves the trip log.
type TripHandler struct {
	trips db.TripCollection
	log   logrus.FieldLogger
}

func NewTripHandler(trips db.TripCollection, log logrus.FieldLogger) *TripHandler {
	return &TripHandler{trips: trips, log: log}
}

// tripFilter reads vehicle_id, driver_id, status, purpose, from, to and q.
// A date-only "to" covers the whole day.
func tripFilter(c *gin.Context) (triplog.Filter, bool) {
	from, ok := queryDate(c, "from")
	if !ok {
		return triplog.Filter{}, false
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return triplog.Filter{}, false
	}
	if !to.IsZero() && len(c.Query("to")) == len("2006-01-02") {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		response.BadRequest(c, "to must not be before from")
		return triplog.Filter{}, false
	}

	return triplog.Filter{
		VehicleID: c.Query("vehicle_id"),
		DriverID:  c.Query("driver_id"),
		Status:    c.Query("status"),
		Purpose:   c.Query("purpose"),
		From:      from,
		To:        to,
		Query:     c.Query("q"),
	}, true
}

// List handles GET /api/trips.
func (h *TripHandler) List(c *gin.Context) {
	filter, ok := tripFilter(c)
	if !ok {
		return
	}

	trips, err := h.trips.FindTrips(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "trips")
		return
	}

	matched := filter.Apply(trips)
	response.SuccessWithMeta(c, "Trips retrieved", gin.H{
		"trips": matched,
		"stats": triplog.Summarize(matched),
	}, &response.Meta{Count: len(matched), Empty: len(matched) == 0})
}

// Export handles GET /api/trips/export, streaming the filtered log as CSV.
func (h *TripHandler) Export(c *gin.Context) {
	filter, ok := tripFilter(c)
	if !ok {
		return
	}

	trips, err := h.trips.FindTrips(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "trips")
		return
	}

	var buf bytes.Buffer
	if err := triplog.WriteCSV(&buf, filter.Apply(trips)); err != nil {
		writeError(c, h.log, err, "trip export")
		return
	}

	filename := fmt.Sprintf("trips-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
