package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// ChauffeurHandler serves the chauffeur roster.
type ChauffeurHandler struct {
	chauffeurs db.ChauffeurCollection
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewChauffeurHandler(chauffeurs db.ChauffeurCollection, log logrus.FieldLogger) *ChauffeurHandler {
	return &ChauffeurHandler{chauffeurs: chauffeurs, log: log, now: time.Now}
}

// List handles GET /api/chauffeurs. license_expiring_days=N keeps only
// chauffeurs whose license expires within N days.
func (h *ChauffeurHandler) List(c *gin.Context) {
	chauffeurs, err := h.chauffeurs.FindChauffeurs(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "chauffeurs")
		return
	}

	if raw := c.Query("license_expiring_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			response.BadRequest(c, "license_expiring_days must be a non-negative integer")
			return
		}
		now := h.now()
		filtered := make([]models.Chauffeur, 0, len(chauffeurs))
		for _, ch := range chauffeurs {
			if ch.LicenseExpiresWithin(now, time.Duration(days)*24*time.Hour) {
				filtered = append(filtered, ch)
			}
		}
		chauffeurs = filtered
	}
	response.SuccessWithMeta(c, "Chauffeurs retrieved", chauffeurs, &response.Meta{Count: len(chauffeurs), Empty: len(chauffeurs) == 0})
}
