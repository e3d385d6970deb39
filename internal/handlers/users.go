package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// UserHandler serves the user directory.
type UserHandler struct {
	users db.UserCollection
	log   logrus.FieldLogger
}

func NewUserHandler(users db.UserCollection, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// List handles GET /api/users, optionally filtered by department.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.FindUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "users")
		return
	}

	if dept := c.Query("department"); dept != "" {
		filtered := make([]models.User, 0, len(users))
		for _, u := range users {
			if strings.EqualFold(u.Department, dept) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	response.SuccessWithMeta(c, "Users retrieved", users, &response.Meta{Count: len(users), Empty: len(users) == 0})
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid JSON")
		return
	}

	// Validate input
	if err := req.Validate(); err != nil {
		response.Validation(c, err.Error())
		return
	}

	user, err := h.users.InsertUser(c.Request.Context(), models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Department: strings.TrimSpace(req.Department),
		Role:       req.Role,
		IsActive:   true,
	})
	if err != nil {
		writeError(c, h.log, err, "user")
		return
	}

	h.log.WithField("user_id", user.ID).Info("User created")
	response.Created(c, "User created", user)
}
