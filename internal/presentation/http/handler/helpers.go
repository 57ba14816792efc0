package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return enum.UserRoleStaff
	}
	role, ok := roleVal.(enum.UserRole)
	if !ok {
		return enum.UserRoleStaff
	}
	return role
}

// IsManager checks if the user has the manager role
func IsManager(c *gin.Context) bool {
	return GetUserRole(c) == enum.UserRoleManager
}

// parseOptionalUUID parses a nullable string field into a *uuid.UUID.
// Empty and nil both map to nil.
func parseOptionalUUID(s *string) (*uuid.UUID, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}
