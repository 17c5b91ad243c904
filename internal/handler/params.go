package handler

import (
	"strconv"
	"time"

	"tobacco/internal/model"
	"tobacco/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Query-parameter parsing shared by the list endpoints. Every helper
// returns nil for an absent parameter so omitted filters impose no
// constraint.

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid %s", name)
	}
	return id, nil
}

func queryString(c *gin.Context, name string) *string {
	if value, ok := c.GetQuery(name); ok {
		return &value
	}
	return nil
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	value, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, apperror.Validation("invalid %s: %q", name, value)
	}
	return &parsed, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	value, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, apperror.Validation("invalid %s: %q", name, value)
	}
	return &parsed, nil
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	value, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperror.Validation("invalid %s: expected RFC3339 timestamp", name)
	}
	return &parsed, nil
}

func queryAuthority(c *gin.Context, name string) (*model.Authority, error) {
	value, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	authority, ok := model.ParseAuthority(value)
	if !ok {
		return nil, apperror.Validation("unknown authority %q", value)
	}
	return &authority, nil
}
