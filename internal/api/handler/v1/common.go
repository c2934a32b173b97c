package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campbase/campbase-api/internal/api/handler/v1/response"
	"github.com/campbase/campbase-api/internal/api/middleware"
)

// allocatorFromContext returns the staff user id set by the JWT
// middleware; it is recorded as the allocator identity on ledger rows.
func allocatorFromContext(ctx *gin.Context) (uint, *response.Err) {
	value, ok := ctx.Get(middleware.CtxKeyUserID)
	if !ok {
		return 0, response.ErrUnauthorized("missing user identity")
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, response.ErrUnauthorized("invalid user identity")
	}

	return userID, nil
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %v (%v)", name, raw)
	}

	return uint(parsed), nil
}
