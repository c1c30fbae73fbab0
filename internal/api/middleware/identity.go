package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/otomarket/auction-services/auctiongateway/internal/apperror"
	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
)

const (
	HeaderUserID = "X-User-ID"
	HeaderAdmin  = "X-Admin"

	localUserID = "userID"
	localAdmin  = "isAdmin"
)

// RequireUser resolves the caller identity from the gateway-injected
// X-User-ID header. Requests without a valid identity never reach the
// handlers.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderUserID)
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(apperror.Response{
				Error: "missing or invalid " + HeaderUserID + " header",
			})
		}

		c.Locals(localUserID, userID)
		c.Locals(localAdmin, c.Get(HeaderAdmin) == "true")
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if admin, _ := c.Locals(localAdmin).(bool); !admin {
			return c.Status(fiber.StatusForbidden).JSON(apperror.Response{
				Error: constants.GetErrorMessage(constants.ErrCodeAuthorization),
				Code:  constants.ErrCodeAuthorization,
			})
		}
		return c.Next()
	}
}

// UserID returns the identity set by RequireUser, zero when absent.
func UserID(c *fiber.Ctx) int64 {
	userID, _ := c.Locals(localUserID).(int64)
	return userID
}
