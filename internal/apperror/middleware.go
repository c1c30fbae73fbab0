package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"github.com/otomarket/auction-services/auctiongateway/internal/service"
)

// ErrorHandler maps service errors onto the public error contract: a
// JSON body with a short user-visible message and its code, under the
// status the code calls for.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(Response{Error: fiberErr.Message})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(Response{
			Error: constants.GetErrorMessage(constants.ErrCodeInternalError),
			Code:  constants.ErrCodeInternalError,
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == 500 && err.Code != constants.ErrCodeInternalError {
		errorCode = constants.ErrCodeInternalError
	}

	return c.Status(status).JSON(Response{
		Error: constants.GetErrorMessage(errorCode),
		Code:  errorCode,
	})
}
