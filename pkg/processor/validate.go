package processor

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

func validDetails(logger *slog.Logger, details any) bool {
	if err := validate.Struct(details); err != nil {
		logger.Debug("Payment details rejected", "error", err)
		return false
	}
	return true
}
