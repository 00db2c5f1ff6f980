package notify

import (
	"github.com/bobmcallan/blog-portal/internal/common"
)

// LogSink logs every outcome: debug on success, warn on failure.
func LogSink(logger *common.Logger) Subscriber {
	return func(o Outcome) {
		if o.Succeeded() {
			logger.Debug().Str("op", o.Op.String()).Msg("operation fulfilled")
			return
		}
		logger.Warn().Str("op", o.Op.String()).Err(o.Err).Msg("operation rejected")
	}
}
