package auth

import (
	"context"

	"github.com/rs/zerolog"
)

// LogAttempt records an authentication attempt on the request logger.
// identifier is the email when known.
func LogAttempt(ctx context.Context, strategy string, identifier string, err error) {
	logger := zerolog.Ctx(ctx)

	var event *zerolog.Event
	if err != nil {
		event = logger.Warn().Err(err).Str("status", "fail")
	} else {
		event = logger.Info().Str("status", "success")
	}
	if identifier != "" {
		event = event.Str("identifier", identifier)
	}
	event.Str("component", "auth").Str("strategy", strategy).Msg("authentication attempt")
}
