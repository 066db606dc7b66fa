package errors

import (
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/backend"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/htmlsanitize"
)

// BackendMessage returns the backend's own message for a rejection and
// fallback for anything else.
func BackendMessage(err error, fallback string) string {
	if rej, ok := backend.IsRejection(err); ok {
		if msg := htmlsanitize.StripTags(rej.Message); msg != "" {
			return msg
		}
	}
	return fallback
}
