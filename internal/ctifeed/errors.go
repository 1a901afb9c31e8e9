package ctifeed

import (
	"fmt"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
)

func newUnsupportedFeedError(t Type) *apperrors.Error {
	return apperrors.New(apperrors.CodeFeedConfigError, fmt.Sprintf("unsupported feed type: %s", t))
}

func newAuthError(feed, msg string) *apperrors.Error {
	return apperrors.New(apperrors.CodeFeedAuthError, fmt.Sprintf("%s: %s", feed, msg))
}

func newConnectionError(feed, msg string) *apperrors.Error {
	return apperrors.New(apperrors.CodeFeedConnectionError, fmt.Sprintf("%s: %s", feed, msg))
}

func newAPIError(feed, msg string) *apperrors.Error {
	return apperrors.New(apperrors.CodeFeedAPIError, fmt.Sprintf("%s: %s", feed, msg))
}

func newParseError(feed, msg string) *apperrors.Error {
	return apperrors.New(apperrors.CodeFeedParseError, fmt.Sprintf("%s: %s", feed, msg))
}

func newRateLimitError(retryAfter int) *apperrors.Error {
	return apperrors.FeedRateLimit(retryAfter)
}
