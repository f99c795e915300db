package errors

import "errors"

var (
	ErrMissingAPIKey         = errors.New("API_KEY is required when LISTINGS_API_URL is set")
	ErrInvalidZipCode        = errors.New("ZIP_CODE must be a 5-digit ZIP code")
	ErrInvalidUpdateInterval = errors.New("UPDATE_INTERVAL must be a positive number of seconds")
	ErrAuthFailed            = errors.New("listings API rejected the API key")
	ErrBadResponse           = errors.New("listings API returned a malformed response")
	ErrChannelNotFound       = errors.New("channel not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrNoAds                 = errors.New("no ads available")
)
