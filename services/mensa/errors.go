package mensa

import "errors"

var (
	// ErrNetwork covers connectivity failures, timeouts and non-2xx
	// responses from the menu provider.
	ErrNetwork = errors.New("network failure")
	// ErrMenuNotFound means the expected menu container is absent from
	// the page. A missing menu for the requested date and a changed
	// site layout are indistinguishable here.
	ErrMenuNotFound = errors.New("menu container not found")
	// ErrParse means a required field of a menu item could not be
	// extracted from its markup.
	ErrParse = errors.New("menu item unparseable")
	// ErrMenuUnavailable is what callers see once the retry budget is
	// exhausted, it wraps the last underlying failure.
	ErrMenuUnavailable = errors.New("menu unavailable")
)
