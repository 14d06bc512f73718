package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTimeRange indicates a time range key outside the supported set.
	ErrUnknownTimeRange = errors.New("dashboard: unknown time range")
	// ErrUnknownTab indicates a tab key outside the supported set.
	ErrUnknownTab = errors.New("dashboard: unknown tab")
	// ErrRefreshInProgress is returned while the refresh spinner is active.
	ErrRefreshInProgress = errors.New("dashboard: refresh already in progress")
	// ErrInsightBusy is returned while an insight regeneration is pending.
	ErrInsightBusy = errors.New("dashboard: insight regeneration in progress")
	// ErrIndexOutOfRange signals a carousel selection outside the filtered deck.
	ErrIndexOutOfRange = errors.New("dashboard: index out of range")
	// ErrUnknownCard indicates the card id is not registered.
	ErrUnknownCard = errors.New("dashboard: unknown card")
	// ErrCardNotMounted indicates the card is registered but not part of the active tab.
	ErrCardNotMounted = errors.New("dashboard: card not mounted")
	// ErrUnsupportedAction indicates the card does not handle the requested action.
	ErrUnsupportedAction = errors.New("dashboard: unsupported card action")
	// ErrSessionClosed is returned when a closed shell receives a call.
	ErrSessionClosed = errors.New("dashboard: session closed")
	// ErrViewDisposed is returned when a torn-down view receives a call.
	ErrViewDisposed = errors.New("dashboard: view disposed")
	// ErrUnknownNavItem indicates a sidebar label that does not exist.
	ErrUnknownNavItem = errors.New("dashboard: unknown navigation item")
	// ErrInvalidAction indicates an action payload that failed schema validation.
	ErrInvalidAction = errors.New("dashboard: invalid action payload")
	// ErrInvalidActionValue indicates an action value outside the card's options.
	ErrInvalidActionValue = errors.New("dashboard: invalid action value")
	// ErrUnknownDataPoint indicates a tooltip label missing from the chart data.
	ErrUnknownDataPoint = errors.New("dashboard: unknown data point")
	// ErrUnknownSession indicates the session id is not tracked.
	ErrUnknownSession = errors.New("dashboard: unknown session")
)

func wrapCardErr(id CardID, err error, detail string) error {
	return fmt.Errorf("%w: %s %q", err, id, detail)
}
