package httpapi

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
)

var statusTable = []struct {
	err    error
	status int
}{
	{dashboard.ErrUnknownTimeRange, http.StatusBadRequest},
	{dashboard.ErrUnknownTab, http.StatusBadRequest},
	{dashboard.ErrUnknownNavItem, http.StatusBadRequest},
	{dashboard.ErrInvalidAction, http.StatusBadRequest},
	{dashboard.ErrInvalidActionValue, http.StatusBadRequest},
	{dashboard.ErrUnsupportedAction, http.StatusBadRequest},
	{dashboard.ErrIndexOutOfRange, http.StatusBadRequest},
	{dashboard.ErrUnknownCard, http.StatusNotFound},
	{dashboard.ErrUnknownSession, http.StatusNotFound},
	{dashboard.ErrUnknownDataPoint, http.StatusNotFound},
	{dashboard.ErrSessionClosed, http.StatusGone},
	{dashboard.ErrCardNotMounted, http.StatusConflict},
	{dashboard.ErrRefreshInProgress, http.StatusConflict},
	{dashboard.ErrInsightBusy, http.StatusConflict},
}

// StatusFor maps dashboard sentinel errors to an HTTP status. Anything
// unrecognized is a 500.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}
