// Package dashboard re-exports the session-facing types of the analytics
// dashboard for hosts that embed it.
package dashboard

import (
	core "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

type (
	SessionManager = core.SessionManager
	SessionOptions = core.SessionOptions
	ShellOptions   = core.ShellOptions
	Controls       = core.Controls
	ViewerContext  = core.ViewerContext
	Page           = core.Page
	RuntimeConfig  = core.RuntimeConfig
)

// NewSessionManager proxies to the internal constructor.
func NewSessionManager(opts SessionOptions) *SessionManager {
	return core.NewSessionManager(opts)
}

// LoadRuntimeConfig reads the INSIGHTS_* environment.
func LoadRuntimeConfig() (*RuntimeConfig, error) {
	return core.LoadRuntimeConfig()
}
