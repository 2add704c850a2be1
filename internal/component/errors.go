package component

import (
	"fmt"
	"sync"

	"github.com/getsentry/sentry-go"

	"github.com/vireoui/vireo/internal/reactivity"
)

// appHandler is the last-resort error sink installed by the host
// application (spec.md §7: "failing that, log and replace..."). Without
// one installed, ReportUnhandled falls back to Sentry (if initialized)
// plus the package's own debug log.
var (
	appHandlerMu sync.RWMutex
	appHandler   func(err error, componentName string)
)

// SetAppErrorHandler installs the top-level handler ReportUnhandled
// defers to after the component chain's own onError hooks decline an
// error. A host application typically wires this once, at startup, to its
// own alerting path; passing nil restores the default (Sentry + debug log).
func SetAppErrorHandler(h func(err error, componentName string)) {
	appHandlerMu.Lock()
	appHandler = h
	appHandlerMu.Unlock()
}

// ReportUnhandled is invoked once an error has walked the entire component
// chain without any onError hook claiming it (spec.md §7's terminal step).
// When an app-level handler is installed it receives the error and nothing
// else happens. Otherwise the error is reported to Sentry, so crashes in a
// deployed terminal UI are still visible somewhere durable, and logged
// through reactivity.Logf, which prints only in debug mode.
func ReportUnhandled(err error, componentName string) {
	appHandlerMu.RLock()
	h := appHandler
	appHandlerMu.RUnlock()

	if h != nil {
		h(err, componentName)
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", componentName)
		sentry.CaptureException(err)
	})
	reactivity.Logf("unhandled error in component %q: %v", componentName, fmt.Errorf("%w", err))
}
