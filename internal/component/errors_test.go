package component

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportUnhandled_PrefersInstalledAppHandler(t *testing.T) {
	var gotErr error
	var gotName string
	SetAppErrorHandler(func(err error, name string) {
		gotErr = err
		gotName = name
	})
	defer SetAppErrorHandler(nil)

	sentinel := errors.New("boom")
	ReportUnhandled(sentinel, "Widget")

	assert.Equal(t, sentinel, gotErr)
	assert.Equal(t, "Widget", gotName)
}

func TestReportUnhandled_FallsBackToSentryAndLogWithoutPanicking(t *testing.T) {
	SetAppErrorHandler(nil)
	assert.NotPanics(t, func() {
		ReportUnhandled(errors.New("no app handler installed"), "Widget")
	})
}

func TestSetAppErrorHandler_NilRestoresDefault(t *testing.T) {
	SetAppErrorHandler(func(err error, name string) { t.Fatal("must not be called after being cleared") })
	SetAppErrorHandler(nil)

	assert.NotPanics(t, func() {
		ReportUnhandled(errors.New("after clear"), "Widget")
	})
}
