// Package goroutine launches background work that must not take the
// process down with it.
package goroutine

import (
	"runtime/debug"

	"verdant/internal/shared/logger"
)

// SafeGo runs fn on its own goroutine. A panic inside fn is recovered and
// logged with the goroutine name and stack; the process keeps serving.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			log.Errorw("background goroutine panicked",
				"name", name,
				"value", recovered,
				"stack", string(debug.Stack()),
			)
		}()
		fn()
	}()
}
