// Package countdown implements the countdown timer widget: a duration field,
// the remaining time, and the Idle/Running/Paused state machine driving a
// one-second decrement action.
//
// All Widget methods run on a single goroutine (the UI loop). The decrement
// action is obtained from an engine.Scheduler, which delivers fires on that
// same goroutine, so the widget holds no locks.
//
// Usage pattern:
//
//	w := countdown.New(sched, countdown.WithLogger(log))
//	w.Field().SetText("125")
//	w.SetDuration() // Display() == "02:05"
//	w.Start()
package countdown
