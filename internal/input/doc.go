// Package input unifies keyboard, mouse and gesture input.
//
// Every producer (window callbacks, the gesture poller, the remote control
// server, the file watcher) posts Events into one bounded Queue. The render
// loop drains the queue once per frame and hands each event to a Dispatcher,
// which turns keys into Actions and applies them to the viewport.
//
// Keys map to actions through ActionFor. With reverse set, Left/Right and
// Up/Down swap; Escape always quits. Gesture codes are posted as key events,
// so they follow the same mapping.
package input
