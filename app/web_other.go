//go:build !js

package main

import "gioui.org/app"

// registerWebCallbacks is a no-op outside the browser.
func registerWebCallbacks(es *EditorState, w *app.Window) {}
