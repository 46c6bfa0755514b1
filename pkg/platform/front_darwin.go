//go:build darwin

// Package platform holds the small OS-specific shims the alarm window
// needs. On macOS a fullscreen window opened from a background app does
// not steal focus, so the ringing alarm has to activate the app itself.
package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

void bringToFront() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// BringToFront raises the app above whatever currently has focus
func BringToFront() {
	C.bringToFront()
}
