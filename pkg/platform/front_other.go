//go:build !darwin

package platform

// BringToFront is a no-op outside macOS; RequestFocus is enough there
func BringToFront() {
}
