// Package flash manages short-lived notification messages.
//
// A Service owns one Store of messages split into scopes. Each message is
// removed when its expiry timer fires, when the user navigates (optionally
// after surviving a number of navigations), when it is dismissed, when a
// message with the same content replaces it, or when its scope is reset.
// Whichever trigger fires first wins; later triggers are no-ops.
//
// The package has no UI dependency. Views read Service.Messages and redraw
// on the flash.* events the service publishes on the bus.
package flash
