// Package systemd reports service state to the systemd service manager.
package systemd

import (
	"github.com/coreos/go-systemd/v22/daemon"
)

// notify is swapped in tests.
var notify = daemon.SdNotify

// Ready tells systemd that startup finished. It reports false, nil when the
// process was not started by systemd with NOTIFY_SOCKET set.
func Ready() (bool, error) {
	return notify(false, daemon.SdNotifyReady)
}

// Stopping tells systemd that shutdown has begun.
func Stopping() (bool, error) {
	return notify(false, daemon.SdNotifyStopping)
}

// Status sets the free-form status line shown by systemctl status.
func Status(status string) (bool, error) {
	return notify(false, "STATUS="+status)
}
