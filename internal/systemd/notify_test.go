package systemd

import (
	"errors"
	"testing"

	"github.com/coreos/go-systemd/v22/daemon"
)

func TestNotifyStates(t *testing.T) {
	var sent []string
	orig := notify
	notify = func(unsetEnv bool, state string) (bool, error) {
		if unsetEnv {
			t.Error("unsetEnv should be false")
		}
		sent = append(sent, state)
		return true, nil
	}
	defer func() { notify = orig }()

	if ok, err := Ready(); !ok || err != nil {
		t.Errorf("Ready() = %v, %v", ok, err)
	}
	if _, err := Status("lighting=One color=Red"); err != nil {
		t.Errorf("Status() error = %v", err)
	}
	if _, err := Stopping(); err != nil {
		t.Errorf("Stopping() error = %v", err)
	}

	want := []string{daemon.SdNotifyReady, "STATUS=lighting=One color=Red", daemon.SdNotifyStopping}
	if len(sent) != len(want) {
		t.Fatalf("sent %d states, want %d", len(sent), len(want))
	}
	for i := range want {
		if sent[i] != want[i] {
			t.Errorf("state[%d] = %q, want %q", i, sent[i], want[i])
		}
	}
}

func TestNotifyError(t *testing.T) {
	orig := notify
	notify = func(bool, string) (bool, error) { return false, errors.New("socket gone") }
	defer func() { notify = orig }()

	if _, err := Ready(); err == nil {
		t.Error("expected error to propagate")
	}
}

func TestNotifyOutsideSystemd(t *testing.T) {
	t.Setenv("NOTIFY_SOCKET", "")
	ok, err := Ready()
	if ok || err != nil {
		t.Errorf("Ready() outside systemd = %v, %v, want false, nil", ok, err)
	}
}
