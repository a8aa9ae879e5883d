package ds

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"new", "inwork", "done", "canceled"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q): unexpected error %v", s, err)
		}
	}
	for _, s := range []string{"", "NEW", "deleted", "in work"} {
		if _, err := ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q): expected error", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		reopen   bool
		want     bool
	}{
		{StatusNew, StatusInWork, false, true},
		{StatusNew, StatusCanceled, false, true},
		{StatusNew, StatusDone, false, false},
		{StatusNew, StatusNew, false, false},
		{StatusInWork, StatusDone, false, true},
		{StatusInWork, StatusCanceled, false, true},
		{StatusInWork, StatusNew, false, false},
		{StatusDone, StatusInWork, false, false},
		{StatusDone, StatusInWork, true, true},
		{StatusDone, StatusNew, true, false},
		{StatusCanceled, StatusInWork, true, true},
		{StatusCanceled, StatusDone, true, false},
		{StatusCanceled, StatusCanceled, false, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to, tt.reopen); got != tt.want {
			t.Errorf("%s -> %s (reopen=%v) = %v, want %v", tt.from, tt.to, tt.reopen, got, tt.want)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	if !StatusDone.IsTerminal() || !StatusCanceled.IsTerminal() {
		t.Error("done and canceled must be terminal")
	}
	if StatusNew.IsTerminal() || StatusInWork.IsTerminal() {
		t.Error("new and inwork must not be terminal")
	}
}

func TestClientLine(t *testing.T) {
	tests := []struct {
		name string
		user TgUser
		want string
	}{
		{"full", TgUser{ID: 42, FirstName: "Иван", LastName: "Петров", Username: "ivan"}, "Иван Петров | @ivan | id 42"},
		{"no username", TgUser{ID: 42, FirstName: "Иван"}, "Иван | — | id 42"},
		{"id only", TgUser{ID: 42}, "— | — | id 42"},
		{"empty", TgUser{}, "— | — | id —"},
	}

	for _, tt := range tests {
		if got := tt.user.ClientLine(); got != tt.want {
			t.Errorf("%s: ClientLine() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
