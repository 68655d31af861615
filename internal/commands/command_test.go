package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"edit 2 pay rent | 05 Jan 2025", TypeEdit},
		{"done 1", TypeDone},
		{"/delete #3", TypeDelete},
		{"undo", TypeUndo},
		{"category add Work", TypeCategory},
		{"category delete", TypeCategory},
		{"THEME", TypeTheme},
		{"show Personal", TypeShow},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddSchedule(t *testing.T) {
	cases := []struct {
		in                string
		text, date, clock string
	}{
		{"add Dentist", "Dentist", "", ""},
		{"add Dentist | 05 Jan 2025", "Dentist", "05 Jan 2025", ""},
		{"add  Dentist  visit |05   Jan 2025|  5:30 pm ", "Dentist visit", "05 Jan 2025", "5:30 pm"},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		got := cmd.Add
		if got.Text != tc.text || got.Date != tc.date || got.Time != tc.clock {
			t.Fatalf("parse %q = %+v", tc.in, *got)
		}
	}
}

func TestParseEditAndTargets(t *testing.T) {
	cmd, err := Parse("edit 4 Call mom | 06 Feb 2025 | 9:00 am")
	if err != nil {
		t.Fatalf("parse edit: %v", err)
	}
	if e := cmd.Edit; e.Number != 4 || e.Text != "Call mom" || e.Date != "06 Feb 2025" || e.Time != "9:00 am" {
		t.Fatalf("unexpected edit args: %+v", *e)
	}

	cmd, err = Parse("done #2")
	if err != nil || cmd.Target.Number != 2 {
		t.Fatalf("unexpected done parse: %+v %v", cmd, err)
	}

	cmd, err = Parse("category add Side Projects")
	if err != nil {
		t.Fatalf("parse category add: %v", err)
	}
	if cmd.Category.Action != CategoryAdd || cmd.Category.Name != "Side Projects" {
		t.Fatalf("unexpected category args: %+v", *cmd.Category)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"add",
		"add | 05 Jan 2025",
		"add x | 05 Jan 2025 | 5:30 pm | extra",
		"add x | | 5:30 pm",
		"edit two text",
		"edit 2",
		"done",
		"done 0",
		"delete 1 2",
		"undo now",
		"category",
		"category add",
		"category rename x",
		"show",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs | 05 Jan 2025")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" || a.Date != "05 Jan 2025" {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteNoArgumentCommands(t *testing.T) {
	cmd, err := Parse("undo")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, err := Execute(cmd, Handlers{Undo: func() (Result, error) { return Result{Message: "restored"}, nil }})
	if err != nil || res.Message != "restored" {
		t.Fatalf("unexpected undo dispatch: %+v %v", res, err)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show Personal")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
