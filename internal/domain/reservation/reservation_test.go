package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("2026-03-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate(2026-03-11) = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "11-03-2026", "2026/03/11", "2026-13-01", "2026-03-41", "tomorrow", "2026-03-11T12:00:00Z"} {
		if _, err := ParseDate(bad); !errors.Is(err, internaltypes.ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		want    string
		wantErr bool
	}{
		"":      {want: DefaultTime},
		"12:00": {want: "12:00"},
		"09:30": {want: "09:30"},
		"23:59": {want: "23:59"},
		"24:00": {wantErr: true},
		"9:3":   {wantErr: true},
		"noon":  {wantErr: true},
	}
	for input, tc := range cases {
		got, err := NormalizeTime(input)
		if tc.wantErr {
			var ve internaltypes.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("NormalizeTime(%q) error = %v, want ValidationError", input, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeTime(%q) unexpected error: %v", input, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeTime(%q) = %q, want %q", input, got, tc.want)
		}
	}
}

func TestNormalizePartySize(t *testing.T) {
	t.Parallel()

	if got, err := NormalizePartySize(0); err != nil || got != DefaultPartySize {
		t.Fatalf("NormalizePartySize(0) = %d, %v", got, err)
	}
	if got, err := NormalizePartySize(6); err != nil || got != 6 {
		t.Fatalf("NormalizePartySize(6) = %d, %v", got, err)
	}
	if _, err := NormalizePartySize(-2); err == nil {
		t.Fatal("NormalizePartySize(-2) expected error")
	}
}

func TestExpiredAt(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	mk := func(date string) Reservation {
		d, err := ParseDate(date)
		if err != nil {
			t.Fatalf("bad fixture date %q: %v", date, err)
		}
		return Reservation{Date: d}
	}

	if !mk("2026-03-09").ExpiredAt(today) {
		t.Fatal("yesterday should be expired")
	}
	if mk("2026-03-10").ExpiredAt(today) {
		t.Fatal("today should not be expired")
	}
	if mk("2026-03-11").ExpiredAt(today) {
		t.Fatal("tomorrow should not be expired")
	}
}
