package scheduler

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

func TestPrimaryExpiryWithNoBankSynthesizesExpire(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	expired := make(chan Fingerprint, 1)
	s := New(clock, zerolog.Nop(), func(fp Fingerprint) { expired <- fp }, nil)

	fp := Fingerprint{TableID: "t1", HandNumber: 1, Street: 1, Seat: 0}
	s.Arm(fp, 15*time.Second, 0)

	clock.Advance(15 * time.Second).MustWait(t.Context())

	select {
	case got := <-expired:
		if got != fp {
			t.Fatalf("expected expiry for %+v, got %+v", fp, got)
		}
	default:
		t.Fatal("expected the primary timer to fire")
	}
}

func TestActionBeforeExpiryCancelsTheTimer(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	expired := make(chan Fingerprint, 1)
	s := New(clock, zerolog.Nop(), func(fp Fingerprint) { expired <- fp }, nil)

	fp := Fingerprint{TableID: "t1", HandNumber: 1, Street: 1, Seat: 0}
	s.Arm(fp, 15*time.Second, 30)
	if remaining := s.Cancel(fp); remaining != 30 {
		t.Fatalf("expected the full untouched bank back, got %d", remaining)
	}

	clock.Advance(time.Minute).MustWait(t.Context())

	select {
	case got := <-expired:
		t.Fatalf("did not expect an expiry after cancel, got %+v", got)
	default:
	}
}

func TestCancelAfterSomeTicksReturnsWhatIsLeft(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	s := New(clock, zerolog.Nop(), func(Fingerprint) {}, func(Fingerprint, int) {})

	fp := Fingerprint{TableID: "t1", HandNumber: 1, Street: 1, Seat: 0}
	s.Arm(fp, 15*time.Second, 5)

	clock.Advance(15 * time.Second).MustWait(t.Context())
	clock.Advance(time.Second).MustWait(t.Context())
	clock.Advance(time.Second).MustWait(t.Context())

	if remaining := s.Cancel(fp); remaining != 3 {
		t.Fatalf("expected 3 seconds left after two ticks off a 5 second bank, got %d", remaining)
	}
}

func TestCancelOfAStaleFingerprintReturnsZero(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	s := New(clock, zerolog.Nop(), func(Fingerprint) {}, nil)

	fp := Fingerprint{TableID: "t1", HandNumber: 1, Street: 1, Seat: 0}
	if remaining := s.Cancel(fp); remaining != 0 {
		t.Fatalf("expected 0 for a fingerprint that was never armed, got %d", remaining)
	}
}

func TestTimeBankCascadesIntoTicksThenExpires(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	var ticks []int
	expired := make(chan Fingerprint, 1)
	s := New(clock, zerolog.Nop(),
		func(fp Fingerprint) { expired <- fp },
		func(fp Fingerprint, remaining int) { ticks = append(ticks, remaining) },
	)

	fp := Fingerprint{TableID: "t1", HandNumber: 2, Street: 0, Seat: 3}
	s.Arm(fp, 15*time.Second, 3)

	clock.Advance(15 * time.Second).MustWait(t.Context())
	clock.Advance(time.Second).MustWait(t.Context())
	clock.Advance(time.Second).MustWait(t.Context())
	clock.Advance(time.Second).MustWait(t.Context())

	if len(ticks) != 2 {
		t.Fatalf("expected two ticks (3->2, 2->1) before exhaustion, got %v", ticks)
	}
	select {
	case got := <-expired:
		if got != fp {
			t.Fatalf("unexpected fingerprint on bank exhaustion: %+v", got)
		}
	default:
		t.Fatal("expected bank exhaustion to synthesize an expiry")
	}
}

func TestStaleFingerprintOnFireIsIgnored(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	expired := make(chan Fingerprint, 2)
	s := New(clock, zerolog.Nop(), func(fp Fingerprint) { expired <- fp }, nil)

	first := Fingerprint{TableID: "t1", HandNumber: 1, Street: 1, Seat: 0}
	s.Arm(first, 15*time.Second, 0)

	second := Fingerprint{TableID: "t1", HandNumber: 1, Street: 1, Seat: 1}
	s.Arm(second, 15*time.Second, 0)

	clock.Advance(15 * time.Second).MustWait(t.Context())

	got := <-expired
	if got != second {
		t.Fatalf("expected only the latest fingerprint to fire, got %+v", got)
	}
	select {
	case extra := <-expired:
		t.Fatalf("did not expect the superseded fingerprint to fire too, got %+v", extra)
	default:
	}
}
