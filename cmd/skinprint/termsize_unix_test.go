//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"testing"
	"time"

	"badc0de.net/pkg/go-skinmod/ttesting"

	"golang.org/x/sys/unix"
)

func pipe(t *testing.T) (r, w int) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(p[0])
		unix.Close(p[1])
	})
	return p[0], p[1]
}

func TestReadReply(t *testing.T) {
	r, w := pipe(t)
	if _, err := unix.Write(w, []byte("\033[4;600;800t")); err != nil {
		t.Fatal(err)
	}
	s, ok := readReply(r, time.Now().Add(time.Second))
	ttesting.AssertTrue(t, "reply read", ok)
	m := kittySizeReply.FindStringSubmatch(s)
	if len(m) != 3 {
		t.Fatalf("reply %q does not match", s)
	}
	ttesting.AssertEqualString(t, "height", m[1], "600")
	ttesting.AssertEqualString(t, "width", m[2], "800")
}

func TestReadReplyTimeout(t *testing.T) {
	r, _ := pipe(t)
	start := time.Now()
	_, ok := readReply(r, start.Add(50*time.Millisecond))
	ttesting.AssertFalse(t, "no reply", ok)
	if el := time.Since(start); el > 2*time.Second {
		t.Errorf("gave up after %v", el)
	}
}
