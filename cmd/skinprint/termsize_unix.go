//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

var kittySizeReply = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

// kittyReplyTimeout bounds the wait for the terminal's size reply.
const kittyReplyTimeout = 200 * time.Millisecond

// readReply reads from fd until a 't' ends the reply or the deadline passes.
func readReply(fd int, deadline time.Time) (string, bool) {
	var reply []byte
	buf := make([]byte, 32)
	for len(reply) < 64 {
		left := time.Until(deadline)
		if left <= 0 {
			return "", false
		}
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(left/time.Millisecond)+1)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			return "", false
		}
		r, err := unix.Read(fd, buf)
		if err == unix.EAGAIN || err == unix.EINTR {
			continue
		}
		if err != nil || r <= 0 {
			return "", false
		}
		reply = append(reply, buf[:r]...)
		if reply[len(reply)-1] == 't' {
			return string(reply), true
		}
	}
	return "", false
}

// kittyPixels asks the terminal on f for its size in pixels with CSI 14 t.
// See https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
func kittyPixels(f *os.File) (width, height int, ok bool) {
	fd := int(f.Fd())
	state, err := terminal.MakeRaw(fd)
	if err != nil {
		return 0, 0, false
	}
	defer terminal.Restore(fd, state) // ignoring error

	if _, err := fmt.Fprint(f, "\033[14t"); err != nil {
		return 0, 0, false
	}
	// <ESC>[4;<height>;<width>t
	s, ok := readReply(fd, time.Now().Add(kittyReplyTimeout))
	if !ok {
		return 0, 0, false
	}
	m := kittySizeReply.FindStringSubmatch(s)
	if len(m) != 3 {
		return 0, 0, false
	}
	h, errH := strconv.Atoi(m[1])
	w, errW := strconv.Atoi(m[2])
	if errH != nil || errW != nil {
		return 0, 0, false
	}
	return w, h, true
}

func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err == nil {
		defer f.Close()
		var sz *unix.Winsize
		if sz, err = unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err == nil {
			if sz.Xpixel == 0 && sz.Ypixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				if w, h, ok := kittyPixels(f); ok {
					sz.Xpixel, sz.Ypixel = uint16(w), uint16(h)
				}
			}
			return TermSize{WSRow: uint(sz.Row), WSCol: uint(sz.Col), WSXPixel: uint(sz.Xpixel), WSYPixel: uint(sz.Ypixel)}, nil
		}
	}
	var w, h int
	if w, h, err = terminal.GetSize(0); err == nil {
		return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
	}
	return TermSize{}, err
}
