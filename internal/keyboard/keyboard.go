// Package keyboard runs a one-byte command mailbox over a raw terminal:
// a single reader goroutine blocks on the controlling terminal
// (/dev/tty) and stores each byte it
// reads into an atomically-read mailbox, so a main loop elsewhere can
// poll for a command without blocking on input itself.
package keyboard

import (
	"os"
	"sync/atomic"

	"github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// Mailbox holds the most recently typed command byte. Zero means no
// command is pending. A single writer goroutine (the one started by
// Start) and any number of readers share it through atomic loads and
// stores, so no lock is needed.
type Mailbox struct {
	value atomic.Uint32
}

// Take reads and clears the pending command, returning 0 if none is
// pending.
func (m *Mailbox) Take() byte {
	return byte(m.value.Swap(0))
}

// Peek reads the pending command without clearing it.
func (m *Mailbox) Peek() byte {
	return byte(m.value.Load())
}

func (m *Mailbox) set(b byte) {
	m.value.Store(uint32(b))
}

// Reader owns the raw terminal and the goroutine reading from it.
type Reader struct {
	term *term.Term
}

// Open opens the controlling terminal (/dev/tty) in raw mode so
// keystrokes arrive one at a time, unechoed, without waiting for a
// newline.
func Open() (*Reader, error) {
	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return nil, err
	}
	return &Reader{term: t}, nil
}

// Close restores the terminal's original mode.
func (r *Reader) Close() error {
	if r == nil || r.term == nil {
		return nil
	}
	return r.term.Restore()
}

// Start launches the reader goroutine, storing every byte read from the
// terminal into mailbox until a read fails (for instance because the
// terminal is closed) or a 'q'/'x' command arrives. It returns
// immediately.
func (r *Reader) Start(mailbox *Mailbox) {
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.term.Read(buf)
			if n != 1 || err != nil {
				return
			}
			mailbox.set(buf[0])
			if buf[0] == 'q' || buf[0] == 'x' {
				return
			}
		}
	}()
}

// fallbackReader reads raw bytes from /dev/tty directly via raw termios
// set through golang.org/x/sys/unix, used on platforms where
// github.com/pkg/term cannot attach to the controlling terminal.
type fallbackReader struct {
	f        *os.File
	original unix.Termios
}

// OpenFallback opens /dev/tty and puts it into raw (unbuffered, unechoed)
// mode by hand, for platforms where Open's raw-mode attach fails.
func OpenFallback() (*fallbackReader, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	orig, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	if err != nil {
		f.Close()
		return nil, err
	}
	raw := *orig
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(int(f.Fd()), unix.TCSETS, &raw); err != nil {
		f.Close()
		return nil, err
	}
	return &fallbackReader{f: f, original: *orig}, nil
}

func (r *fallbackReader) Close() error {
	_ = unix.IoctlSetTermios(int(r.f.Fd()), unix.TCSETS, &r.original)
	return r.f.Close()
}

func (r *fallbackReader) Start(mailbox *Mailbox) {
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.f.Read(buf)
			if n != 1 || err != nil {
				return
			}
			mailbox.set(buf[0])
			if buf[0] == 'q' || buf[0] == 'x' {
				return
			}
		}
	}()
}
