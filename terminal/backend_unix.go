//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	out      *os.File
	inFd     int
	outFd    int
	oldState *term.State
}

func newBackend() Backend {
	return &unixBackend{
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// Init turns off echo and canonical input on stdin, leaving ISIG set so Ctrl-C still raises SIGINT
func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.outFd) {
		return errors.New("stdout is not a terminal")
	}
	if !term.IsTerminal(b.inFd) {
		// Piped stdin: nothing to echo, nothing to restore
		return nil
	}

	old, err := term.GetState(b.inFd)
	if err != nil {
		return errors.Wrap(err, "get tty state")
	}

	termios, err := unix.IoctlGetTermios(b.inFd, ioctlReadTermios)
	if err != nil {
		return errors.Wrap(err, "get termios")
	}
	termios.Lflag &^= unix.ECHO | unix.ICANON
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(b.inFd, ioctlWriteTermios, termios); err != nil {
		return errors.Wrap(err, "set termios")
	}

	b.oldState = old
	return nil
}

func (b *unixBackend) Fini() {
	if b.oldState != nil {
		term.Restore(b.inFd, b.oldState)
		b.oldState = nil
	}
}

func (b *unixBackend) Size() (int, int, error) {
	w, h, err := term.GetSize(b.outFd)
	if err != nil {
		return 0, 0, errors.Wrap(err, "get size")
	}
	return w, h, nil
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios); err == nil {
		termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		termios.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, ioctlWriteTermios, termios)
	}
}
