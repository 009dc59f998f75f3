//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// otherBackend drives platforms without termios; echo stays as the host left it
type otherBackend struct {
	out   *os.File
	outFd int
}

func newBackend() Backend {
	return &otherBackend{out: os.Stdout, outFd: int(os.Stdout.Fd())}
}

func (b *otherBackend) Init() error {
	if !term.IsTerminal(b.outFd) {
		return errors.New("stdout is not a terminal")
	}
	return nil
}

func (b *otherBackend) Fini() {}

func (b *otherBackend) Size() (int, int, error) {
	w, h, err := term.GetSize(b.outFd)
	if err != nil {
		return 0, 0, errors.Wrap(err, "get size")
	}
	return w, h, nil
}

func (b *otherBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func resetTerminalMode() {}
