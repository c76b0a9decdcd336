// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package server

import (
	"context"
	"time"

	"golang.org/x/sys/unix"
)

// frameInterval is the fixed tick period the event loop wakes up at
// when no wire-protocol event is pending, standing in for the real
// compositor's vblank-driven frame callback (spec.md §1's external
// renderer/backend collaborator).
const frameInterval = 16 * time.Millisecond

// wakeup is a self-pipe the event loop polls alongside the (out of
// scope) wire-protocol display file descriptor, so any goroutine can
// nudge the loop into running a frame immediately instead of waiting
// out the rest of frameInterval. Grounded on the teacher's own
// app/internal/window/os_wayland.go event loop, which multiplexes its
// wire-protocol display fd against an identical O_NONBLOCK|O_CLOEXEC
// pipe2 self-pipe via syscall.Poll.
type wakeup struct {
	read, write int
}

func newWakeup() (*wakeup, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}
	return &wakeup{read: fds[0], write: fds[1]}, nil
}

func (w *wakeup) signal() {
	var b [1]byte
	_, _ = unix.Write(w.write, b[:])
}

func (w *wakeup) drain() {
	var buf [64]byte
	for {
		n, err := unix.Read(w.read, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

func (w *wakeup) close() {
	_ = unix.Close(w.read)
	_ = unix.Close(w.write)
}

// Run drives the frame clock until ctx is canceled: each iteration
// polls the self-pipe for up to frameInterval, then always ticks and
// draws one frame (spec.md §5: "implemented by short per-frame ticks
// ... not by awaiting"). A real build additionally polls the
// wire-protocol display fd in the same pollfd slice so client requests
// and frame ticks interleave on one thread; that fd is the out-of-scope
// collaborator named in spec.md §1.
func (s *Server) Run(ctx context.Context) error {
	wk, err := newWakeup()
	if err != nil {
		return err
	}
	defer wk.close()

	go func() {
		<-ctx.Done()
		wk.signal()
	}()

	pollfds := []unix.PollFd{
		{Fd: int32(wk.read), Events: unix.POLLIN},
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		_, err := unix.Poll(pollfds, int(frameInterval/time.Millisecond))
		if err != nil && err != unix.EINTR {
			s.log.Error().Err(err).Str("component", "server").Msg("poll failed")
			return err
		}
		if pollfds[0].Revents&unix.POLLIN != 0 {
			wk.drain()
		}
		if ctx.Err() != nil {
			return nil
		}
		now := time.Now().UnixMilli()
		s.Tick(now)
		s.Frame()
	}
}
