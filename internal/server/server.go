// SPDX-License-Identifier: Unlicense OR MIT

// Package server wires components A-I into the running compositor
// (spec.md component J): the view list, canvas, layer-shell output,
// drawing layer, switcher, and input router, plus the frame clock and
// the weak-reference scrubbing spec.md §4.B's Unmap and §4.G's
// "grabbed view destroyed" edge case require.
package server

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/config"
	"github.com/ThatOtherAndrew/Infinidesk/internal/drawing"
	"github.com/ThatOtherAndrew/Infinidesk/internal/edge"
	"github.com/ThatOtherAndrew/Infinidesk/internal/layershell"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/ThatOtherAndrew/Infinidesk/internal/router"
	"github.com/ThatOtherAndrew/Infinidesk/internal/switcher"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// Server owns every component's instance and the glue between them.
// The wire-protocol, seat, and GPU-context collaborators spec.md §1
// places out of scope are not present here; Backend stands in for the
// renderer, and view/output lifecycle methods are the hooks a real
// xdg_shell/wlr_layer_shell listener would call.
type Server struct {
	Output   *layershell.Output
	Views    *view.List
	Canvas   *canvas.Canvas
	Drawing  *drawing.Layer
	Switcher *switcher.Switcher
	Router   *router.Router
	Backend  render.Backend

	// CursorShape is called whenever the router selects a new cursor
	// image (spec.md §4.I); forwarding it to the seat's pointer surface
	// is the out-of-scope wire-protocol collaborator named in spec.md
	// §1, so this defaults to a no-op.
	CursorShape func(edge.CursorName)

	log zerolog.Logger
}

// New builds a Server for a single output of the given logical size,
// wired per spec.md §4: the canvas invalidates view scene positions,
// the view list notifies Backend-external activation, and the router's
// exec hook runs Server.Exec. The router's exit and scroll-forward
// hooks only log the request: exit does not stop Run, and the scroll is
// not delivered to any client.
func New(cfg *config.Config, keybinds []router.Keybind, backend render.Backend, log zerolog.Logger, outputW, outputH float32) *Server {
	s := &Server{
		Output:   layershell.NewOutput(outputW, outputH),
		Views:    view.NewList(),
		Canvas:   canvas.New(),
		Drawing:  drawing.NewLayer(),
		Switcher: switcher.New(),
		Backend:  backend,
		log:      log,
	}
	s.CursorShape = func(edge.CursorName) {}
	s.Canvas.Scale = 1
	s.Output.Rescale(cfg.Scale)

	s.Canvas.Invalidate = func() { s.Views.UpdateAllScenePositions(s.Canvas) }
	s.Views.OnActivate = func(v *view.View, focused bool) {
		s.log.Debug().Str("component", "view").Uint32("view", v.ID).Bool("focused", focused).Msg("activation changed")
	}

	r := router.New(s.Views, s.Canvas, s.Drawing, s.Switcher)
	r.Keybinds = keybinds
	r.OutputW, r.OutputH = outputW, outputH
	// spec.md §3 only fixes the panel's x; y is left to the server.
	r.Panel = drawing.PanelGeometry{X: drawing.PanelX, Y: drawing.PanelX}
	r.OnExit = func() { s.log.Info().Str("component", "server").Msg("exit requested") }
	r.OnExec = func(cmd string) { s.Exec(cmd) }
	r.OnForwardScroll = func(v *view.View, dx, dy float32) {
		s.log.Debug().Str("component", "router").Uint32("view", v.ID).Msg("scroll forwarded to client")
	}
	r.OnCursorShape = func(name edge.CursorName) { s.CursorShape(name) }
	s.Router = r

	return s
}

// CreateView registers a new toplevel and reports it unmapped, per
// spec.md §4.B "create"; the caller maps it once the client's first
// real commit produces content.
func (s *Server) CreateView(appID, title string) *view.View {
	v := s.Views.Create(appID, title)
	v.OnCloseRequested = func() {
		s.log.Info().Str("component", "view").Uint32("view", v.ID).Msg("close requested")
	}
	return v
}

// MapView positions and activates v at the output's usable-area
// center (spec.md §4.B "Map").
func (s *Server) MapView(v *view.View, w, h float32, nowMs int64) {
	center := s.Canvas.ScreenToCanvas(s.Output.GetUsableArea().Center())
	s.Views.Map(v, center, w, h, nowMs)
}

// DestroyView tears down v unconditionally (spec.md §3 "toplevel
// destroyed"), scrubbing every weak reference that might still point
// at it: the router's grabbed view and the switcher's selection.
func (s *Server) DestroyView(v *view.View) {
	s.Views.Unmap(v)
	s.Router.ViewDestroyed(v)
	if s.Switcher.Selected() == v {
		s.Switcher.Cancel()
	}
	s.Views.Destroy(v)
}

// Tick advances every per-frame animation clock: view focus/map
// animations, the viewport snap, and the router's scroll-pan idle
// timer (spec.md §5: "implemented by short per-frame ticks ... not by
// awaiting").
func (s *Server) Tick(nowMs int64) {
	s.Views.TickAnimations(nowMs)
	s.Canvas.SnapTick(nowMs)
	s.Router.Tick(nowMs)
}

// Frame draws one complete output frame via internal/render.
func (s *Server) Frame() {
	render.Frame(s.Backend, s.Output, s.Views, s.Canvas, s.Drawing, s.Switcher, s.Router.Panel)
}

// Exec forks and execs a shell command via /bin/sh -c, never waiting
// on it (spec.md §5's no-await concurrency model; spec.md §7's
// fork/exec error kind: "log from the child before _exit(EXIT_FAILURE)",
// which here is Start's own error return since this process doesn't
// fork a traditional child that logs on its own stderr before exit).
func (s *Server) Exec(cmd string) {
	c := exec.Command("/bin/sh", "-c", cmd)
	c.Stdout, c.Stderr = os.Stdout, os.Stderr
	if err := c.Start(); err != nil {
		s.log.Error().Err(err).Str("component", "exec").Str("cmd", cmd).Msg("fork/exec failed")
		return
	}
	go func() {
		if err := c.Wait(); err != nil {
			s.log.Warn().Err(err).Str("component", "exec").Str("cmd", cmd).Msg("child process exited with error")
		}
	}()
}

// RunStartup execs every --startup command in order (spec.md §6).
func (s *Server) RunStartup(cmds []string) {
	for _, cmd := range cmds {
		s.Exec(cmd)
	}
}

// PublishWaylandDisplay sets WAYLAND_DISPLAY for forked children
// (spec.md §6 "Environment"). The actual socket this name resolves to
// is created by the out-of-scope wire-protocol collaborator named in
// spec.md §1; this method only publishes the name once that
// collaborator reports it.
func (s *Server) PublishWaylandDisplay(socketName string) error {
	if err := os.Setenv("WAYLAND_DISPLAY", socketName); err != nil {
		return fmt.Errorf("server: publishing WAYLAND_DISPLAY: %w", err)
	}
	s.log.Info().Str("component", "server").Str("socket", socketName).Msg("published WAYLAND_DISPLAY")
	return nil
}
