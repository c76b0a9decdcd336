// SPDX-License-Identifier: Unlicense OR MIT

package main

import "github.com/ThatOtherAndrew/Infinidesk/internal/render"

// stubBackend is a placeholder render.Backend. The real GPU/EGL
// context this compositor would draw through is the external
// collaborator spec.md §1 explicitly places out of scope; this type
// only exists so cmd/infinidesk links and runs its event loop, and is
// the single point a real backend implementation replaces.
type stubBackend struct{}

func newRenderBackend() (render.Backend, error) {
	return stubBackend{}, nil
}

func (stubBackend) BeginFrame(physicalW, physicalH int) {}
func (stubBackend) AddRect(render.Rect)                {}
func (stubBackend) AddTexture(render.Texture)           {}
func (stubBackend) EndFrame()                           {}
