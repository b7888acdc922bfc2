// Package viewer implements the rig viewer's main loop.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-rig/internal/config"
	"github.com/Faultbox/midgard-rig/internal/engine/animator"
	"github.com/Faultbox/midgard-rig/internal/engine/camera"
	"github.com/Faultbox/midgard-rig/internal/engine/debug"
	"github.com/Faultbox/midgard-rig/internal/engine/input"
	"github.com/Faultbox/midgard-rig/internal/engine/lighting"
	"github.com/Faultbox/midgard-rig/internal/engine/renderer"
	"github.com/Faultbox/midgard-rig/internal/engine/skeleton"
	"github.com/Faultbox/midgard-rig/internal/engine/window"
	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/pkg/formats"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// evaluationRate is how many poses per second the animator computes.
const evaluationRate = 120

var (
	boneColor   = math.Vec3{X: 1, Y: 0.85, Z: 0.2}
	boundsColor = math.Vec3{X: 0.3, Y: 0.6, Z: 1}
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	model     *skeleton.Model
	meshes    []*renderer.GPUMesh
	lights    *lighting.Set
	camera    *camera.FramingCamera
	palette   *skeleton.Palette
	animator  *animator.Animator
	showBones bool

	bounds     []math.Vec3
	screenshot *debug.ScreenshotCapture
	capture    bool

	log *zap.Logger
}

// New loads the configured rig and creates the window and renderer.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:       cfg,
		palette:   &skeleton.Palette{},
		showBones: cfg.Animation.ShowBones,
		log:       logger.Named("viewer"),
	}

	// Load the model first so a bad file fails before any window appears
	var err error
	v.model, err = loadModel(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Animation.Paused {
		v.model.Clock.Pause()
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.GetDrawableSize()
	v.renderer, err = renderer.New(width, height)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	for i := range v.model.Meshes {
		gm, err := renderer.Upload(&v.model.Meshes[i])
		if err != nil {
			v.log.Warn("mesh skipped", zap.String("mesh", v.model.Meshes[i].Name), zap.Error(err))
			continue
		}
		v.meshes = append(v.meshes, gm)
	}

	v.lights = lighting.FromConfig(cfg.Lighting)
	v.camera = camera.NewFramingCamera()
	lo, hi := modelBounds(v.model)
	v.camera.FitToBounds(lo, hi)
	v.bounds = debug.BoxLines(lo, hi, 0.05*hi.Distance(lo))
	v.screenshot = debug.NewScreenshotCapture(cfg.Capture.Dir, cfg.Capture.Prefix, cfg.Capture.Format)
	v.input = input.New()
	v.animator = animator.NewAnimator(v.model, v.palette, evaluationRate)
	// Load already evaluated the first pose; publish it before the animator
	// goroutine owns the model.
	v.palette.Publish(v.model.Bones.Finals())

	v.log.Info("viewer initialized",
		zap.String("rig", v.model.Name),
		zap.Int("meshes", len(v.meshes)),
		zap.Int("bones", v.model.Bones.Count()),
	)
	return v, nil
}

func loadModel(cfg *config.Config) (*skeleton.Model, error) {
	opts := skeleton.LoadOptions{
		Speed:          cfg.Animation.Speed,
		TicksPerSecond: cfg.Animation.DefaultTicksPerSecond,
	}
	if cfg.Data.RigPath == "" {
		return skeleton.Load(formats.NewTubeRig(formats.DefaultTubeRigOptions()), opts)
	}
	return skeleton.LoadFile(cfg.Data.RigPath, opts)
}

// modelBounds returns the bind-pose bounds of every mesh, in the space the
// bone transforms map into.
func modelBounds(m *skeleton.Model) (math.Vec3, math.Vec3) {
	var points []math.Vec3
	for i := range m.Meshes {
		points = append(points, m.Meshes[i].Positions...)
	}
	if len(points) == 0 {
		return math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return camera.Bounds(points)
}

// Run evaluates animation on a worker goroutine and renders on the calling
// goroutine, which must be the one that created the window.
func (v *Viewer) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return v.animator.Run(ctx)
	})

	err := v.loop(ctx)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}

func (v *Viewer) loop(ctx context.Context) error {
	// Timing
	frameCount := 0
	fpsTimer := time.Now()

	var finals []math.Mat4
	var segments []math.Vec3

	v.log.Info("starting render loop")
	v.renderer.SetLights(v.lights)

	for {
		if ctx.Err() != nil {
			return nil
		}

		// 1. Process input
		if v.input.Update() {
			return nil
		}
		for _, event := range v.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				v.renderer.Resize(v.window.GetDrawableSize())
			case input.EventAction:
				v.handleAction(event.Action)
			}
		}

		// 2. Latest pose from the animator
		var frame uint64
		finals, frame = v.palette.Snapshot(finals)

		// 3. Render
		f := renderer.Frame{
			View:       v.camera.ViewMatrix(),
			Projection: v.camera.ProjectionMatrix(v.renderer.Aspect()),
			ViewPos:    v.camera.Position(),
		}
		if v.lights.SpotEnabled {
			v.lights.AttachSpot(f.ViewPos, v.camera.Forward())
			v.renderer.SetLights(v.lights)
		}

		v.renderer.Begin()
		for _, m := range v.meshes {
			v.renderer.DrawMesh(f, m, finals, v.model.Animated)
		}
		if v.showBones {
			segments = v.model.BoneSegments(finals, segments)
			v.renderer.DrawLines(f, segments, boneColor)
			v.renderer.DrawLines(f, v.bounds, boundsColor)
		}
		v.renderer.End()

		if v.capture {
			v.capture = false
			v.saveScreenshot()
		}

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetStatus(fmt.Sprintf("%s | %d fps", v.model.Name, frameCount))
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Uint64("pose", frame))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (v *Viewer) handleAction(a input.Action) {
	switch a {
	case input.ActionTogglePause:
		v.animator.Send(animator.CmdTogglePause)
	case input.ActionRestart:
		v.animator.Send(animator.CmdRestart)
	case input.ActionFaster:
		v.animator.Send(animator.CmdFaster)
	case input.ActionSlower:
		v.animator.Send(animator.CmdSlower)
	case input.ActionToggleBones:
		v.showBones = !v.showBones
	case input.ActionScreenshot:
		v.capture = true
	}
}

func (v *Viewer) saveScreenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	name, err := v.screenshot.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", name))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	for _, m := range v.meshes {
		m.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
