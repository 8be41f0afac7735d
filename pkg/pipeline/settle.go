package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/observability"
	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
)

// BuildScene constructs a scene for the given graph and options, letting the
// force simulation place nodes from their initial ring positions.
func BuildScene(g graph.Graph, opts Options) (*forcegraph.Scene, error) {
	theme, ok := forcegraph.ThemeByName(opts.Theme)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", opts.Theme)
	}
	if opts.Particles && !theme.Particles.Enabled {
		theme.Particles = forcegraph.ParticleStyle{
			Enabled: true,
			Count:   60,
			Color:   forcegraph.RGB(200, 205, 220),
			SizeMin: 0.5,
			SizeMax: 1.8,
			Speed:   0.15,
			Opacity: 0.35,
		}
	}

	sceneOpts := []forcegraph.SceneOption{
		forcegraph.WithTheme(theme),
		forcegraph.WithPhysicsParams(opts.Physics),
	}
	if len(opts.ClusterColors) > 0 {
		sceneOpts = append(sceneOpts, forcegraph.WithClusterColors(opts.ClusterColors))
	}

	scene := forcegraph.NewScene(&g, float64(opts.Width), float64(opts.Height), sceneOpts...)
	applyView(scene, opts)
	return scene, nil
}

// applyView positions the camera: zoom about the frame center, then pan.
func applyView(scene *forcegraph.Scene, opts Options) {
	w := float64(opts.Width)
	h := float64(opts.Height)
	scene.Transform = forcegraph.Transform{
		X: opts.PanX + (1-opts.Zoom)*w/2,
		Y: opts.PanY + (1-opts.Zoom)*h/2,
		K: opts.Zoom,
	}
}

// Settle advances the simulation for the configured number of steps. The
// context is checked between steps so a cancelled request stops settling
// instead of running to completion. Every OnSettleStart is paired with an
// OnSettleComplete carrying the steps actually run, cancelled or not.
func Settle(ctx context.Context, scene *forcegraph.Scene, steps int) error {
	hooks := observability.Pipeline()
	hooks.OnSettleStart(ctx, scene.Graph.Len(), steps)
	start := time.Now()

	done := 0
	for ; done < steps; done++ {
		if err := ctx.Err(); err != nil {
			hooks.OnSettleComplete(ctx, done, time.Since(start))
			return err
		}
		scene.Step(SettleStep)
	}

	hooks.OnSettleComplete(ctx, done, time.Since(start))
	return nil
}
