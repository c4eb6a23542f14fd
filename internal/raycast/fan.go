package raycast

import "golang.org/x/sync/errgroup"

// Ray is one column of the view: its absolute angle, unit direction and result.
type Ray struct {
	Angle     float64
	Direction Vec2
	Hit
}

// FanCaster fills in the Hit of every ray in a frame. All rays share origin;
// Angle and Direction are already set.
type FanCaster interface {
	CastFan(origin Vec2, rays []Ray) error
	Name() string
}

// RayAngle returns the angle of ray i of n spread evenly across fov and
// centred on heading. The first and last rays sit on the edges of the view.
func RayAngle(heading, fov float64, i, n int) float64 {
	if n <= 1 {
		return heading
	}
	return heading - fov/2 + float64(i)*fov/float64(n-1)
}

type cpuFan struct {
	caster  Caster
	workers int
}

// NewCPUFan casts with c, splitting the fan into contiguous bands over up to
// workers goroutines. workers <= 1 casts serially on the calling goroutine.
func NewCPUFan(c Caster, workers int) FanCaster {
	if workers < 1 {
		workers = 1
	}
	return &cpuFan{caster: c, workers: workers}
}

func (f *cpuFan) Name() string {
	if f.workers > 1 {
		return "cpu-parallel"
	}
	return "cpu"
}

func (f *cpuFan) CastFan(origin Vec2, rays []Ray) error {
	if f.workers <= 1 || len(rays) < 2*f.workers {
		castBand(f.caster, origin, rays)
		return nil
	}
	var eg errgroup.Group
	eg.SetLimit(f.workers)
	band := (len(rays) + f.workers - 1) / f.workers
	for start := 0; start < len(rays); start += band {
		part := rays[start:min(start+band, len(rays))]
		eg.Go(func() error {
			castBand(f.caster, origin, part)
			return nil
		})
	}
	return eg.Wait()
}

func castBand(c Caster, origin Vec2, rays []Ray) {
	for i := range rays {
		rays[i].Hit = c.Cast(origin, rays[i].Direction)
	}
}
