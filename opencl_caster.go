//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"mazecast/internal/raycast"
)

// openCLFan marches every ray of a frame in parallel on an OpenCL device. It
// follows the same step schedule as raycast.Marcher, in float32, and reports
// the index of the stopping step so the host can confirm it in float64.
type openCLFan struct {
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel
	dirXBuf *cl.MemObject
	dirYBuf *cl.MemObject
	cellBuf *cl.MemObject
	stopBuf *cl.MemObject

	grid        *raycast.Grid
	step        float64
	maxDistance float64
	rayCount    int
	fingerprint uint64
	synced      uint64
	cells       []int32
	dirX        []float32
	dirY        []float32
	stops       []int32
	deviceName  string
}

const marchKernelSource = `__kernel void march_rays(
    const int width,
    const int height,
    const float tile_size,
    const float step,
    const float max_distance,
    const float origin_x,
    const float origin_y,
    const int ray_count,
    __global const float* dir_x,
    __global const float* dir_y,
    __global const int* cells,
    __global int* stops)
{
    int i = get_global_id(0);
    if (i >= ray_count) {
        return;
    }
    float dx = dir_x[i];
    float dy = dir_y[i];
    for (int k = 1; ; k++) {
        float t = (float)k * step;
        if (t > max_distance) {
            stops[i] = -1;
            return;
        }
        int col = (int)floor((origin_x + dx * t) / tile_size);
        int row = (int)floor((origin_y + dy * t) / tile_size);
        if (col < 0 || col >= width || row < 0 || row >= height || cells[row * width + col] != 0) {
            stops[i] = k;
            return;
        }
    }
}`

func newOpenCLFan(grid *raycast.Grid, cfg raycast.Config) (*openCLFan, error) {
	if cfg.Caster != raycast.CasterMarch {
		return nil, fmt.Errorf("OpenCL fan only supports the %q caster, not %q", raycast.CasterMarch, cfg.Caster)
	}
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	f := &openCLFan{
		grid:        grid,
		step:        cfg.StepSize,
		maxDistance: cfg.MaxDistance,
		rayCount:    cfg.RayCount,
		fingerprint: grid.Fingerprint(),
		cells:       grid.AppendCells(nil),
		dirX:        make([]float32, cfg.RayCount),
		dirY:        make([]float32, cfg.RayCount),
		stops:       make([]int32, cfg.RayCount),
		deviceName:  device.Name(),
	}
	if f.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if f.queue, err = f.context.CreateCommandQueue(device, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if f.program, err = f.context.CreateProgramWithSource([]string{marchKernelSource}); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := f.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		f.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if f.kernel, err = f.program.CreateKernel("march_rays"); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	floatBytes := cfg.RayCount * int(unsafe.Sizeof(float32(0)))
	if f.dirXBuf, err = f.context.CreateEmptyBuffer(cl.MemReadOnly, floatBytes); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating direction buffer: %w", err)
	}
	if f.dirYBuf, err = f.context.CreateEmptyBuffer(cl.MemReadOnly, floatBytes); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating direction buffer: %w", err)
	}
	if f.stopBuf, err = f.context.CreateEmptyBuffer(cl.MemWriteOnly, cfg.RayCount*int(unsafe.Sizeof(int32(0)))); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating stop buffer: %w", err)
	}
	cellBytes := len(f.cells) * int(unsafe.Sizeof(int32(0)))
	if f.cellBuf, err = f.context.CreateEmptyBuffer(cl.MemReadOnly, cellBytes); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating cell buffer: %w", err)
	}

	if err := f.setArgs(raycast.Vec2{}); err != nil {
		f.Close()
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}
	return f, nil
}

// setArgs binds every kernel argument; only the origin changes between frames.
func (f *openCLFan) setArgs(origin raycast.Vec2) error {
	return f.kernel.SetArgs(
		int32(f.grid.Width()),
		int32(f.grid.Height()),
		float32(f.grid.TileSize()),
		float32(f.step),
		float32(f.maxDistance),
		float32(origin.X),
		float32(origin.Y),
		int32(f.rayCount),
		f.dirXBuf,
		f.dirYBuf,
		f.cellBuf,
		f.stopBuf,
	)
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

func (f *openCLFan) Name() string { return "opencl" }

func (f *openCLFan) DeviceName() string { return f.deviceName }

// syncCells uploads the grid once; the grid never changes after that.
func (f *openCLFan) syncCells() error {
	if f.synced == f.fingerprint {
		return nil
	}
	byteLen := len(f.cells) * int(unsafe.Sizeof(int32(0)))
	if _, err := f.queue.EnqueueWriteBuffer(f.cellBuf, true, 0, byteLen, unsafe.Pointer(&f.cells[0]), nil); err != nil {
		return fmt.Errorf("writing cell buffer: %w", err)
	}
	f.synced = f.fingerprint
	return nil
}

// CastFan implements raycast.FanCaster.
func (f *openCLFan) CastFan(origin raycast.Vec2, rays []raycast.Ray) error {
	if len(rays) != f.rayCount {
		return fmt.Errorf("OpenCL fan sized for %d rays, got %d", f.rayCount, len(rays))
	}
	if err := f.syncCells(); err != nil {
		return err
	}
	for i := range rays {
		f.dirX[i] = float32(rays[i].Direction.X)
		f.dirY[i] = float32(rays[i].Direction.Y)
	}
	if _, err := f.queue.EnqueueWriteBufferFloat32(f.dirXBuf, false, 0, f.dirX, nil); err != nil {
		return fmt.Errorf("writing direction buffer: %w", err)
	}
	if _, err := f.queue.EnqueueWriteBufferFloat32(f.dirYBuf, false, 0, f.dirY, nil); err != nil {
		return fmt.Errorf("writing direction buffer: %w", err)
	}
	if err := f.setArgs(origin); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := f.queue.EnqueueNDRangeKernel(f.kernel, nil, []int{f.rayCount}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	byteLen := len(f.stops) * int(unsafe.Sizeof(int32(0)))
	if _, err := f.queue.EnqueueReadBuffer(f.stopBuf, true, 0, byteLen, unsafe.Pointer(&f.stops[0]), nil); err != nil {
		return fmt.Errorf("reading stop indices: %w", err)
	}

	for i := range rays {
		rays[i].Hit = raycast.ResumeMarch(f.grid, origin, rays[i].Direction, int(f.stops[i]), f.step, f.maxDistance)
	}
	return nil
}

func (f *openCLFan) Close() {
	if f.stopBuf != nil {
		f.stopBuf.Release()
		f.stopBuf = nil
	}
	if f.cellBuf != nil {
		f.cellBuf.Release()
		f.cellBuf = nil
	}
	if f.dirYBuf != nil {
		f.dirYBuf.Release()
		f.dirYBuf = nil
	}
	if f.dirXBuf != nil {
		f.dirXBuf.Release()
		f.dirXBuf = nil
	}
	if f.kernel != nil {
		f.kernel.Release()
		f.kernel = nil
	}
	if f.program != nil {
		f.program.Release()
		f.program = nil
	}
	if f.queue != nil {
		f.queue.Release()
		f.queue = nil
	}
	if f.context != nil {
		f.context.Release()
		f.context = nil
	}
}
