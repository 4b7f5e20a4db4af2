// Package texture fetches and decodes texture images off the render thread.
//
// Requests are fire-and-forget: workers read and decode files in the
// background and the render thread applies finished images by calling Pump
// once per frame. A request that fails is logged and dropped; its target
// keeps whatever it showed before.
package texture

import (
	"context"
	"image"
	"log"
	"path/filepath"
	"sync"

	"dungeon-viewer/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultMaxRequests = 32
	DefaultMaxFileSize = 10 * 1024 * 1024
	DefaultWorkers     = 4
)

// Target receives a decoded image. Upload is only called from Pump.
type Target interface {
	Upload(img *image.RGBA)
}

// Options configures a Loader. Zero values fall back to the defaults.
type Options struct {
	Dir         string
	Workers     int
	MaxRequests int
	MaxFileSize int64
}

type job struct {
	id   int
	path string
}

type result struct {
	id  int
	img *image.RGBA
	err error
}

type request struct {
	path    string
	targets []Target
	done    bool
	img     *image.RGBA
}

// Loader owns the request table and the fetch workers.
// Load, Pump and Pending must be called from the same goroutine.
type Loader struct {
	opts Options

	requests []*request
	byPath   map[string]int
	pending  int

	jobs    chan job
	results chan result

	tracer   trace.Tracer
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewLoader starts the fetch workers.
func NewLoader(opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.MaxRequests <= 0 {
		opts.MaxRequests = DefaultMaxRequests
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		opts:    opts,
		byPath:  make(map[string]int),
		jobs:    make(chan job, opts.MaxRequests),
		results: make(chan result, opts.MaxRequests),
		tracer:  telemetry.Tracer("texture"),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := range opts.Workers {
		l.wg.Add(1)
		go l.worker(i)
	}
	return l
}

// Load queues a fetch of name for target.
//
// Loading a name already requested attaches target to the existing request
// without fetching again. Once the request table is full new names are
// dropped and Load returns false.
func (l *Loader) Load(name string, target Target) bool {
	path := filepath.Join(l.opts.Dir, name)

	if id, ok := l.byPath[path]; ok {
		req := l.requests[id]
		if req.done {
			if req.img != nil {
				target.Upload(req.img)
			}
			return true
		}
		req.targets = append(req.targets, target)
		return true
	}

	if len(l.requests) >= l.opts.MaxRequests {
		return false
	}

	id := len(l.requests)
	l.requests = append(l.requests, &request{path: path, targets: []Target{target}})
	l.byPath[path] = id
	l.pending++

	// The queue holds MaxRequests jobs, so this never blocks.
	l.jobs <- job{id: id, path: path}
	return true
}

// Pump applies finished fetches to their targets without blocking.
// At most limit results are handled; limit <= 0 handles all that are ready.
// It returns the number of results handled.
func (l *Loader) Pump(limit int) int {
	handled := 0
	for limit <= 0 || handled < limit {
		select {
		case res := <-l.results:
			l.apply(res)
			handled++
		default:
			return handled
		}
	}
	return handled
}

func (l *Loader) apply(res result) {
	req := l.requests[res.id]
	req.done = true
	l.pending--

	if res.err != nil {
		log.Printf("texture %s skipped: %v", req.path, res.err)
		req.targets = nil
		return
	}

	req.img = res.img
	for _, t := range req.targets {
		t.Upload(res.img)
	}
	req.targets = nil
}

// Pending returns the number of requests still in flight.
func (l *Loader) Pending() int {
	return l.pending
}

// Requests returns the number of distinct files requested so far.
func (l *Loader) Requests() int {
	return len(l.requests)
}

// Shutdown stops the workers. Results not yet pumped are discarded.
func (l *Loader) Shutdown() {
	l.stopOnce.Do(func() {
		l.cancel()
		l.wg.Wait()
	})
}

func (l *Loader) worker(id int) {
	defer l.wg.Done()

	for {
		select {
		case j := <-l.jobs:
			res := l.fetch(j, id)
			select {
			case l.results <- res:
			case <-l.ctx.Done():
				return
			}
		case <-l.ctx.Done():
			return
		}
	}
}

func (l *Loader) fetch(j job, worker int) result {
	_, span := l.tracer.Start(l.ctx, "texture.fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("texture.path", j.path),
		attribute.Int("texture.worker", worker),
	)

	img, err := ReadImage(j.path, l.opts.MaxFileSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return result{id: j.id, err: err}
	}

	b := img.Bounds()
	span.SetAttributes(
		attribute.Int("texture.width", b.Dx()),
		attribute.Int("texture.height", b.Dy()),
	)
	return result{id: j.id, img: img}
}
