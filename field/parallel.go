package field

import (
	"image/color"
	"runtime"
	"sync"

	"github.com/pthm-cable/voronoi/metric"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/viewport"
)

// parallelThreshold is the minimum pixel*seed work to use the worker pool.
// Below this, single-threaded is faster due to dispatch overhead.
const parallelThreshold = 64 * 1024

// seedSnapshot captures read-only seed state for one evaluation.
type seedSnapshot struct {
	X, Y  float64
	Color color.RGBA
}

// workerScratch holds per-worker reusable buffers.
type workerScratch struct {
	rowTerm []float64 // |dy|^p per seed for the current row
}

// workChunk is a range of raster rows for one worker.
type workChunk struct {
	start, end int
}

// Evaluator computes fields on a pool of worker goroutines.
// It is not safe for concurrent use; one Evaluate call runs at a time.
type Evaluator struct {
	raster *Raster

	// Per-call snapshot, read-only while workers run
	seeds   []seedSnapshot
	colTerm []float64 // |dx|^p laid out [x*len(seeds)+i]
	term    metric.Term
	mode    Mode
	vp      viewport.Viewport

	// Worker pool
	numWorkers int
	scratches  []workerScratch
	workChan   chan workChunk // sends work to workers
	doneChan   chan struct{}  // workers signal completion
	stopChan   chan struct{}  // signals workers to exit
	wg         sync.WaitGroup
	running    bool
}

// NewEvaluator creates an evaluator with the given worker count.
// workers <= 0 uses GOMAXPROCS.
func NewEvaluator(workers int) *Evaluator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Evaluator{
		numWorkers: workers,
		scratches:  make([]workerScratch, workers),
	}
}

// Workers returns the pool size.
func (e *Evaluator) Workers() int {
	return e.numWorkers
}

// Evaluate computes the field for pts. The returned raster is owned by the
// evaluator and stays valid until the next call.
func (e *Evaluator) Evaluate(pts []points.Point, s Settings, width, height int) *Raster {
	width, height = max(width, 0), max(height, 0)
	if !e.raster.sized(width, height) {
		e.raster = NewRaster(width, height)
	}
	r := e.raster

	if len(pts) == 0 || width == 0 || height == 0 {
		r.Clear()
		return r
	}

	// Phase A: snapshot seeds and precompute column terms (single-threaded)
	e.snapshot(pts, s, width, height)

	// Phase B: rows, serial or on the pool depending on size
	if width*height*len(pts) < parallelThreshold || e.numWorkers == 1 {
		e.computeRows(0, height, &e.scratches[0])
	} else {
		e.computeParallel(height)
	}
	return r
}

func (e *Evaluator) snapshot(pts []points.Point, s Settings, width, height int) {
	n := len(pts)
	e.term = metric.TermFor(s.P())
	e.mode = s.Mode
	e.vp = viewport.New(width, height)

	if cap(e.seeds) < n {
		e.seeds = make([]seedSnapshot, n)
	}
	e.seeds = e.seeds[:n]
	for i, p := range pts {
		r, g, b := p.Color.RGB255()
		e.seeds[i] = seedSnapshot{
			X:     float64(p.Pos.X()),
			Y:     float64(p.Pos.Y()),
			Color: color.RGBA{R: r, G: g, B: b, A: 255},
		}
	}

	if cap(e.colTerm) < width*n {
		e.colTerm = make([]float64, width*n)
	}
	e.colTerm = e.colTerm[:width*n]
	for x := 0; x < width; x++ {
		lx, _ := e.vp.RasterToLogical(x, 0)
		row := e.colTerm[x*n : (x+1)*n]
		for i := range e.seeds {
			row[i] = e.term(float64(lx) - e.seeds[i].X)
		}
	}
}

// computeRows evaluates raster rows [y0, y1).
func (e *Evaluator) computeRows(y0, y1 int, scratch *workerScratch) {
	n := len(e.seeds)
	if cap(scratch.rowTerm) < n {
		scratch.rowTerm = make([]float64, n)
	}
	rowTerm := scratch.rowTerm[:n]
	width := e.raster.Width
	farthest := e.mode == Farthest

	for y := y0; y < y1; y++ {
		_, ly := e.vp.RasterToLogical(0, y)
		for i := range e.seeds {
			rowTerm[i] = e.term(float64(ly) - e.seeds[i].Y)
		}

		base := y * width
		for x := 0; x < width; x++ {
			col := e.colTerm[x*n : (x+1)*n]
			best := 0
			bestRank := col[0] + rowTerm[0]
			for i := 1; i < n; i++ {
				r := col[i] + rowTerm[i]
				if farthest {
					if r > bestRank {
						best, bestRank = i, r
					}
				} else if r < bestRank {
					best, bestRank = i, r
				}
			}
			e.raster.Owner[base+x] = int32(best)
			e.raster.Pix[base+x] = e.seeds[best].Color
		}
	}
}

// computeParallel dispatches row chunks to the worker pool and waits.
func (e *Evaluator) computeParallel(height int) {
	if !e.running {
		e.startWorkers()
	}

	chunkSize := (height + e.numWorkers - 1) / e.numWorkers

	chunksDispatched := 0
	for w := 0; w < e.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, height)
		if start >= end {
			continue
		}
		e.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-e.doneChan
	}
}

// startWorkers launches persistent worker goroutines.
func (e *Evaluator) startWorkers() {
	if e.running {
		return
	}

	e.workChan = make(chan workChunk, e.numWorkers)
	e.doneChan = make(chan struct{}, e.numWorkers)
	e.stopChan = make(chan struct{})
	e.running = true

	for i := 0; i < e.numWorkers; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}
}

// worker processes chunks until stopped.
func (e *Evaluator) worker(id int) {
	defer e.wg.Done()
	scratch := &e.scratches[id]

	for {
		select {
		case <-e.stopChan:
			return
		case chunk, ok := <-e.workChan:
			if !ok {
				return
			}
			e.computeRows(chunk.start, chunk.end, scratch)
			e.doneChan <- struct{}{}
		}
	}
}

// Close stops the worker pool. The evaluator can still be used afterwards;
// the pool restarts on demand.
func (e *Evaluator) Close() {
	if !e.running {
		return
	}
	close(e.stopChan)
	e.wg.Wait()
	close(e.workChan)
	close(e.doneChan)
	e.running = false
}
