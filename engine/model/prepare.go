package model

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Prepared is a mesh ready for upload: its packed layout and encoded vertex and index data.
type Prepared struct {
	Mesh     *Mesh
	Layout   layout.VertexLayout
	Vertices []byte
	Indices  []byte
}

// IndexCount returns the number of uint32 indices.
func (p Prepared) IndexCount() uint32 {
	return uint32(len(p.Indices) / 4)
}

// Prepare validates, packs and interleaves each mesh on a worker pool. Results keep the order
// of meshes. When any mesh fails the first failure in input order is returned.
//
// Parameters:
//   - meshes: the meshes to prepare
//   - workers: maximum concurrent workers; values below 1 mean one
//
// Returns:
//   - []Prepared: one entry per mesh
//   - error: the first preparation error
func Prepare(meshes []*Mesh, workers int) ([]Prepared, error) {
	if len(meshes) == 0 {
		return nil, nil
	}
	workers = common.Clamp(workers, 1, len(meshes))

	pool := worker.NewDynamicWorkerPool(workers, len(meshes), time.Second)
	defer pool.Stop()

	out := make([]Prepared, len(meshes))
	errs := make([]error, len(meshes))

	// pool.Wait only returns once workers exit, so a WaitGroup is the barrier here.
	var wg sync.WaitGroup
	for i, m := range meshes {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: m,
			Do: func() (any, error) {
				defer wg.Done()
				out[i], errs[i] = prepareOne(m)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to prepare mesh %d: %w", i, err)
		}
	}
	common.Logger().Debug("meshes prepared", "count", len(out), "workers", workers)
	return out, nil
}

func prepareOne(m *Mesh) (Prepared, error) {
	if m == nil {
		return Prepared{}, ErrMissingPosition
	}
	if err := m.Validate(); err != nil {
		return Prepared{}, err
	}
	vl, err := m.Layout()
	if err != nil {
		return Prepared{}, err
	}
	vertices, err := m.Interleave(vl)
	if err != nil {
		return Prepared{}, err
	}
	return Prepared{
		Mesh:     m,
		Layout:   vl,
		Vertices: vertices,
		Indices:  m.IndexBytes(),
	}, nil
}
