package store

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/san-kum/gamesim/internal/experiment"
)

// Track is the path of one entity through a run.
type Track struct {
	Entity   uint64    `json:"entity"`
	Template string    `json:"template"`
	Times    []float64 `json:"times"`
	X        []float64 `json:"x"`
	Y        []float64 `json:"y"`
}

type ExportData struct {
	RunMetadata
	Tracks []Track `json:"tracks"`
}

// Tracks groups samples by entity, ordered by entity id.
func Tracks(samples []experiment.Sample) []Track {
	byID := make(map[uint64]*Track)
	ids := make([]uint64, 0)
	for _, smp := range samples {
		tr, ok := byID[smp.Entity]
		if !ok {
			tr = &Track{Entity: smp.Entity, Template: smp.Template}
			byID[smp.Entity] = tr
			ids = append(ids, smp.Entity)
		}
		tr.Times = append(tr.Times, smp.Time)
		tr.X = append(tr.X, smp.X)
		tr.Y = append(tr.Y, smp.Y)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Track, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byID[id])
	}
	return out
}

// ExportTo writes a stored run as a single JSON document.
func (s *Store) ExportTo(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Tracks: Tracks(samples)})
}

// ExportJSON writes a stored run to path.
func (s *Store) ExportJSON(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer file.Close()
	return s.ExportTo(file, runID)
}
