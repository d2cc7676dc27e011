package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/san-kum/gamesim/internal/behavior"
	"github.com/san-kum/gamesim/internal/config"
	"github.com/san-kum/gamesim/internal/experiment"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var ErrRunNotFound = eris.New("store: run not found")

var trajectoryHeader = []string{"frame", "time", "entity", "template", "x", "y"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	FixedStep float64            `json:"fixed_step"`
	MaxDelta  float64            `json:"max_delta"`
	FPS       int                `json:"fps"`
	Duration  float64            `json:"duration"`
	Frames    uint64             `json:"frames"`
	Steps     uint64             `json:"steps"`
	Entities  int                `json:"entities"`
	Metrics   map[string]float64 `json:"metrics"`
	Score     behavior.Score     `json:"score"`
}

// Save writes a run directory with metadata.json and trajectory.csv and
// returns the run id.
func (s *Store) Save(cfg *config.Config, res *experiment.Result) (string, error) {
	name := res.Scenario
	if name == "" {
		name = "scenario"
	}
	ts := s.now()

	runID, runDir, err := s.createRunDir(fmt.Sprintf("%s_%d", name, ts.Unix()))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  name,
		Timestamp: ts,
		FixedStep: cfg.FixedStep,
		MaxDelta:  cfg.MaxDelta,
		FPS:       res.FPS,
		Duration:  res.Duration,
		Frames:    res.Frames,
		Steps:     res.Steps,
		Entities:  len(res.Final()),
		Metrics:   res.Metrics,
		Score:     res.Score,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), res.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// createRunDir creates base, or base_N when base is taken.
func (s *Store) createRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", eris.Wrap(err, "create data dir")
	}
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", eris.Wrapf(err, "create run dir %s", id)
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, samples []experiment.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatUint(smp.Frame, 10),
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatUint(smp.Entity, 10),
			smp.Template,
			strconv.FormatFloat(smp.X, 'f', 6, 64),
			strconv.FormatFloat(smp.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrRunNotFound, "%s", runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, eris.Wrapf(err, "decode metadata of %s", runID)
	}
	return &meta, nil
}

// LoadTrajectory reads every sample of a run. Rows that do not parse are
// skipped.
func (s *Store) LoadTrajectory(runID string) ([]experiment.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrRunNotFound, "%s", runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "read trajectory of %s", runID)
	}
	if len(records) < 2 {
		return []experiment.Sample{}, nil
	}

	samples := make([]experiment.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		smp, ok := parseSample(record)
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(record []string) (experiment.Sample, bool) {
	if len(record) != len(trajectoryHeader) {
		return experiment.Sample{}, false
	}
	frame, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return experiment.Sample{}, false
	}
	t, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return experiment.Sample{}, false
	}
	id, err := strconv.ParseUint(record[2], 10, 64)
	if err != nil {
		return experiment.Sample{}, false
	}
	x, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return experiment.Sample{}, false
	}
	y, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return experiment.Sample{}, false
	}
	return experiment.Sample{Frame: frame, Time: t, Entity: id, Template: record[3], X: x, Y: y}, true
}
