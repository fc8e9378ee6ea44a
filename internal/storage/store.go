// Package storage persists simulation runs: a sqlite index for listing,
// plus per-run directories holding metadata.json, a zstd-compressed CSV
// trajectory, and a zstd-compressed JSONL contact event log.
package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"grasplab/internal/engine"
)

type Store struct {
	baseDir string
	db      *sql.DB
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the data directory and opens the run index.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(s.baseDir, "index.db"))
	if err != nil {
		return fmt.Errorf("open run index: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			label      TEXT NOT NULL,
			ts         INTEGER NOT NULL,
			dt         REAL NOT NULL,
			steps      INTEGER NOT NULL,
			integrator TEXT NOT NULL,
			controller TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return fmt.Errorf("create run index: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ContactEvent is one sampled contact with its simulation step and time.
type ContactEvent struct {
	Step    int            `json:"step"`
	Time    float64        `json:"time"`
	Contact engine.Contact `json:"contact"`
}

// Save writes one completed run and indexes it. Contacts may be nil.
func (s *Store) Save(label string, dt float64, integrator, controller string, result *engine.Result, contacts []ContactEvent) (string, error) {
	runID := label + "_" + uuid.NewString()[:8]
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Label:      label,
		Timestamp:  time.Now(),
		Dt:         dt,
		Steps:      result.StepsTaken,
		Integrator: integrator,
		Controller: controller,
		Metrics:    result.Metrics,
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeStates(runDir, result); err != nil {
		return "", err
	}
	if err := s.writeContacts(runDir, contacts); err != nil {
		return "", err
	}

	if s.db != nil {
		if _, err := s.db.Exec(
			`INSERT INTO runs (id, label, ts, dt, steps, integrator, controller) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			meta.ID, meta.Label, meta.Timestamp.Unix(), meta.Dt, meta.Steps, meta.Integrator, meta.Controller,
		); err != nil {
			return "", fmt.Errorf("index run: %w", err)
		}
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeStates(runDir string, result *engine.Result) error {
	f, err := os.Create(filepath.Join(runDir, "states.csv.zst"))
	if err != nil {
		return err
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}

	w := csv.NewWriter(zw)

	if len(result.States) == 0 {
		return zw.Close()
	}

	header := []string{"time"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	numControls := 0
	if len(result.Controls) > 0 {
		numControls = len(result.Controls[0])
		for i := 0; i < numControls; i++ {
			header = append(header, fmt.Sprintf("u%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		zw.Close()
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if i < len(result.Controls) {
			for _, val := range result.Controls[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		} else {
			for j := 0; j < numControls; j++ {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			zw.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func (s *Store) writeContacts(runDir string, contacts []ContactEvent) error {
	if len(contacts) == 0 {
		return nil
	}

	f, err := os.Create(filepath.Join(runDir, "contacts.jsonl.zst"))
	if err != nil {
		return err
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(zw)
	for _, c := range contacts {
		if err := enc.Encode(c); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

// List returns indexed runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}

	rows, err := s.db.Query(
		`SELECT id, label, ts, dt, steps, integrator, controller FROM runs ORDER BY ts DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var meta RunMetadata
		var ts int64
		if err := rows.Scan(&meta.ID, &meta.Label, &ts, &meta.Dt, &meta.Steps,
			&meta.Integrator, &meta.Controller); err != nil {
			return nil, err
		}
		meta.Timestamp = time.Unix(ts, 0)
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// Load reads a run's full metadata, including metrics.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back the trajectory: states (with any control columns)
// and times.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv.zst"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, nil, err
	}
	defer zr.Close()

	r := csv.NewReader(zr)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		state := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		times = append(times, t)
		states = append(states, state)
	}
	return states, times, nil
}

// LoadContacts reads back the contact event log; a missing log is an
// empty one.
func (s *Store) LoadContacts(runID string) ([]ContactEvent, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "contacts.jsonl.zst"))
	if err != nil {
		if os.IsNotExist(err) {
			return []ContactEvent{}, nil
		}
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	dec := json.NewDecoder(zr)
	events := make([]ContactEvent, 0)
	for dec.More() {
		var ev ContactEvent
		if err := dec.Decode(&ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
