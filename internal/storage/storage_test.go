package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grasplab/internal/engine"
)

func testResult() *engine.Result {
	return &engine.Result{
		States: []engine.State{
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0.01, -0.001, 0.001, 0, 0.1, -0.01, 0.01, 0},
			{0.02, -0.002, 0.002, 0.001, 0.1, -0.01, 0.01, 0.05},
		},
		Controls: []engine.Control{
			{-0.0115, 0.0115, 0.07},
			{-0.0115, 0.0115, 0.07},
		},
		Times:      []float64{0, 0.002, 0.004},
		Metrics:    map[string]float64{"lift_height": 0.083, "contact_time": 0.5},
		StepsTaken: 2,
	}
}

func testContacts() []ContactEvent {
	return []ContactEvent{
		{
			Step: 100,
			Time: 0.2,
			Contact: engine.Contact{
				Geom1:    "table_collision",
				Geom2:    "box_g0",
				Normal:   [3]float64{0, 0, 1},
				Friction: [3]float64{1, 0.005, 0.0001},
				Depth:    0.0016,
				Force:    0.63,
			},
		},
		{
			Step: 200,
			Time: 0.4,
			Contact: engine.Contact{
				Geom1:    "finger_l_pad",
				Geom2:    "box_g0",
				Normal:   [3]float64{1, 0, 0},
				Friction: [3]float64{1, 0.005, 0.0001},
				Depth:    0.002,
				Force:    0.8,
			},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveAndLoad(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Save("grasp", 0.002, "semi_implicit", "grasp_cycle", testResult(), testContacts())
	require.NoError(t, err)
	assert.Contains(t, id, "grasp_")

	meta, err := st.Load(id)
	require.NoError(t, err)
	assert.Equal(t, id, meta.ID)
	assert.Equal(t, "grasp", meta.Label)
	assert.Equal(t, 0.002, meta.Dt)
	assert.Equal(t, 2, meta.Steps)
	assert.Equal(t, "semi_implicit", meta.Integrator)
	assert.Equal(t, "grasp_cycle", meta.Controller)
	assert.InDelta(t, 0.083, meta.Metrics["lift_height"], 1e-12)
}

func TestList(t *testing.T) {
	st := newTestStore(t)

	idA, err := st.Save("first", 0.002, "rk4", "hold", testResult(), nil)
	require.NoError(t, err)
	idB, err := st.Save("second", 0.001, "euler", "none", testResult(), nil)
	require.NoError(t, err)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, idA)
	assert.Contains(t, ids, idB)
}

func TestLoadStates(t *testing.T) {
	st := newTestStore(t)

	result := testResult()
	id, err := st.Save("traj", 0.002, "semi_implicit", "grasp_cycle", result, nil)
	require.NoError(t, err)

	states, times, err := st.LoadStates(id)
	require.NoError(t, err)
	require.Len(t, states, len(result.States))
	require.Len(t, times, len(result.Times))

	assert.InDelta(t, 0.004, times[2], 1e-12)
	for i, want := range result.States[1] {
		assert.InDelta(t, want, states[1][i], 1e-12, "state component %d", i)
	}
}

func TestLoadContacts(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Save("contacts", 0.002, "semi_implicit", "grasp_cycle", testResult(), testContacts())
	require.NoError(t, err)

	events, err := st.LoadContacts(id)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, 100, events[0].Step)
	assert.Equal(t, "table_collision", events[0].Contact.Geom1)
	assert.Equal(t, "box_g0", events[0].Contact.Geom2)
	assert.InDelta(t, 0.63, events[0].Contact.Force, 1e-12)
	assert.Equal(t, "finger_l_pad", events[1].Contact.Geom1)
}

func TestLoadContactsMissingFile(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Save("quiet", 0.002, "rk4", "hold", testResult(), nil)
	require.NoError(t, err)

	events, err := st.LoadContacts(id)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLoadUnknownRun(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Load("no_such_run")
	assert.Error(t, err)
}
