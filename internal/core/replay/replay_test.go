package replay

import (
	"context"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/toasts/internal/core/notify"
	"github.com/hay-kot/toasts/internal/core/notify/notifytest"
)

const uploadScenario = `
settle: 2s
steps:
  - at: 0s
    op: create
    ref: upload
    info:
      title: Uploading
      message: report.pdf
      duration: 1s
  - at: 500ms
    op: edit
    ref: upload
    info:
      message: 50%
      icon: ~
      duration: 3s
  - at: 2s
    op: delete
    ref: upload
  - at: 2s
    op: delete
    ref: upload
`

func TestScenario_decode(t *testing.T) {
	var s Scenario
	require.NoError(t, yaml.Unmarshal([]byte(uploadScenario), &s))

	require.Len(t, s.Steps, 4)
	assert.Equal(t, 2*time.Second, s.Settle)
	assert.Equal(t, OpEdit, s.Steps[1].Op)
	assert.Equal(t, 500*time.Millisecond, s.Steps[1].At)
	assert.Equal(t, notify.Set("50%"), s.Steps[1].Info.Message)
	assert.True(t, s.Steps[1].Info.Icon.IsClear())
	assert.True(t, s.Steps[1].Info.Title.IsUnspecified())
	require.NoError(t, s.Validate())
}

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name   string
		steps  []Step
		fields []string
	}{
		{
			name:   "empty",
			fields: []string{"steps"},
		},
		{
			name:   "unknown op",
			steps:  []Step{{Op: "poke", Ref: "a"}},
			fields: []string{"steps[0].op"},
		},
		{
			name:   "missing ref",
			steps:  []Step{{Op: OpCreate}},
			fields: []string{"steps[0].ref"},
		},
		{
			name:   "edit before create",
			steps:  []Step{{Op: OpEdit, Ref: "a"}, {Op: OpCreate, Ref: "a"}},
			fields: []string{"steps[0].ref"},
		},
		{
			name: "out of order",
			steps: []Step{
				{At: time.Second, Op: OpCreate, Ref: "a"},
				{At: 0, Op: OpDelete, Ref: "a"},
			},
			fields: []string{"steps[1].at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Scenario{Steps: tt.steps}.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)

			got := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	clock := notifytest.NewFakeClock()
	sink := notifytest.NewRecordingSink()
	m := notify.NewManager(
		notify.WithClock(clock),
		notify.WithAllocator(notify.NewSequenceAllocator(7)),
		notify.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, m.Wire(sink))

	var waited time.Duration
	wait := func(_ context.Context, d time.Duration) error {
		waited += d
		clock.Advance(d)
		return nil
	}

	var s Scenario
	require.NoError(t, yaml.Unmarshal([]byte(uploadScenario), &s))

	results, err := NewRunner(m, wait).Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, waited)

	require.Len(t, results, 4)
	assert.Equal(t, Result{At: 0, Op: OpCreate, Ref: "upload", ID: "00000007", Found: true}, results[0])
	assert.True(t, results[1].Found, "edit at 500ms lands before the 1s expiry")
	assert.True(t, results[2].Found, "edit re-armed the expiry to 3.5s")
	assert.False(t, results[3].Found, "second delete is a no-op")

	assert.Equal(t, 1, sink.Count(notifytest.OpHide, 7))
	assert.Equal(t, 1, sink.Count(notifytest.OpDetach, 7))
	assert.Equal(t, notify.StateRemoved, m.State(7))
}

func TestRunner_records_step_errors(t *testing.T) {
	m := notify.NewManager(notify.WithLogger(zerolog.Nop()))

	s := Scenario{Steps: []Step{{Op: OpCreate, Ref: "a", Info: notify.Info{Duration: notify.Set(time.Second)}}}}
	results, err := NewRunner(m, func(context.Context, time.Duration) error { return nil }).Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Error, "not initialized")
	assert.Empty(t, results[0].ID)
}

func TestRunner_stops_on_cancel(t *testing.T) {
	m := notify.NewManager(notify.WithLogger(zerolog.Nop()))
	require.NoError(t, m.Wire(notifytest.NewRecordingSink()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := Scenario{Steps: []Step{{At: time.Hour, Op: OpCreate, Ref: "a"}}}
	_, err := NewRunner(m, Sleep).Run(ctx, s)
	require.ErrorIs(t, err, context.Canceled)
}
