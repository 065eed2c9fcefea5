package mixorder_test

import (
	"fmt"
	"testing"

	"production/internal/core/domain/model/mixorder"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate known statuses", func(t *testing.T) {
		for _, s := range []mixorder.Status{
			mixorder.Draft, mixorder.Staged, mixorder.Running,
			mixorder.Hold, mixorder.Completed, mixorder.Aborted,
		} {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		for _, s := range []mixorder.Status{mixorder.Unknown, mixorder.Status(7), mixorder.Status(-1)} {
			err := s.Validate()
			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestParseStatus(t *testing.T) {
	s, err := mixorder.ParseStatus("Hold")
	require.NoError(t, err)
	assert.Equal(t, mixorder.Hold, s)

	_, err = mixorder.ParseStatus("Unknown")
	require.Error(t, err)

	_, err = mixorder.ParseStatus("running")
	require.Error(t, err)
}

func TestStatus_Transitions(t *testing.T) {
	all := []mixorder.Status{
		mixorder.Draft, mixorder.Staged, mixorder.Running,
		mixorder.Hold, mixorder.Completed, mixorder.Aborted,
	}

	operations := map[string]struct {
		apply   func(mixorder.Status) (mixorder.Status, error)
		allowed map[mixorder.Status]mixorder.Status
	}{
		"stage": {
			apply:   mixorder.Status.Stage,
			allowed: map[mixorder.Status]mixorder.Status{mixorder.Draft: mixorder.Staged},
		},
		"start": {
			apply:   mixorder.Status.Start,
			allowed: map[mixorder.Status]mixorder.Status{mixorder.Staged: mixorder.Running},
		},
		"hold": {
			apply: mixorder.Status.Hold,
			allowed: map[mixorder.Status]mixorder.Status{
				mixorder.Running: mixorder.Hold,
				mixorder.Staged:  mixorder.Hold,
			},
		},
		"resume": {
			apply:   mixorder.Status.Resume,
			allowed: map[mixorder.Status]mixorder.Status{mixorder.Hold: mixorder.Running},
		},
		"complete": {
			apply:   mixorder.Status.Complete,
			allowed: map[mixorder.Status]mixorder.Status{mixorder.Running: mixorder.Completed},
		},
		"abort": {
			apply: mixorder.Status.Abort,
			allowed: map[mixorder.Status]mixorder.Status{
				mixorder.Draft:   mixorder.Aborted,
				mixorder.Staged:  mixorder.Aborted,
				mixorder.Running: mixorder.Aborted,
				mixorder.Hold:    mixorder.Aborted,
			},
		},
	}

	for name, op := range operations {
		for _, from := range all {
			t.Run(fmt.Sprintf("%s from %s", name, from), func(t *testing.T) {
				got, err := op.apply(from)

				if want, ok := op.allowed[from]; ok {
					require.NoError(t, err)
					assert.Equal(t, want, got)
					return
				}
				require.ErrorIs(t, err, mixorder.ErrInvalidTransition)
				assert.Contains(t, err.Error(), name)
				assert.Contains(t, err.Error(), from.String())
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, mixorder.Completed.IsTerminal())
	assert.True(t, mixorder.Aborted.IsTerminal())
	assert.False(t, mixorder.Hold.IsTerminal())
	assert.False(t, mixorder.Draft.IsTerminal())
}
