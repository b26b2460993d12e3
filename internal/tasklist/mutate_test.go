package tasklist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
	"github.com/mrz1836/taskbook/internal/tasklist"
)

func TestAddTask_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      tasklist.NewTask
		wantErr error
	}{
		{"priority 0", tasklist.NewTask{Name: "x", Priority: 0, DueDate: "01-01-2030"}, tberrors.ErrInvalidPriority},
		{"priority 6", tasklist.NewTask{Name: "x", Priority: 6, DueDate: "01-01-2030"}, tberrors.ErrInvalidPriority},
		{"priority 1", tasklist.NewTask{Name: "x", Priority: 1, DueDate: "01-01-2030"}, nil},
		{"priority 5", tasklist.NewTask{Name: "x", Priority: 5, DueDate: "01-01-2030"}, nil},
		{"empty name", tasklist.NewTask{Name: "", Priority: 1, DueDate: "01-01-2030"}, tberrors.ErrEmptyName},
		{"blank name", tasklist.NewTask{Name: "   ", Priority: 1, DueDate: "01-01-2030"}, tberrors.ErrEmptyName},
		{"malformed date", tasklist.NewTask{Name: "x", Priority: 1, DueDate: "2030-01-01"}, tberrors.ErrInvalidDate},
		{"impossible date", tasklist.NewTask{Name: "x", Priority: 1, DueDate: "29-02-2023"}, tberrors.ErrInvalidDate},
		{"leap day", tasklist.NewTask{Name: "x", Priority: 1, DueDate: "29-02-2024"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := open(t, newGateway(t), "alice", false)

			task, err := s.AddTask(context.Background(), tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, tberrors.ErrValidation)
				assert.Nil(t, task)
				assert.Empty(t, s.Tasks())
				assert.Equal(t, 1, s.NextID())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, task.ID)
		})
	}
}

func TestAddTask_Defaults(t *testing.T) {
	t.Parallel()
	s := open(t, newGateway(t), "alice", false)

	task, err := s.AddTask(context.Background(), tasklist.NewTask{Name: "  trim me  ", Priority: 3, DueDate: " 01-01-2030 "})
	require.NoError(t, err)
	assert.Equal(t, "trim me", task.Name)
	assert.Equal(t, "General", task.Category)
	assert.Equal(t, "01-01-2030", task.DueDate)
	assert.False(t, task.Done)
}

func TestEditTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) *tasklist.Session {
		t.Helper()
		s := open(t, newGateway(t), "alice", false)
		_, err := s.AddTask(ctx, tasklist.NewTask{Name: "Buy milk", Priority: 2, DueDate: "31-12-2099", Category: "Shopping"})
		require.NoError(t, err)
		return s
	}

	t.Run("updates supplied fields", func(t *testing.T) {
		t.Parallel()
		s := setup(t)

		task, err := s.EditTask(ctx, 1, tasklist.Update{Name: "Buy oat milk", Priority: 4, DueDate: "01-06-2099", Category: "Groceries"})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", task.Name)
		assert.Equal(t, 4, task.Priority)
		assert.Equal(t, "01-06-2099", task.DueDate)
		assert.Equal(t, "Groceries", task.Category)
	})

	t.Run("keep values leave fields unchanged", func(t *testing.T) {
		t.Parallel()
		s := setup(t)

		for _, due := range []string{"", "01-01-1970"} {
			task, err := s.EditTask(ctx, 1, tasklist.Update{Priority: 9, DueDate: due})
			require.NoError(t, err)
			assert.Equal(t, "Buy milk", task.Name)
			assert.Equal(t, 2, task.Priority)
			assert.Equal(t, "31-12-2099", task.DueDate)
			assert.Equal(t, "Shopping", task.Category)
		}
	})

	t.Run("invalid date rejects whole edit", func(t *testing.T) {
		t.Parallel()
		s := setup(t)

		_, err := s.EditTask(ctx, 1, tasklist.Update{Name: "renamed", Priority: 1, DueDate: "31-02-2099"})
		require.ErrorIs(t, err, tberrors.ErrInvalidDate)
		assert.Equal(t, "Buy milk", s.Tasks()[0].Name)
		assert.Equal(t, 2, s.Tasks()[0].Priority)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		s := setup(t)

		_, err := s.EditTask(ctx, 99, tasklist.Update{Name: "x"})
		require.ErrorIs(t, err, tberrors.ErrTaskNotFound)
	})
}

func TestMarkAndUnmark(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := open(t, newGateway(t), "alice", false)
	add(t, s, "task", 1, "01-01-2030")

	_, err := s.Unmark(ctx, 1)
	require.ErrorIs(t, err, tberrors.ErrAlreadyInState)

	task, err := s.MarkDone(ctx, 1)
	require.NoError(t, err)
	assert.True(t, task.Done)

	_, err = s.MarkDone(ctx, 1)
	require.ErrorIs(t, err, tberrors.ErrAlreadyInState)

	task, err = s.Unmark(ctx, 1)
	require.NoError(t, err)
	assert.False(t, task.Done)

	_, err = s.MarkDone(ctx, 42)
	require.ErrorIs(t, err, tberrors.ErrTaskNotFound)
}

func TestForeignTasksAreHidden(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gw := newGateway(t)

	bob := open(t, gw, "bob", false)
	bobTask := add(t, bob, "bob's secret", 1, "01-01-2030")

	// alice shares the directory but only ever loads her own file; make her
	// counter collide with bob's id to prove ownership is checked.
	alice := open(t, gw, "alice", false)
	own := add(t, alice, "alice's", 1, "01-01-2030")
	require.Equal(t, bobTask.ID, own.ID)
	require.NoError(t, alice.DeleteTask(ctx, own.ID))

	_, err := alice.EditTask(ctx, bobTask.ID, tasklist.Update{Name: "hijack"})
	require.ErrorIs(t, err, tberrors.ErrTaskNotFound)
	_, err = alice.MarkDone(ctx, bobTask.ID)
	require.ErrorIs(t, err, tberrors.ErrTaskNotFound)
	_, err = alice.Unmark(ctx, bobTask.ID)
	require.ErrorIs(t, err, tberrors.ErrTaskNotFound)
	require.ErrorIs(t, alice.DeleteTask(ctx, bobTask.ID), tberrors.ErrTaskNotFound)

	assert.Empty(t, alice.Search("secret", ""))
	view, err := alice.Show(tasklist.Query{Owner: "bob"})
	require.NoError(t, err)
	assert.Empty(t, view.Tasks)

	reloaded := open(t, gw, "bob", false)
	require.Len(t, reloaded.Tasks(), 1)
	assert.Equal(t, "bob's secret", reloaded.Tasks()[0].Name)
}

func TestAdminIsReadOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gw := newGateway(t)
	alice := open(t, gw, "alice", false)
	add(t, alice, "a", 1, "01-01-2030")

	admin := open(t, gw, "admin", true)

	_, err := admin.AddTask(ctx, tasklist.NewTask{Name: "x", Priority: 1, DueDate: "01-01-2030"})
	require.ErrorIs(t, err, tberrors.ErrAdminReadOnly)
	_, err = admin.EditTask(ctx, 1, tasklist.Update{Name: "x"})
	require.ErrorIs(t, err, tberrors.ErrAdminReadOnly)
	_, err = admin.MarkDone(ctx, 1)
	require.ErrorIs(t, err, tberrors.ErrAdminReadOnly)
	_, err = admin.Unmark(ctx, 1)
	require.ErrorIs(t, err, tberrors.ErrAdminReadOnly)
	require.ErrorIs(t, admin.DeleteTask(ctx, 1), tberrors.ErrAdminReadOnly)
	assert.Len(t, admin.Tasks(), 1)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gw := newGateway(t)
	s := open(t, gw, "alice", false)
	add(t, s, "one", 1, "01-01-2030")
	add(t, s, "two", 1, "01-01-2030")

	require.NoError(t, s.DeleteTask(ctx, 1))
	require.ErrorIs(t, s.DeleteTask(ctx, 1), tberrors.ErrTaskNotFound)

	reloaded := open(t, gw, "alice", false)
	require.Len(t, reloaded.Tasks(), 1)
	assert.Equal(t, "two", reloaded.Tasks()[0].Name)
}

func TestClearAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("requires confirmation", func(t *testing.T) {
		t.Parallel()
		s := open(t, newGateway(t), "alice", false)
		add(t, s, "one", 1, "01-01-2030")

		n, err := s.ClearAll(ctx, false)
		require.ErrorIs(t, err, tberrors.ErrNotConfirmed)
		assert.Zero(t, n)
		assert.Len(t, s.Tasks(), 1)
		assert.Equal(t, 2, s.NextID())
	})

	t.Run("user clears own file and resets counter", func(t *testing.T) {
		t.Parallel()
		gw := newGateway(t)
		s := open(t, gw, "alice", false)
		add(t, s, "one", 1, "01-01-2030")
		add(t, s, "two", 1, "01-01-2030")

		n, err := s.ClearAll(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Empty(t, s.Tasks())
		assert.Equal(t, 1, s.NextID())

		reloaded := open(t, gw, "alice", false)
		assert.True(t, reloaded.Found())
		assert.Empty(t, reloaded.Tasks())
	})

	t.Run("admin cannot clear other users", func(t *testing.T) {
		t.Parallel()
		gw := newGateway(t)
		add(t, open(t, gw, "alice", false), "a", 1, "01-01-2030")
		add(t, open(t, gw, "bob", false), "b", 1, "01-01-2030")

		admin := open(t, gw, "admin", true)
		n, err := admin.ClearAll(ctx, true)
		require.ErrorIs(t, err, tberrors.ErrAdminReadOnly)
		assert.Zero(t, n)
		assert.Len(t, admin.Tasks(), 2)

		assert.Len(t, open(t, gw, "alice", false).Tasks(), 1)
		assert.Len(t, open(t, gw, "bob", false).Tasks(), 1)
	})
}

func TestSort(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) *tasklist.Session {
		t.Helper()
		s := open(t, newGateway(t), "alice", false)
		add(t, s, "charlie", 3, "15-01-2030")
		add(t, s, "alpha", 1, "02-12-2029")
		add(t, s, "bravo", 3, "01-06-2031")
		return s
	}
	names := func(tasks []*domain.Task) []string {
		out := make([]string, len(tasks))
		for i, task := range tasks {
			out[i] = task.Name
		}
		return out
	}

	t.Run("priority keeps ties in order", func(t *testing.T) {
		t.Parallel()
		s := setup(t)
		require.NoError(t, s.Sort(ctx, domain.SortByPriority))
		assert.Equal(t, []string{"alpha", "charlie", "bravo"}, names(s.Tasks()))
	})

	t.Run("date compares text day first", func(t *testing.T) {
		t.Parallel()
		s := setup(t)
		require.NoError(t, s.Sort(ctx, domain.SortByDate))
		assert.Equal(t, []string{"bravo", "alpha", "charlie"}, names(s.Tasks()))
	})

	t.Run("name", func(t *testing.T) {
		t.Parallel()
		s := setup(t)
		require.NoError(t, s.Sort(ctx, domain.SortByName))
		assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names(s.Tasks()))
	})

	t.Run("invalid criterion changes nothing", func(t *testing.T) {
		t.Parallel()
		s := setup(t)
		for _, c := range []domain.SortCriterion{"size", domain.SortByOwner} {
			require.ErrorIs(t, s.Sort(ctx, c), tberrors.ErrInvalidSortCriterion)
		}
		assert.Equal(t, []string{"charlie", "alpha", "bravo"}, names(s.Tasks()))
	})

	t.Run("admin sorts by owner and persists each owner", func(t *testing.T) {
		t.Parallel()
		gw := newGateway(t)
		bob := open(t, gw, "bob", false)
		add(t, bob, "b2", 5, "01-01-2030")
		add(t, bob, "b1", 1, "01-01-2030")
		add(t, open(t, gw, "alice", false), "a1", 2, "01-01-2030")

		admin := open(t, gw, "admin", true)
		require.NoError(t, admin.Sort(ctx, domain.SortByPriority))
		require.NoError(t, admin.Sort(ctx, domain.SortByOwner))
		assert.Equal(t, []string{"a1", "b1", "b2"}, names(admin.Tasks()))

		assert.Equal(t, []string{"b1", "b2"}, names(open(t, gw, "bob", false).Tasks()))
	})
}
