package tasklist_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskbook/internal/clock"
	"github.com/mrz1836/taskbook/internal/codec"
	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
	"github.com/mrz1836/taskbook/internal/storage"
	"github.com/mrz1836/taskbook/internal/tasklist"
	"github.com/mrz1836/taskbook/internal/testutil"
)

// testToday is the pinned calendar day for overdue checks.
var testToday = clock.FixedDate(2026, time.March, 15) //nolint:gochecknoglobals // test fixture

func newGateway(t *testing.T) *storage.Gateway {
	t.Helper()
	gw, err := storage.NewGateway(t.TempDir())
	require.NoError(t, err)
	return gw
}

func open(t *testing.T, store tasklist.Store, user string, admin bool) *tasklist.Session {
	t.Helper()
	s, err := tasklist.Open(context.Background(), store, user, admin, tasklist.WithClock(testToday))
	require.NoError(t, err)
	return s
}

func add(t *testing.T, s *tasklist.Session, name string, priority int, due string) *domain.Task {
	t.Helper()
	task, err := s.AddTask(context.Background(), tasklist.NewTask{Name: name, Priority: priority, DueDate: due})
	require.NoError(t, err)
	return task
}

func seedFile(t *testing.T, gw *storage.Gateway, owner string, tasks ...*domain.Task) {
	t.Helper()
	testutil.WriteFile(t, gw.FileFor(owner), string(codec.Encode(tasks)))
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("no file starts empty at id 1", func(t *testing.T) {
		t.Parallel()
		s := open(t, newGateway(t), "alice", false)

		assert.Equal(t, "alice", s.User())
		assert.False(t, s.IsAdmin())
		assert.False(t, s.Found())
		assert.Equal(t, 1, s.NextID())
		assert.Empty(t, s.Tasks())
	})

	t.Run("seeds next id from highest loaded id", func(t *testing.T) {
		t.Parallel()
		gw := newGateway(t)
		seedFile(t, gw, "alice",
			&domain.Task{ID: 7, Name: "a", Priority: 1, DueDate: "01-01-2030", Category: "General", Owner: "alice"},
			&domain.Task{ID: 3, Name: "b", Priority: 2, DueDate: "01-01-2030", Category: "General", Owner: "alice"},
		)

		s := open(t, gw, "alice", false)
		assert.True(t, s.Found())
		assert.Equal(t, 8, s.NextID())
		assert.Len(t, s.Tasks(), 2)
	})

	t.Run("counts skipped records", func(t *testing.T) {
		t.Parallel()
		gw := newGateway(t)
		data := `[{"id":1,"name":"ok","priority":1,"dueDate":"01-01-2030","done":false},{"id":2,"name":"","priority":1,"dueDate":"01-01-2030"}]`
		testutil.WriteFile(t, gw.FileFor("alice"), data)

		s := open(t, gw, "alice", false)
		assert.Equal(t, 1, s.Skipped())
		assert.Len(t, s.Tasks(), 1)
	})

	t.Run("admin loads every file", func(t *testing.T) {
		t.Parallel()
		gw := newGateway(t)
		seedFile(t, gw, "alice", &domain.Task{ID: 1, Name: "a", Priority: 1, DueDate: "01-01-2030", Category: "General", Owner: "alice"})
		seedFile(t, gw, "bob", &domain.Task{ID: 4, Name: "b", Priority: 1, DueDate: "01-01-2030", Category: "General", Owner: "bob"})

		s := open(t, gw, "admin", true)
		assert.Len(t, s.Tasks(), 2)
		assert.Equal(t, []string{"alice", "bob"}, s.Owners())
	})

	t.Run("empty user rejected", func(t *testing.T) {
		t.Parallel()
		_, err := tasklist.Open(context.Background(), newGateway(t), "  ", false)
		require.ErrorIs(t, err, tberrors.ErrEmptyValue)
	})

	t.Run("load failure", func(t *testing.T) {
		t.Parallel()
		store := &fakeStore{loadErr: tberrors.ErrStorageIO}
		_, err := tasklist.Open(context.Background(), store, "alice", false)
		require.ErrorIs(t, err, tberrors.ErrStorageIO)
	})

	t.Run("default category option", func(t *testing.T) {
		t.Parallel()
		s, err := tasklist.Open(context.Background(), newGateway(t), "alice", false,
			tasklist.WithDefaultCategory("Inbox"))
		require.NoError(t, err)

		task := add(t, s, "sort mail", 3, "01-01-2030")
		assert.Equal(t, "Inbox", task.Category)
	})
}

// TestScenario_BuyMilk walks the add, mark, sort and show flow end to end.
func TestScenario_BuyMilk(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gw := newGateway(t)
	s := open(t, gw, "alice", false)

	milk, err := s.AddTask(ctx, tasklist.NewTask{Name: "Buy milk", Priority: 2, DueDate: "31-12-2099", Category: "Shopping"})
	require.NoError(t, err)
	assert.Equal(t, 1, milk.ID)
	assert.Equal(t, "alice", milk.Owner)

	done, err := s.MarkDone(ctx, 1)
	require.NoError(t, err)
	assert.True(t, done.Done)

	urgent := add(t, s, "Pay rent", 1, "01-04-2099")
	require.NoError(t, s.Sort(ctx, domain.SortByPriority))

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, urgent.ID, tasks[0].ID)
	assert.Equal(t, 1, tasks[1].ID)

	view, err := s.Show(tasklist.Query{Filter: domain.FilterCompleted})
	require.NoError(t, err)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, 1, view.Tasks[0].ID)

	// The sorted order reached the file.
	reloaded := open(t, gw, "alice", false)
	assert.Equal(t, urgent.ID, reloaded.Tasks()[0].ID)
	assert.True(t, reloaded.Tasks()[1].Done)
}

func TestScenario_PastDueIsOverdue(t *testing.T) {
	t.Parallel()
	s := open(t, newGateway(t), "alice", false)

	task, err := s.AddTask(context.Background(), tasklist.NewTask{Name: "X", Priority: 3, DueDate: "01-01-1970", Category: "General"})
	require.NoError(t, err)

	assert.False(t, task.Done)
	assert.True(t, task.IsOverdue(s.Today()))
	assert.Equal(t, domain.StatusOverdue, task.Status(s.Today()))
	require.Len(t, s.Overdue(), 1)
}

func TestIDsNeverReused(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := open(t, newGateway(t), "alice", false)

	add(t, s, "one", 1, "01-01-2030")
	second := add(t, s, "two", 1, "01-01-2030")
	require.NoError(t, s.DeleteTask(ctx, second.ID))

	third := add(t, s, "three", 1, "01-01-2030")
	assert.Greater(t, third.ID, second.ID)
}

func TestTasksReturnsCopies(t *testing.T) {
	t.Parallel()
	s := open(t, newGateway(t), "alice", false)
	add(t, s, "original", 1, "01-01-2030")

	s.Tasks()[0].Name = "changed"
	assert.Equal(t, "original", s.Tasks()[0].Name)
}

// fakeStore is an in-memory Store with injectable failures.
type fakeStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStore) Save(context.Context, []*domain.Task, string) error {
	f.saves++
	return f.saveErr
}

func (f *fakeStore) SaveOwners(context.Context, []*domain.Task, []string) error {
	f.saves++
	return f.saveErr
}

func (f *fakeStore) Load(context.Context, string) (*storage.LoadResult, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return &storage.LoadResult{}, nil
}

func (f *fakeStore) LoadAll(ctx context.Context) (*storage.LoadResult, error) {
	return f.Load(ctx, "")
}

func (f *fakeStore) RemoveUser(context.Context, string) (bool, error) {
	return true, nil
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &fakeStore{saveErr: tberrors.ErrStorageIO}
	s := open(t, store, "alice", false)

	task, err := s.AddTask(ctx, tasklist.NewTask{Name: "kept", Priority: 1, DueDate: "01-01-2030"})
	require.ErrorIs(t, err, tberrors.ErrStorageIO)
	require.NotNil(t, task)
	assert.Len(t, s.Tasks(), 1)
	assert.Equal(t, 2, s.NextID())

	_, err = s.MarkDone(ctx, task.ID)
	require.ErrorIs(t, err, tberrors.ErrStorageIO)
	assert.True(t, s.Tasks()[0].Done)
	assert.Equal(t, 2, store.saves)
}

func TestSaveWritesOnlyOwnFile(t *testing.T) {
	t.Parallel()
	gw := newGateway(t)
	s := open(t, gw, "alice", false)
	add(t, s, "mine", 1, "01-01-2030")

	entries, err := os.ReadDir(gw.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(gw.FileFor("alice")), entries[0].Name())
}
