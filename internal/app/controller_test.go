package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/auth"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/internal/store"
	"github.com/shaik1234567/TaskFlow-AI/internal/suggest"
	"github.com/shaik1234567/TaskFlow-AI/internal/task"
)

// fakeSuggestions is a canned SuggestionService.
type fakeSuggestions struct {
	suggestions []suggest.Suggestion
	err         error
}

func (f *fakeSuggestions) GenerateSubtasks(context.Context, string) ([]suggest.Suggestion, error) {
	return f.suggestions, f.err
}

func (f *fakeSuggestions) AnalyzeTask(_ context.Context, description string) suggest.Analysis {
	return suggest.Analysis{Priority: models.PriorityMedium, RefinedDescription: description}
}

// flakyRepo wraps a repository and fails every create after the first
// failAfter successes.
type flakyRepo struct {
	task.Repository
	failAfter int
	creates   int
}

func (r *flakyRepo) Create(ctx context.Context, ownerID string, in task.CreateInput) (models.Task, error) {
	if r.creates >= r.failAfter {
		return models.Task{}, apperrors.ErrStorage
	}
	r.creates++
	return r.Repository.Create(ctx, ownerID, in)
}

type harness struct {
	controller *Controller
	repo       task.Repository
	gateway    *fakeSuggestions
	messages   []string
}

func newHarness(t *testing.T, repo task.Repository, gateway *fakeSuggestions) *harness {
	t.Helper()
	kv, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	if repo == nil {
		repo = task.NewStoreRepository(kv)
	}
	if gateway == nil {
		gateway = &fakeSuggestions{}
	}
	sessions := auth.NewManager(auth.NewStoreUsers(kv), kv, "test-secret", time.Hour)

	h := &harness{repo: repo, gateway: gateway}
	h.controller = NewController(sessions, repo, gateway, func(msg, _ string) {
		h.messages = append(h.messages, msg)
	})
	return h
}

func TestInitWithoutSession(t *testing.T) {
	h := newHarness(t, nil, nil)

	require.NoError(t, h.controller.Init(context.Background()))

	state := h.controller.State()
	assert.False(t, state.Loading, "loading flips off exactly once on init")
	assert.Nil(t, state.Session)
	assert.Empty(t, state.Tasks)
}

func TestInitRestoresPersistedSession(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))
	require.NoError(t, h.controller.SaveTask(ctx, TaskForm{Title: "persisted"}, nil))

	// Init re-reads the snapshot the register call persisted.
	require.NoError(t, h.controller.Init(ctx))
	state := h.controller.State()
	require.NotNil(t, state.Session)
	assert.Equal(t, "alice@x.com", state.Session.User.Email)
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "persisted", state.Tasks[0].Title)
}

func TestMutationsRequireSession(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()
	require.NoError(t, h.controller.Init(ctx))

	err := h.controller.SaveTask(ctx, TaskForm{Title: "orphan"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	err = h.controller.DeleteTask(ctx, "any-id")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	created, err := h.controller.GenerateFromGoal(ctx, "goal")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Zero(t, created)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	err := h.controller.Login(ctx, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Nil(t, h.controller.State().Session)
	assert.NotEmpty(t, h.messages, "failure must surface a user-visible message")
}

func TestSaveTaskCreatesAndRefreshes(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))
	require.NoError(t, h.controller.SaveTask(ctx, TaskForm{Title: "Buy milk", Priority: models.PriorityMedium}, nil))

	state := h.controller.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Buy milk", state.Tasks[0].Title)
	assert.Equal(t, models.StatusTodo, state.Tasks[0].Status)
}

func TestSaveTaskRoutesToUpdate(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))
	require.NoError(t, h.controller.SaveTask(ctx, TaskForm{Title: "Draft", Description: "v1"}, nil))
	existing := h.controller.State().Tasks[0]

	require.NoError(t, h.controller.SaveTask(ctx, TaskForm{
		Title:       "Draft",
		Description: "v1",
		Status:      models.StatusCompleted,
		Priority:    models.PriorityMedium,
	}, &existing))

	state := h.controller.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, existing.ID, state.Tasks[0].ID)
	assert.Equal(t, models.StatusCompleted, state.Tasks[0].Status)
}

func TestGenerateFromGoalCreatesEachSuggestion(t *testing.T) {
	gateway := &fakeSuggestions{suggestions: []suggest.Suggestion{
		{Title: "One", Description: "d1", Priority: models.PriorityHigh},
		{Title: "Two", Description: "d2", Priority: models.PriorityLow},
	}}
	h := newHarness(t, nil, gateway)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))

	created, err := h.controller.GenerateFromGoal(ctx, "big goal")
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Len(t, h.controller.State().Tasks, 2)
}

func TestGenerateFromGoalPartialFailureKeepsCommittedTasks(t *testing.T) {
	gateway := &fakeSuggestions{suggestions: []suggest.Suggestion{
		{Title: "One"}, {Title: "Two"}, {Title: "Three"},
	}}
	kv, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := &flakyRepo{Repository: task.NewStoreRepository(kv), failAfter: 2}
	h := newHarness(t, repo, gateway)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))

	created, err := h.controller.GenerateFromGoal(ctx, "big goal")
	require.Error(t, err)
	assert.Equal(t, 2, created, "tasks created before the failure stay committed")
	assert.Len(t, h.controller.State().Tasks, 2, "no rollback")
}

func TestGenerateFromGoalGatewayErrorCreatesNothing(t *testing.T) {
	gateway := &fakeSuggestions{err: apperrors.ErrSuggestionUnavailable}
	h := newHarness(t, nil, gateway)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))

	created, err := h.controller.GenerateFromGoal(ctx, "goal")
	assert.ErrorIs(t, err, apperrors.ErrSuggestionUnavailable)
	assert.Zero(t, created)
	assert.Empty(t, h.controller.State().Tasks)
}

func TestFilteredTasks(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))
	seed := []TaskForm{
		{Title: "Buy milk", Description: "from the store", Status: models.StatusTodo},
		{Title: "Write report", Description: "quarterly numbers", Status: models.StatusInProgress},
		{Title: "Email Bob", Description: "about the report", Status: models.StatusCompleted},
	}
	for _, form := range seed {
		require.NoError(t, h.controller.SaveTask(ctx, form, nil))
	}

	t.Run("substring matches title or description, case-insensitive", func(t *testing.T) {
		got := h.controller.FilteredTasks("REPORT", FilterAll)
		require.Len(t, got, 2)
	})

	t.Run("status filter intersects with search", func(t *testing.T) {
		got := h.controller.FilteredTasks("report", string(models.StatusCompleted))
		require.Len(t, got, 1)
		assert.Equal(t, "Email Bob", got[0].Title)
	})

	t.Run("empty search matches everything", func(t *testing.T) {
		assert.Len(t, h.controller.FilteredTasks("", FilterAll), 3)
	})

	t.Run("pure: repeated calls with same inputs agree and leave state alone", func(t *testing.T) {
		before := h.controller.State()
		first := h.controller.FilteredTasks("milk", FilterAll)
		second := h.controller.FilteredTasks("milk", FilterAll)
		assert.Equal(t, first, second)
		assert.Equal(t, before.Tasks, h.controller.State().Tasks)
	})
}

// Full user journey: register, login, create, complete, delete.
func TestRegisterLoginCreateCompleteDeleteScenario(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))
	require.NoError(t, h.controller.Logout(ctx))
	require.NoError(t, h.controller.Login(ctx, "alice@x.com", "pw123"))
	require.NotNil(t, h.controller.State().Session)

	require.NoError(t, h.controller.SaveTask(ctx, TaskForm{
		Title:    "Buy milk",
		Priority: models.PriorityMedium,
	}, nil))
	state := h.controller.State()
	require.Len(t, state.Tasks, 1)
	created := state.Tasks[0]
	assert.Equal(t, "Buy milk", created.Title)

	require.NoError(t, h.controller.SaveTask(ctx, TaskForm{
		Title:       created.Title,
		Description: created.Description,
		Status:      models.StatusCompleted,
		Priority:    created.Priority,
	}, &created))
	state = h.controller.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, models.StatusCompleted, state.Tasks[0].Status)
	assert.Equal(t, "Buy milk", state.Tasks[0].Title)

	require.NoError(t, h.controller.DeleteTask(ctx, created.ID))
	assert.Empty(t, h.controller.State().Tasks)
}

func TestLogoutClearsStateAndIsIdempotent(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, h.controller.Register(ctx, "Alice", "alice@x.com", "pw123"))
	require.NoError(t, h.controller.Logout(ctx))
	require.NoError(t, h.controller.Logout(ctx))

	state := h.controller.State()
	assert.Nil(t, state.Session)
	assert.Empty(t, state.Tasks)
}

func TestAnalyzeDescriptionPassthrough(t *testing.T) {
	h := newHarness(t, nil, nil)

	got := h.controller.AnalyzeDescription(context.Background(), "untouched")
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.Equal(t, "untouched", got.RefinedDescription)
}
