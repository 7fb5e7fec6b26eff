package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mychoreapp/choretribe/internal/apperr"
	"github.com/mychoreapp/choretribe/internal/database"
	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/store"
)

type testEnv struct {
	users       *UserService
	tribes      *TribeService
	chores      *ChoreService
	completions *CompletionService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us := store.NewUserStore(db)
	ts := store.NewTribeStore(db)
	cs := store.NewChoreStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		users:       NewUserService(us, ts),
		tribes:      NewTribeService(ts),
		chores:      NewChoreService(cs, ts, us),
		completions: NewCompletionService(db, cs, us, logger),
	}
}

// seedMember creates a tribe member ready to complete chores.
func (e *testEnv) seedMember(t *testing.T, username string, tribe *model.Tribe) *model.User {
	t.Helper()
	user, err := e.users.Register(username, "secret", nil, nil)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	user, err = e.users.JoinTribe(user.ID, tribe.JoinCode)
	if err != nil {
		t.Fatalf("join tribe: %v", err)
	}
	return user
}

func (e *testEnv) seedTribe(t *testing.T, name string) *model.Tribe {
	t.Helper()
	tribe, err := e.tribes.Create(name)
	if err != nil {
		t.Fatalf("create tribe %s: %v", name, err)
	}
	return tribe
}

func TestRecordCompletionNonRecurring(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	user := e.seedMember(t, "frodo", tribe)

	chore, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	completion, err := e.completions.Record(chore.ID, user.ID, nil)
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	if completion.PointsAwarded != 5 {
		t.Errorf("points_awarded = %d, want 5", completion.PointsAwarded)
	}

	got, err := e.users.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Points != 5 {
		t.Errorf("user points = %d, want 5", got.Points)
	}

	// A non-recurring chore stays active and spawns nothing.
	after, err := e.chores.GetByID(chore.ID)
	if err != nil {
		t.Fatalf("get chore: %v", err)
	}
	if !after.IsActive {
		t.Error("non-recurring chore deactivated by completion")
	}
	all, err := e.chores.ListByTribe(tribe.ID)
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 chore, got %d", len(all))
	}
}

func TestRecordCompletionWeeklyRecurrence(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	user := e.seedMember(t, "frodo", tribe)

	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	chore, err := e.chores.Create(tribe.ID, ChoreInput{
		Name:              "Take out trash",
		PointsValue:       3,
		DueDate:           &due,
		IsRecurring:       true,
		RecurrencePattern: "WEEKLY",
		AssignedTo:        &user.ID,
	})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	if _, err := e.completions.Record(chore.ID, user.ID, nil); err != nil {
		t.Fatalf("record completion: %v", err)
	}

	// Original deactivated.
	original, err := e.chores.GetByID(chore.ID)
	if err != nil {
		t.Fatalf("get original: %v", err)
	}
	if original.IsActive {
		t.Error("completed recurring chore still active")
	}

	// Successor: same name, due a week later, unassigned, active.
	active, err := e.chores.ListActiveByTribe(tribe.ID)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active chore, got %d", len(active))
	}
	next := active[0]
	if next.ID == chore.ID {
		t.Fatal("expected a new chore instance, got the original")
	}
	if next.Name != chore.Name {
		t.Errorf("successor name = %q, want %q", next.Name, chore.Name)
	}
	wantDue := time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)
	if next.DueDate == nil || !next.DueDate.Equal(wantDue) {
		t.Errorf("successor due = %v, want %v", next.DueDate, wantDue)
	}
	if next.AssignedTo != nil {
		t.Errorf("successor assigned_to = %v, want nil", next.AssignedTo)
	}
	if !next.IsRecurring {
		t.Error("successor lost its recurrence")
	}
}

func TestRecordCompletionUnrecognizedPatternFallsBackDaily(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	user := e.seedMember(t, "frodo", tribe)

	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	chore, err := e.chores.Create(tribe.ID, ChoreInput{
		Name:              "Water plants",
		PointsValue:       2,
		DueDate:           &due,
		IsRecurring:       true,
		RecurrencePattern: "FORTNIGHTLY",
	})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	if _, err := e.completions.Record(chore.ID, user.ID, nil); err != nil {
		t.Fatalf("record completion: %v", err)
	}

	active, err := e.chores.ListActiveByTribe(tribe.ID)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active chore, got %d", len(active))
	}
	// Unknown pattern rolls over one day from the original due date and
	// keeps the pattern string for the owner to fix.
	wantDue := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	if active[0].DueDate == nil || !active[0].DueDate.Equal(wantDue) {
		t.Errorf("successor due = %v, want %v", active[0].DueDate, wantDue)
	}
	if active[0].RecurrencePattern != "FORTNIGHTLY" {
		t.Errorf("successor pattern = %q, want FORTNIGHTLY", active[0].RecurrencePattern)
	}
}

func TestRecordCompletionCrossTribeRejected(t *testing.T) {
	e := setupServices(t)
	tribeA := e.seedTribe(t, "TribeA")
	tribeB := e.seedTribe(t, "TribeB")
	outsider := e.seedMember(t, "outsider", tribeB)

	chore, err := e.chores.Create(tribeA.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	_, err = e.completions.Record(chore.ID, outsider.ID, nil)
	if !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid-operation error, got %v", err)
	}

	// No side effects: no points, no completion rows.
	got, err := e.users.GetByID(outsider.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Points != 0 {
		t.Errorf("points = %d, want 0", got.Points)
	}
	completions, err := e.completions.ListAll()
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("expected no completions, got %d", len(completions))
	}
}

func TestRecordCompletionTribelessUserRejected(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")

	loner, err := e.users.Register("loner", "secret", nil, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	chore, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	_, err = e.completions.Record(chore.ID, loner.ID, nil)
	if !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid-operation error, got %v", err)
	}
}

func TestRecordCompletionMissingEntities(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	user := e.seedMember(t, "frodo", tribe)

	chore, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	if _, err := e.completions.Record(9999, user.ID, nil); !apperr.IsNotFound(err) {
		t.Errorf("missing chore: expected not-found, got %v", err)
	}
	if _, err := e.completions.Record(chore.ID, 9999, nil); !apperr.IsNotFound(err) {
		t.Errorf("missing user: expected not-found, got %v", err)
	}
}

func TestCompletionPointsSnapshotImmutable(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	user := e.seedMember(t, "frodo", tribe)

	chore, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	completion, err := e.completions.Record(chore.ID, user.ID, nil)
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}

	// Raise the chore's value after the fact.
	if _, err := e.chores.Update(chore.ID, UpdateInput{
		ID: chore.ID,
		ChoreInput: ChoreInput{
			Name:        "Dishes",
			PointsValue: 50,
		},
		TribeID:  tribe.ID,
		IsActive: true,
	}); err != nil {
		t.Fatalf("update chore: %v", err)
	}

	got, err := e.completions.GetByID(completion.ID)
	if err != nil {
		t.Fatalf("get completion: %v", err)
	}
	if got.PointsAwarded != 5 {
		t.Errorf("points_awarded = %d after chore edit, want 5", got.PointsAwarded)
	}
}

func TestRecordCompletionBackdated(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	user := e.seedMember(t, "frodo", tribe)

	chore, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	when := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	completion, err := e.completions.Record(chore.ID, user.ID, &when)
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	if !completion.CompletionDate.Equal(when) {
		t.Errorf("completion_date = %v, want %v", completion.CompletionDate, when)
	}
}

func TestDeleteCompletionKeepsPoints(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	user := e.seedMember(t, "frodo", tribe)

	chore, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}
	completion, err := e.completions.Record(chore.ID, user.ID, nil)
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}

	if err := e.completions.Delete(completion.ID); err != nil {
		t.Fatalf("delete completion: %v", err)
	}

	got, err := e.users.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Points != 5 {
		t.Errorf("points = %d after completion delete, want 5", got.Points)
	}
}
