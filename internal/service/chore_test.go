package service

import (
	"testing"

	"github.com/mychoreapp/choretribe/internal/apperr"
)

func TestChoreCreateValidation(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	member := e.seedMember(t, "frodo", tribe)

	if _, err := e.chores.Create(9999, ChoreInput{Name: "Dishes", PointsValue: 5}); !apperr.IsInvalid(err) {
		t.Errorf("missing tribe: expected invalid, got %v", err)
	}
	if _, err := e.chores.Create(tribe.ID, ChoreInput{Name: "", PointsValue: 5}); !apperr.IsInvalid(err) {
		t.Errorf("empty name: expected invalid, got %v", err)
	}
	if _, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 0}); !apperr.IsInvalid(err) {
		t.Errorf("zero points: expected invalid, got %v", err)
	}
	if _, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: -3}); !apperr.IsInvalid(err) {
		t.Errorf("negative points: expected invalid, got %v", err)
	}

	if _, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5, AssignedTo: &member.ID}); err != nil {
		t.Fatalf("create chore: %v", err)
	}
	if _, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5}); !apperr.IsInvalid(err) {
		t.Errorf("duplicate name in tribe: expected invalid, got %v", err)
	}

	// Same name in another tribe is fine.
	other := e.seedTribe(t, "Bree")
	if _, err := e.chores.Create(other.ID, ChoreInput{Name: "Dishes", PointsValue: 5}); err != nil {
		t.Errorf("same name in other tribe: %v", err)
	}
}

func TestChoreCreateAssigneeChecks(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	other := e.seedTribe(t, "Bree")
	outsider := e.seedMember(t, "outsider", other)

	bogus := int64(9999)
	if _, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5, AssignedTo: &bogus}); !apperr.IsInvalid(err) {
		t.Errorf("missing assignee: expected invalid, got %v", err)
	}
	if _, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5, AssignedTo: &outsider.ID}); !apperr.IsInvalid(err) {
		t.Errorf("cross-tribe assignee: expected invalid, got %v", err)
	}
}

func TestChoreUpdateValidation(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")

	chore, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	if _, err := e.chores.Update(9999, UpdateInput{ID: 9999, ChoreInput: ChoreInput{Name: "X", PointsValue: 1}, TribeID: tribe.ID}); !apperr.IsNotFound(err) {
		t.Errorf("missing chore: expected not-found, got %v", err)
	}

	// Body id must match the path id.
	if _, err := e.chores.Update(chore.ID, UpdateInput{ID: chore.ID + 1, ChoreInput: ChoreInput{Name: "Dishes", PointsValue: 5}, TribeID: tribe.ID}); !apperr.IsInvalid(err) {
		t.Errorf("id mismatch: expected invalid, got %v", err)
	}

	updated, err := e.chores.Update(chore.ID, UpdateInput{
		ID:         chore.ID,
		ChoreInput: ChoreInput{Name: "Dishes and pans", PointsValue: 8},
		TribeID:    tribe.ID,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("update chore: %v", err)
	}
	if updated.Name != "Dishes and pans" || updated.PointsValue != 8 {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestChoreAssignUnassign(t *testing.T) {
	e := setupServices(t)
	tribe := e.seedTribe(t, "Shire")
	member := e.seedMember(t, "frodo", tribe)

	chore, err := e.chores.Create(tribe.ID, ChoreInput{Name: "Dishes", PointsValue: 5})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	if _, err := e.chores.Assign(9999, member.ID); !apperr.IsNotFound(err) {
		t.Errorf("missing chore: expected not-found, got %v", err)
	}

	assigned, err := e.chores.Assign(chore.ID, member.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.AssignedTo == nil || *assigned.AssignedTo != member.ID {
		t.Fatalf("assigned_to = %v, want %d", assigned.AssignedTo, member.ID)
	}

	unassigned, err := e.chores.Unassign(chore.ID)
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if unassigned.AssignedTo != nil {
		t.Errorf("assigned_to = %v after unassign, want nil", unassigned.AssignedTo)
	}
}
