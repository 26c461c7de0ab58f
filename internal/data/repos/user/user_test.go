package user

import (
	"testing"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/pkg/pointers"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.DBC(tx)

	repo := NewUserRepo(db, testutil.Logger(t))

	in := &types.User{
		Name:           "Ada",
		Email:          "ada.userrepo@example.com",
		PasswordHash:   "hash",
		Type:           types.UserTypeProfessor,
		RegisterDate:   testutil.Now(),
		Specialization: pointers.String("Computing"),
	}
	saved, err := repo.Save(dbc, in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID <= 0 {
		t.Fatalf("Save: expected generated id, got %d", saved.ID)
	}

	got, err := repo.GetByID(dbc, saved.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "Ada" || got.Type != types.UserTypeProfessor || pointers.Deref(got.Specialization) != "Computing" {
		t.Fatalf("GetByID: unexpected row: %+v", got)
	}
	if !got.RegisterDate.Equal(in.RegisterDate) {
		t.Fatalf("GetByID: register date want=%v got=%v", in.RegisterDate, got.RegisterDate)
	}

	byEmail, err := repo.GetByEmail(dbc, "  ADA.userrepo@example.com ")
	if err != nil || byEmail == nil || byEmail.ID != saved.ID {
		t.Fatalf("GetByEmail: err=%v row=%+v", err, byEmail)
	}

	exists, err := repo.EmailExists(dbc, "ada.userrepo@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists: err=%v exists=%v", err, exists)
	}

	missing, err := repo.GetByID(dbc, saved.ID+1000)
	if err != nil || missing != nil {
		t.Fatalf("GetByID (missing): expected absent, got err=%v row=%+v", err, missing)
	}

	saved.Name = "Ada L."
	saved.Specialization = nil
	ok, err := repo.Update(dbc, saved)
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}
	got, _ = repo.GetByID(dbc, saved.ID)
	if got.Name != "Ada L." || got.Specialization != nil || got.Type != types.UserTypeProfessor {
		t.Fatalf("Update: unexpected row: %+v", got)
	}

	ok, err = repo.Update(dbc, &types.User{ID: saved.ID + 1000, Name: "ghost"})
	if err != nil || ok {
		t.Fatalf("Update (missing): expected false, got ok=%v err=%v", ok, err)
	}

	profs, err := repo.ListByType(dbc, types.UserTypeProfessor)
	if err != nil || len(profs) == 0 {
		t.Fatalf("ListByType: err=%v n=%d", err, len(profs))
	}

	ok, err = repo.Delete(dbc, saved.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(dbc, saved.ID)
	if err != nil || ok {
		t.Fatalf("Delete (again): expected false, got ok=%v err=%v", ok, err)
	}
}

func TestUserRepo_DuplicateEmailIsConflict(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.DBC(tx)
	repo := NewUserRepo(db, testutil.Logger(t))

	first := testutil.SeedStudent(t, tx, "Bo")
	_, err := repo.Save(dbc, &types.User{
		Name:         "Bo 2",
		Email:        first.Email,
		PasswordHash: "x",
		Type:         types.UserTypeStudent,
		RegisterDate: testutil.Now(),
	})
	if !apperr.IsKind(aggregates.MapError("UserRepo.Save", err), apperr.KindConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}
