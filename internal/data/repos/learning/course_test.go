package learning

import (
	"testing"
	"time"

	"github.com/yungbote/edulearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/edulearn-backend/internal/domain"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.DBC(tx)

	repo := NewCourseRepo(db, testutil.Logger(t))
	prof := testutil.SeedProfessor(t, tx, "Prof")

	in := &types.Course{
		Title:        "Zeta Calculus",
		Description:  "limits",
		Price:        99.5,
		Category:     "Math",
		HoursLoad:    40,
		ProfessorID:  prof.ID,
		CreationDate: testutil.Now(),
	}
	saved, err := repo.Save(dbc, in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID <= 0 {
		t.Fatalf("Save: expected generated id")
	}
	testutil.SeedCourse(t, tx, prof.ID, "Algebra", "Math")
	testutil.SeedCourse(t, tx, prof.ID, "Poetry", "Letters")

	got, err := repo.GetByID(dbc, saved.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v row=%+v", err, got)
	}
	if got.Title != in.Title || got.Price != in.Price || got.HoursLoad != 40 || got.Category != "Math" {
		t.Fatalf("GetByID: unexpected row: %+v", got)
	}
	if got.PresentationVideoURL != nil || got.UpdateDate != nil {
		t.Fatalf("GetByID: expected absent optional fields, got %+v", got)
	}
	if got.Professor == nil || got.Professor.ID != prof.ID {
		t.Fatalf("GetByID: expected professor preloaded, got %+v", got.Professor)
	}

	catalog, err := repo.ListCatalog(dbc, "math")
	if err != nil {
		t.Fatalf("ListCatalog: %v", err)
	}
	if len(catalog) != 2 || catalog[0].Title != "Algebra" || catalog[1].Title != "Zeta Calculus" {
		t.Fatalf("ListCatalog: expected alphabetical math courses, got %d", len(catalog))
	}

	found, err := repo.SearchByTitle(dbc, "calc")
	if err != nil || len(found) != 1 || found[0].ID != saved.ID {
		t.Fatalf("SearchByTitle: err=%v n=%d", err, len(found))
	}

	mine, err := repo.ListByProfessor(dbc, prof.ID)
	if err != nil || len(mine) != 3 {
		t.Fatalf("ListByProfessor: err=%v n=%d", err, len(mine))
	}

	cats, err := repo.ListCategories(dbc)
	if err != nil || len(cats) != 2 || cats[0] != "Letters" || cats[1] != "Math" {
		t.Fatalf("ListCategories: err=%v cats=%v", err, cats)
	}

	now := testutil.Now()
	ok, err := repo.UpdatePresentationVideo(dbc, saved.ID, "https://cdn/x.mp4", now)
	if err != nil || !ok {
		t.Fatalf("UpdatePresentationVideo: ok=%v err=%v", ok, err)
	}

	got.Title = "Zeta Calculus II"
	got.Price = 0
	got.UpdateDate = &now
	got.PresentationVideoURL = nil
	ok, err = repo.Update(dbc, got)
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}
	after, _ := repo.GetByID(dbc, saved.ID)
	if after.Title != "Zeta Calculus II" || after.Price != 0 || after.PresentationVideoURL != nil {
		t.Fatalf("Update: expected full-row overwrite, got %+v", after)
	}
	if after.UpdateDate == nil || !after.UpdateDate.Equal(now) {
		t.Fatalf("Update: update date want=%v got=%v", now, after.UpdateDate)
	}

	ok, err = repo.Update(dbc, &types.Course{ID: saved.ID + 999, Title: "x", CreationDate: time.Now()})
	if err != nil || ok {
		t.Fatalf("Update (missing): ok=%v err=%v", ok, err)
	}

	ok, err = repo.Delete(dbc, saved.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	gone, err := repo.GetByID(dbc, saved.ID)
	if err != nil || gone != nil {
		t.Fatalf("GetByID after delete: err=%v row=%+v", err, gone)
	}
}
