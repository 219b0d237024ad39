package service

import (
	"context"
	"errors"
	"testing"

	"tilboard/internal/domain"
	"tilboard/internal/domain/services"
)

func TestCreateBoardSeedsDefaultColumns(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("u1")
	env.seedBareProject("p1", "u1")

	board, err := env.boards.CreateBoard(context.Background(), "p1", "u1", &services.CreateBoardRequest{Title: "Sprint"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	ids := env.columnOrder(t, board.ID)
	if len(ids) != 4 {
		t.Fatalf("got %d default columns, want 4", len(ids))
	}
	titles := make([]string, len(ids))
	for i, id := range ids {
		titles[i] = env.store.columns[id].Title
	}
	want := []string{"To Do", "In Progress", "Done", "Needs Review"}
	if !equalIDs(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

func TestCreateBoardSecondIsConflict(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("u1")
	env.seedProject("p1", "u1")

	_, err := env.boards.CreateBoard(context.Background(), "p1", "u1", &services.CreateBoardRequest{Title: "Another"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestGetBoardViewOrdersContents(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("u1")
	_, board := env.seedProject("p1", "u1")
	env.seedColumn("col2", board.ID, 2)
	env.seedColumn("col1", board.ID, 1)
	env.seedCard("c2", "col1", "u1", 2)
	env.seedCard("c1", "col1", "u1", 1)

	view, err := env.boards.GetBoard(context.Background(), board.ID, "u1")
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if len(view.Columns) != 2 {
		t.Fatalf("got %d columns, want 2", len(view.Columns))
	}
	if view.Columns[0].Column.ID != "col1" || view.Columns[1].Column.ID != "col2" {
		t.Errorf("columns out of order: %s, %s", view.Columns[0].Column.ID, view.Columns[1].Column.ID)
	}
	cards := view.Columns[0].Cards
	if len(cards) != 2 || cards[0].ID != "c1" || cards[1].ID != "c2" {
		t.Errorf("cards out of order: %v", cards)
	}
}

func TestDeleteBoardCascades(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("u1")
	_, board := env.seedProject("p1", "u1")
	env.seedColumn("col1", board.ID, 1)
	env.seedCard("c1", "col1", "u1", 1)
	env.seedTag("t1", "p1")
	env.store.links[linkKey("c1", "t1")] = true

	if err := env.boards.DeleteBoard(context.Background(), board.ID, "u1"); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}

	if _, ok := env.store.boards[board.ID]; ok {
		t.Error("board still present")
	}
	if len(env.store.columns) != 0 || len(env.store.cards) != 0 || len(env.store.links) != 0 {
		t.Errorf("leftovers: %d columns, %d cards, %d links", len(env.store.columns), len(env.store.cards), len(env.store.links))
	}
	if _, ok := env.store.tags["t1"]; !ok {
		t.Error("project tag should survive board deletion")
	}
}

func TestBoardAccessDenied(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("owner")
	env.seedUser("intruder")
	_, board := env.seedProject("p1", "owner")

	if _, err := env.boards.GetBoard(context.Background(), board.ID, "intruder"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("GetBoard err = %v, want ErrForbidden", err)
	}
	if err := env.boards.DeleteBoard(context.Background(), board.ID, "intruder"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("DeleteBoard err = %v, want ErrForbidden", err)
	}
}
