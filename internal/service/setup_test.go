package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tilboard/internal/defaults"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/services"
	"tilboard/internal/service/auth"
)

// testEnv wires every service against one in-memory store so tests exercise
// the real authorization chain and ordering plans end to end.
type testEnv struct {
	store *fakeStore

	users    services.UserService
	projects services.ProjectService
	boards   services.BoardService
	columns  services.ColumnService
	cards    services.CardService
	tags     services.TagService
	cardTags services.CardTagService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore()
	userRepo := &fakeUserRepo{s: store}
	projectRepo := &fakeProjectRepo{s: store}
	boardRepo := &fakeBoardRepo{s: store}
	columnRepo := &fakeColumnRepo{s: store}
	cardRepo := &fakeCardRepo{s: store}
	tagRepo := &fakeTagRepo{s: store}
	cardTagRepo := &fakeCardTagRepo{s: store}

	registry, err := defaults.NewRegistry()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	authorizer := auth.NewOwnerResolver(projectRepo, boardRepo, columnRepo, cardRepo, tagRepo)
	txManager := fakeTxManager{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		store:    store,
		users:    NewUserService(userRepo, fakeTokenProvider{}, logger),
		projects: NewProjectService(projectRepo, userRepo, boardRepo, columnRepo, cardRepo, tagRepo, cardTagRepo, authorizer, txManager, registry, logger),
		boards:   NewBoardService(boardRepo, columnRepo, cardRepo, cardTagRepo, authorizer, txManager, registry, logger),
		columns:  NewColumnService(columnRepo, cardRepo, cardTagRepo, authorizer, txManager, logger),
		cards:    NewCardService(cardRepo, columnRepo, cardTagRepo, tagRepo, authorizer, txManager, logger),
		tags:     NewTagService(tagRepo, cardTagRepo, authorizer, txManager, registry, logger),
		cardTags: NewCardTagService(cardTagRepo, cardRepo, tagRepo, columnRepo, boardRepo, authorizer, logger),
	}
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) Issue(userID string) (string, error) { return "token-" + userID, nil }
func (fakeTokenProvider) Verify(token string) (string, error) { return "", nil }

// seedUser inserts a user directly into the store
func (e *testEnv) seedUser(id string) *models.User {
	u := &models.User{
		ID:        id,
		Username:  "user-" + id,
		Email:     id + "@example.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	e.store.users[id] = u
	return u
}

// seedBareProject inserts a project without a board
func (e *testEnv) seedBareProject(id, userID string) *models.Project {
	p := &models.Project{
		ID:        id,
		UserID:    userID,
		Title:     "project " + id,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	e.store.projects[id] = p
	return p
}

// seedProject inserts a project with an empty board
func (e *testEnv) seedProject(id, userID string) (*models.Project, *models.Board) {
	p := e.seedBareProject(id, userID)

	b := &models.Board{
		ID:        id + "-board",
		ProjectID: id,
		Title:     p.Title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	e.store.boards[b.ID] = b
	return p, b
}

// seedColumn inserts a column at the given position
func (e *testEnv) seedColumn(id, boardID string, position int) *models.Column {
	c := &models.Column{
		ID:        id,
		BoardID:   boardID,
		Title:     "column " + id,
		Position:  position,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	e.store.columns[id] = c
	return c
}

// seedCard inserts a card at the given position
func (e *testEnv) seedCard(id, columnID, userID string, position int) *models.Card {
	c := &models.Card{
		ID:        id,
		ColumnID:  columnID,
		UserID:    userID,
		Title:     "card " + id,
		Position:  position,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	e.store.cards[id] = c
	return c
}

// seedTag inserts a tag
func (e *testEnv) seedTag(id, projectID string) *models.Tag {
	tag := &models.Tag{
		ID:        id,
		ProjectID: projectID,
		Name:      "tag " + id,
		Color:     "#FFADAD",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	e.store.tags[id] = tag
	return tag
}

// columnOrder returns the ids of a board's columns in position order,
// failing if positions are not dense 1..N
func (e *testEnv) columnOrder(t *testing.T, boardID string) []string {
	t.Helper()
	cols, err := (&fakeColumnRepo{s: e.store}).ListByBoard(context.Background(), boardID)
	if err != nil {
		t.Fatalf("list columns: %v", err)
	}
	ids := make([]string, len(cols))
	for i, c := range cols {
		if c.Position != i+1 {
			t.Fatalf("column %s at position %d, want %d", c.ID, c.Position, i+1)
		}
		ids[i] = c.ID
	}
	return ids
}

// cardOrder returns the ids of a column's cards in position order, failing
// if positions are not dense 1..N
func (e *testEnv) cardOrder(t *testing.T, columnID string) []string {
	t.Helper()
	cards, err := (&fakeCardRepo{s: e.store}).ListByColumn(context.Background(), columnID)
	if err != nil {
		t.Fatalf("list cards: %v", err)
	}
	ids := make([]string, len(cards))
	for i, c := range cards {
		if c.Position != i+1 {
			t.Fatalf("card %s at position %d, want %d", c.ID, c.Position, i+1)
		}
		ids[i] = c.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
