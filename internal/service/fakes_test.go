package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
	"tilboard/internal/ordering"
)

// In-memory repositories backing the service tests. They mirror the store's
// observable behavior (ordering, not-found wrapping, existence checks) over
// plain maps.

type fakeStore struct {
	users    map[string]*models.User
	projects map[string]*models.Project
	boards   map[string]*models.Board
	columns  map[string]*models.Column
	cards    map[string]*models.Card
	tags     map[string]*models.Tag
	links    map[string]bool // cardID + "/" + tagID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		projects: make(map[string]*models.Project),
		boards:   make(map[string]*models.Board),
		columns:  make(map[string]*models.Column),
		cards:    make(map[string]*models.Card),
		tags:     make(map[string]*models.Tag),
		links:    make(map[string]bool),
	}
}

func linkKey(cardID, tagID string) string { return cardID + "/" + tagID }

// fakeTxManager runs the function directly; isolation is irrelevant against
// an in-memory map.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func (fakeTxManager) ExecOrderedTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// --- users ---

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// --- projects ---

type fakeProjectRepo struct{ s *fakeStore }

func (r *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	cp := *project
	r.s.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := r.s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListByUser(_ context.Context, userID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.s.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeProjectRepo) ExistsByTitleAndUser(_ context.Context, title, userID, excludeID string) (bool, error) {
	for _, p := range r.s.projects {
		if p.UserID == userID && p.Title == title && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := r.s.projects[project.ID]; !ok {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	cp := *project
	r.s.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.projects, id)
	return nil
}

// --- boards ---

type fakeBoardRepo struct{ s *fakeStore }

func (r *fakeBoardRepo) Create(_ context.Context, board *models.Board) error {
	cp := *board
	r.s.boards[board.ID] = &cp
	return nil
}

func (r *fakeBoardRepo) GetByID(_ context.Context, id string) (*models.Board, error) {
	b, ok := r.s.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s: %w", id, domain.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBoardRepo) GetByProject(_ context.Context, projectID string) (*models.Board, error) {
	for _, b := range r.s.boards {
		if b.ProjectID == projectID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("board for project %s: %w", projectID, domain.ErrNotFound)
}

func (r *fakeBoardRepo) ExistsByProject(_ context.Context, projectID string) (bool, error) {
	for _, b := range r.s.boards {
		if b.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBoardRepo) Update(_ context.Context, board *models.Board) error {
	if _, ok := r.s.boards[board.ID]; !ok {
		return fmt.Errorf("board %s: %w", board.ID, domain.ErrNotFound)
	}
	cp := *board
	r.s.boards[board.ID] = &cp
	return nil
}

func (r *fakeBoardRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.boards[id]; !ok {
		return fmt.Errorf("board %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.boards, id)
	return nil
}

// --- columns ---

type fakeColumnRepo struct{ s *fakeStore }

func (r *fakeColumnRepo) Create(_ context.Context, column *models.Column) error {
	cp := *column
	r.s.columns[column.ID] = &cp
	return nil
}

func (r *fakeColumnRepo) GetByID(_ context.Context, id string) (*models.Column, error) {
	c, ok := r.s.columns[id]
	if !ok {
		return nil, fmt.Errorf("column %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeColumnRepo) ListByBoard(_ context.Context, boardID string) ([]models.Column, error) {
	var out []models.Column
	for _, c := range r.s.columns {
		if c.BoardID == boardID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeColumnRepo) CountByBoard(_ context.Context, boardID string) (int, error) {
	n := 0
	for _, c := range r.s.columns {
		if c.BoardID == boardID {
			n++
		}
	}
	return n, nil
}

func (r *fakeColumnRepo) ExistsByBoardAndTitle(_ context.Context, boardID, title, excludeID string) (bool, error) {
	for _, c := range r.s.columns {
		if c.BoardID == boardID && c.Title == title && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeColumnRepo) Update(_ context.Context, column *models.Column) error {
	if _, ok := r.s.columns[column.ID]; !ok {
		return fmt.Errorf("column %s: %w", column.ID, domain.ErrNotFound)
	}
	cp := *column
	r.s.columns[column.ID] = &cp
	return nil
}

func (r *fakeColumnRepo) UpdatePositions(_ context.Context, updates []ordering.Update) error {
	for _, u := range updates {
		c, ok := r.s.columns[u.ID]
		if !ok {
			return fmt.Errorf("column %s: %w", u.ID, domain.ErrNotFound)
		}
		c.Position = u.Position
	}
	return nil
}

func (r *fakeColumnRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.columns[id]; !ok {
		return fmt.Errorf("column %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.columns, id)
	return nil
}

func (r *fakeColumnRepo) DeleteByBoard(_ context.Context, boardID string) error {
	for id, c := range r.s.columns {
		if c.BoardID == boardID {
			delete(r.s.columns, id)
		}
	}
	return nil
}

// --- cards ---

type fakeCardRepo struct{ s *fakeStore }

func (r *fakeCardRepo) Create(_ context.Context, card *models.Card) error {
	cp := *card
	r.s.cards[card.ID] = &cp
	return nil
}

func (r *fakeCardRepo) GetByID(_ context.Context, id string) (*models.Card, error) {
	c, ok := r.s.cards[id]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCardRepo) ListByColumn(_ context.Context, columnID string) ([]models.Card, error) {
	var out []models.Card
	for _, c := range r.s.cards {
		if c.ColumnID == columnID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeCardRepo) ListByProject(_ context.Context, projectID string) ([]models.Card, error) {
	var out []models.Card
	for _, c := range r.s.cards {
		col, ok := r.s.columns[c.ColumnID]
		if !ok {
			continue
		}
		board, ok := r.s.boards[col.BoardID]
		if !ok || board.ProjectID != projectID {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := r.s.columns[out[i].ColumnID], r.s.columns[out[j].ColumnID]
		if ci.Position != cj.Position {
			return ci.Position < cj.Position
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *fakeCardRepo) CountByColumn(_ context.Context, columnID string) (int, error) {
	n := 0
	for _, c := range r.s.cards {
		if c.ColumnID == columnID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCardRepo) Update(_ context.Context, card *models.Card) error {
	if _, ok := r.s.cards[card.ID]; !ok {
		return fmt.Errorf("card %s: %w", card.ID, domain.ErrNotFound)
	}
	cp := *card
	r.s.cards[card.ID] = &cp
	return nil
}

func (r *fakeCardRepo) UpdatePositions(_ context.Context, updates []ordering.Update) error {
	for _, u := range updates {
		c, ok := r.s.cards[u.ID]
		if !ok {
			return fmt.Errorf("card %s: %w", u.ID, domain.ErrNotFound)
		}
		c.Position = u.Position
	}
	return nil
}

func (r *fakeCardRepo) CloseGap(_ context.Context, columnID string, afterPos int) error {
	for _, c := range r.s.cards {
		if c.ColumnID == columnID && c.Position > afterPos {
			c.Position--
		}
	}
	return nil
}

func (r *fakeCardRepo) OpenSlot(_ context.Context, columnID string, fromPos int) error {
	for _, c := range r.s.cards {
		if c.ColumnID == columnID && c.Position >= fromPos {
			c.Position++
		}
	}
	return nil
}

func (r *fakeCardRepo) ShiftRange(_ context.Context, columnID string, from, to, delta int) error {
	for _, c := range r.s.cards {
		if c.ColumnID == columnID && c.Position >= from && c.Position <= to {
			c.Position += delta
		}
	}
	return nil
}

func (r *fakeCardRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.cards[id]; !ok {
		return fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.cards, id)
	return nil
}

func (r *fakeCardRepo) DeleteByColumn(_ context.Context, columnID string) error {
	for id, c := range r.s.cards {
		if c.ColumnID == columnID {
			delete(r.s.cards, id)
		}
	}
	return nil
}

func (r *fakeCardRepo) DeleteByBoard(_ context.Context, boardID string) error {
	for id, c := range r.s.cards {
		if col, ok := r.s.columns[c.ColumnID]; ok && col.BoardID == boardID {
			delete(r.s.cards, id)
		}
	}
	return nil
}

// --- tags ---

type fakeTagRepo struct{ s *fakeStore }

func (r *fakeTagRepo) Create(_ context.Context, tag *models.Tag) error {
	cp := *tag
	r.s.tags[tag.ID] = &cp
	return nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, id string) (*models.Tag, error) {
	t, ok := r.s.tags[id]
	if !ok {
		return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTagRepo) ListByProject(_ context.Context, projectID string) ([]models.Tag, error) {
	var out []models.Tag
	for _, t := range r.s.tags {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTagRepo) ListByCard(_ context.Context, cardID string) ([]models.Tag, error) {
	var out []models.Tag
	for _, t := range r.s.tags {
		if r.s.links[linkKey(cardID, t.ID)] {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTagRepo) ExistsByProjectAndName(_ context.Context, projectID, name, excludeID string) (bool, error) {
	for _, t := range r.s.tags {
		if t.ProjectID == projectID && t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTagRepo) Update(_ context.Context, tag *models.Tag) error {
	if _, ok := r.s.tags[tag.ID]; !ok {
		return fmt.Errorf("tag %s: %w", tag.ID, domain.ErrNotFound)
	}
	cp := *tag
	r.s.tags[tag.ID] = &cp
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.tags[id]; !ok {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.tags, id)
	return nil
}

func (r *fakeTagRepo) DeleteByProject(_ context.Context, projectID string) error {
	for id, t := range r.s.tags {
		if t.ProjectID == projectID {
			delete(r.s.tags, id)
		}
	}
	return nil
}

// --- card-tag links ---

type fakeCardTagRepo struct{ s *fakeStore }

func (r *fakeCardTagRepo) Create(_ context.Context, link *models.CardTag) error {
	key := linkKey(link.CardID, link.TagID)
	if r.s.links[key] {
		return fmt.Errorf("link %s: %w", key, domain.ErrConflict)
	}
	r.s.links[key] = true
	return nil
}

func (r *fakeCardTagRepo) Exists(_ context.Context, cardID, tagID string) (bool, error) {
	return r.s.links[linkKey(cardID, tagID)], nil
}

func (r *fakeCardTagRepo) Delete(_ context.Context, cardID, tagID string) error {
	delete(r.s.links, linkKey(cardID, tagID))
	return nil
}

func (r *fakeCardTagRepo) DeleteByCard(_ context.Context, cardID string) error {
	for key := range r.s.links {
		if strings.HasPrefix(key, cardID+"/") {
			delete(r.s.links, key)
		}
	}
	return nil
}

func (r *fakeCardTagRepo) DeleteByTag(_ context.Context, tagID string) error {
	for key := range r.s.links {
		if strings.HasSuffix(key, "/"+tagID) {
			delete(r.s.links, key)
		}
	}
	return nil
}

func (r *fakeCardTagRepo) DeleteByColumn(ctx context.Context, columnID string) error {
	for id, c := range r.s.cards {
		if c.ColumnID == columnID {
			if err := r.DeleteByCard(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *fakeCardTagRepo) DeleteByBoard(ctx context.Context, boardID string) error {
	for id, c := range r.s.cards {
		if col, ok := r.s.columns[c.ColumnID]; ok && col.BoardID == boardID {
			if err := r.DeleteByCard(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *fakeCardTagRepo) DeleteByProject(ctx context.Context, projectID string) error {
	for id, t := range r.s.tags {
		if t.ProjectID == projectID {
			if err := r.DeleteByTag(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}
