package services

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/CamiloArboledaG/reviewHub/pkg/mediastore"
	"github.com/google/uuid"
)

func testLogger() *logger.Logger {
	l := logger.NewLogger()
	l.SetOutput(io.Discard)
	return l
}

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Update(_ context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

type fakeFollowStore struct {
	users             *fakeUserStore
	edges             []*models.Follow
	followingIDsCalls int
}

func newFakeFollowStore(users *fakeUserStore) *fakeFollowStore {
	return &fakeFollowStore{users: users}
}

func (s *fakeFollowStore) Create(_ context.Context, follow *models.Follow) error {
	if follow.ID == uuid.Nil {
		follow.ID = uuid.New()
	}
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	s.edges = append(s.edges, follow)
	return nil
}

func (s *fakeFollowStore) Delete(_ context.Context, followerID, followingID uuid.UUID) error {
	for i, edge := range s.edges {
		if edge.FollowerID == followerID && edge.FollowingID == followingID {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeFollowStore) Get(_ context.Context, followerID, followingID uuid.UUID) (*models.Follow, error) {
	for _, edge := range s.edges {
		if edge.FollowerID == followerID && edge.FollowingID == followingID {
			return edge, nil
		}
	}
	return nil, nil
}

func (s *fakeFollowStore) GetFollowing(_ context.Context, userID uuid.UUID) ([]*models.User, error) {
	var users []*models.User
	for _, edge := range s.edges {
		if edge.FollowerID == userID {
			users = append(users, s.users.users[edge.FollowingID])
		}
	}
	return users, nil
}

func (s *fakeFollowStore) GetFollowers(_ context.Context, userID uuid.UUID) ([]*models.User, error) {
	var users []*models.User
	for _, edge := range s.edges {
		if edge.FollowingID == userID {
			users = append(users, s.users.users[edge.FollowerID])
		}
	}
	return users, nil
}

func (s *fakeFollowStore) FollowingIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.followingIDsCalls++
	var ids []uuid.UUID
	for _, edge := range s.edges {
		if edge.FollowerID == userID {
			ids = append(ids, edge.FollowingID)
		}
	}
	return ids, nil
}

type fakeReviewStore struct {
	reviews   []*models.Review
	createErr error
	listCalls int
	lastLimit int
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{}
}

func (s *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	if s.createErr != nil {
		return s.createErr
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	s.reviews = append(s.reviews, review)
	return nil
}

func (s *fakeReviewStore) GetByID(_ context.Context, id uuid.UUID) (*models.Review, error) {
	for _, review := range s.reviews {
		if review.ID == id {
			return review, nil
		}
	}
	return nil, nil
}

func (s *fakeReviewStore) ExistsForUserItem(_ context.Context, userID, itemID uuid.UUID) (bool, error) {
	for _, review := range s.reviews {
		if review.UserID == userID && review.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeReviewStore) ListPage(_ context.Context, itemIDs []uuid.UUID, offset, limit int) ([]*models.Review, error) {
	s.listCalls++
	s.lastLimit = limit

	matched := s.match(itemIDs)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []*models.Review{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *fakeReviewStore) Count(_ context.Context, itemIDs []uuid.UUID) (int64, error) {
	return int64(len(s.match(itemIDs))), nil
}

func (s *fakeReviewStore) match(itemIDs []uuid.UUID) []*models.Review {
	if itemIDs == nil {
		return append([]*models.Review{}, s.reviews...)
	}
	allowed := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		allowed[id] = true
	}
	var matched []*models.Review
	for _, review := range s.reviews {
		if allowed[review.ItemID] {
			matched = append(matched, review)
		}
	}
	return matched
}

type fakeCategoryStore struct {
	categories []*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{}
}

func (s *fakeCategoryStore) add(name, slug string) *models.Category {
	category := &models.Category{ID: uuid.New(), Name: name, Slug: slug}
	s.categories = append(s.categories, category)
	return category
}

func (s *fakeCategoryStore) List(_ context.Context) ([]*models.Category, error) {
	return s.categories, nil
}

func (s *fakeCategoryStore) IDsBySlugs(_ context.Context, slugs []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, category := range s.categories {
		for _, slug := range slugs {
			if category.Slug == slug {
				ids = append(ids, category.ID)
			}
		}
	}
	return ids, nil
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for _, category := range s.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, nil
}

type fakeItemStore struct {
	items map[uuid.UUID]*models.Item
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[uuid.UUID]*models.Item)}
}

func (s *fakeItemStore) Create(_ context.Context, item *models.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.items[item.ID] = item
	return nil
}

func (s *fakeItemStore) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	return s.items[id], nil
}

func (s *fakeItemStore) Search(_ context.Context, categoryID uuid.UUID, search string, offset, limit int) ([]*models.Item, error) {
	matched := s.matchSearch(categoryID, search)
	if offset >= len(matched) {
		return []*models.Item{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *fakeItemStore) CountSearch(_ context.Context, categoryID uuid.UUID, search string) (int64, error) {
	return int64(len(s.matchSearch(categoryID, search))), nil
}

func (s *fakeItemStore) matchSearch(categoryID uuid.UUID, search string) []*models.Item {
	var matched []*models.Item
	for _, item := range s.items {
		if item.CategoryID != categoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Title < matched[j].Title
	})
	return matched
}

func (s *fakeItemStore) IDsByCategoryIDs(_ context.Context, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
	allowed := make(map[uuid.UUID]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		allowed[id] = true
	}
	var ids []uuid.UUID
	for _, item := range s.items {
		if allowed[item.CategoryID] {
			ids = append(ids, item.ID)
		}
	}
	return ids, nil
}

type fakeAvatarStore struct {
	avatars map[uuid.UUID]*models.Avatar
}

func newFakeAvatarStore() *fakeAvatarStore {
	return &fakeAvatarStore{avatars: make(map[uuid.UUID]*models.Avatar)}
}

func (s *fakeAvatarStore) Create(_ context.Context, avatar *models.Avatar) error {
	if avatar.ID == uuid.Nil {
		avatar.ID = uuid.New()
	}
	s.avatars[avatar.ID] = avatar
	return nil
}

func (s *fakeAvatarStore) GetByID(_ context.Context, id uuid.UUID) (*models.Avatar, error) {
	return s.avatars[id], nil
}

func (s *fakeAvatarStore) List(_ context.Context, category string) ([]*models.Avatar, error) {
	var avatars []*models.Avatar
	for _, avatar := range s.avatars {
		if category == "" || avatar.Category == category {
			avatars = append(avatars, avatar)
		}
	}
	return avatars, nil
}

func (s *fakeAvatarStore) ListDefaults(_ context.Context) ([]*models.Avatar, error) {
	var avatars []*models.Avatar
	for _, avatar := range s.avatars {
		if avatar.IsDefault {
			avatars = append(avatars, avatar)
		}
	}
	return avatars, nil
}

func (s *fakeAvatarStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.avatars, id)
	return nil
}

type publishedEvent struct {
	key   string
	value interface{}
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, value interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{key: key, value: value})
	return nil
}

type fakeMediaStore struct {
	uploads   []string
	deleted   []string
	uploadErr error
}

func (m *fakeMediaStore) Upload(_ context.Context, data []byte, contentType, folder string) (*mediastore.UploadResult, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	key := folder + "/" + uuid.NewString()
	m.uploads = append(m.uploads, folder)
	return &mediastore.UploadResult{
		URL: "https://media.test/" + key,
		Key: key,
	}, nil
}

func (m *fakeMediaStore) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]time.Duration)}
}

func (r *fakeRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.revoked[jti] = ttl
	return nil
}

func (r *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := r.revoked[jti]
	return ok, nil
}
