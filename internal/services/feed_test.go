package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/CamiloArboledaG/reviewHub/internal/config"
	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/CamiloArboledaG/reviewHub/pkg/queue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type feedFixture struct {
	users      *fakeUserStore
	follows    *fakeFollowStore
	reviews    *fakeReviewStore
	categories *fakeCategoryStore
	items      *fakeItemStore
	producer   *fakePublisher
	service    *FeedService
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()

	f := &feedFixture{
		users:      newFakeUserStore(),
		reviews:    newFakeReviewStore(),
		categories: newFakeCategoryStore(),
		items:      newFakeItemStore(),
		producer:   &fakePublisher{},
	}
	f.follows = newFakeFollowStore(f.users)

	cfg := &config.FeedConfig{DefaultPageSize: 10, MaxPageSize: 50}
	f.service = NewFeedService(f.reviews, f.items, f.categories, f.users, f.follows, f.producer, cfg, testLogger())
	return f
}

func (f *feedFixture) addUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Name: username, Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *feedFixture) addItem(t *testing.T, title string, categoryID uuid.UUID) *models.Item {
	t.Helper()
	item := &models.Item{Title: title, Description: title, CategoryID: categoryID, Status: models.ItemStatusActive}
	require.NoError(t, f.items.Create(context.Background(), item))
	return item
}

func (f *feedFixture) addReview(t *testing.T, user *models.User, item *models.Item, createdAt time.Time) *models.Review {
	t.Helper()
	review := &models.Review{UserID: user.ID, ItemID: item.ID, Rating: 4, Content: "solid", CreatedAt: createdAt}
	require.NoError(t, f.reviews.Create(context.Background(), review))
	return review
}

func TestGetFeedPaginatesNewestFirst(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Hollow Knight", category.ID)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var newest *models.Review
	for i := 0; i < 12; i++ {
		author := f.addUser(t, fmt.Sprintf("author%d", i))
		newest = f.addReview(t, author, item, base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := f.service.GetFeed(context.Background(), "", nil, 1, 5)
	require.NoError(t, err)
	assert.Len(t, page1.Reviews, 5)
	assert.Equal(t, 1, page1.CurrentPage)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, int64(12), page1.TotalReviews)
	assert.True(t, page1.HasNextPage)
	assert.Equal(t, newest.ID, page1.Reviews[0].Review.ID, "first entry must be the newest review")

	page3, err := f.service.GetFeed(context.Background(), "", nil, 3, 5)
	require.NoError(t, err)
	assert.Len(t, page3.Reviews, 2)
	assert.False(t, page3.HasNextPage)

	// Ordering is stable across the page boundary: no review repeats.
	seen := make(map[uuid.UUID]bool)
	for _, p := range []*FeedPage{page1, page3} {
		for _, entry := range p.Reviews {
			assert.False(t, seen[entry.Review.ID], "review served twice")
			seen[entry.Review.ID] = true
		}
	}

	past, err := f.service.GetFeed(context.Background(), "", nil, 4, 5)
	require.NoError(t, err)
	assert.Empty(t, past.Reviews)
	assert.False(t, past.HasNextPage)
}

func TestGetFeedAppliesDefaultAndMaxLimit(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Celeste", category.ID)
	author := f.addUser(t, "maddy")
	f.addReview(t, author, item, time.Now())

	_, err := f.service.GetFeed(context.Background(), "", nil, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, f.reviews.lastLimit, "zero limit falls back to the default page size")

	_, err = f.service.GetFeed(context.Background(), "", nil, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, f.reviews.lastLimit, "oversized limit is clamped")

	_, err = f.service.GetFeed(context.Background(), "", nil, 0, 5)
	require.NoError(t, err)
}

func TestGetFeedUnknownCategorySlugs(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Tunic", category.ID)
	author := f.addUser(t, "fox")
	f.addReview(t, author, item, time.Now())

	page, err := f.service.GetFeed(context.Background(), "", []string{"no-such-slug"}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Reviews)
	assert.Equal(t, int64(0), page.TotalReviews)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.Equal(t, 0, f.reviews.listCalls, "unresolvable slugs must short-circuit before hitting reviews")
}

func TestGetFeedCategoryWithoutItems(t *testing.T) {
	f := newFeedFixture(t)
	f.categories.add("Books", "book")

	page, err := f.service.GetFeed(context.Background(), "", []string{"book"}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Reviews)
	assert.Equal(t, 0, f.reviews.listCalls)
}

func TestGetFeedFiltersByCategory(t *testing.T) {
	f := newFeedFixture(t)
	games := f.categories.add("Games", "game")
	movies := f.categories.add("Movies", "movie")
	gameItem := f.addItem(t, "Outer Wilds", games.ID)
	movieItem := f.addItem(t, "Arrival", movies.ID)

	author := f.addUser(t, "timber")
	gameReview := f.addReview(t, author, gameItem, time.Now())
	other := f.addUser(t, "hearth")
	f.addReview(t, other, movieItem, time.Now().Add(time.Minute))

	page, err := f.service.GetFeed(context.Background(), "", []string{"game"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 1)
	assert.Equal(t, gameReview.ID, page.Reviews[0].Review.ID)
	assert.Equal(t, int64(1), page.TotalReviews)
}

func TestGetFeedAnnotatesIsFollowing(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Hades", category.ID)

	viewer := f.addUser(t, "viewer")
	followed := f.addUser(t, "followed")
	stranger := f.addUser(t, "stranger")
	require.NoError(t, f.follows.Create(context.Background(), &models.Follow{FollowerID: viewer.ID, FollowingID: followed.ID}))

	f.addReview(t, followed, item, time.Now())
	f.addReview(t, stranger, item, time.Now().Add(time.Minute))
	f.addReview(t, viewer, item, time.Now().Add(2*time.Minute))

	page, err := f.service.GetFeed(context.Background(), viewer.ID.String(), nil, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 3)

	byAuthor := make(map[uuid.UUID]bool, 3)
	for _, entry := range page.Reviews {
		byAuthor[entry.Review.UserID] = entry.IsFollowing
	}
	assert.True(t, byAuthor[followed.ID])
	assert.False(t, byAuthor[stranger.ID])
	assert.False(t, byAuthor[viewer.ID], "viewer never follows themselves")

	assert.Equal(t, 1, f.follows.followingIDsCalls, "one batched following lookup per page")
}

func TestGetFeedAnonymousViewer(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Inscryption", category.ID)
	author := f.addUser(t, "leshy")
	f.addReview(t, author, item, time.Now())

	page, err := f.service.GetFeed(context.Background(), "", nil, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 1)
	assert.False(t, page.Reviews[0].IsFollowing)
	assert.Equal(t, 0, f.follows.followingIDsCalls, "anonymous requests skip the follow lookup")
}

func TestCreateReview(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Undertale", category.ID)
	author := f.addUser(t, "frisk")

	created, err := f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
		ItemID:  item.ID.String(),
		Rating:  4.5,
		Content: "  spared everyone  ",
	})
	require.NoError(t, err)
	assert.Equal(t, author.ID, created.Review.UserID)
	assert.Equal(t, item.ID, created.Review.ItemID)
	assert.Equal(t, 4.5, created.Review.Rating)
	assert.Equal(t, "spared everyone", created.Review.Content)
	assert.False(t, created.IsFollowing)

	require.Len(t, f.producer.events, 1)
	assert.Equal(t, item.ID.String(), f.producer.events[0].key)
	event, ok := f.producer.events[0].value.(queue.Event)
	require.True(t, ok)
	assert.Equal(t, queue.EventReviewCreated, event.Type)
}

func TestCreateReviewRejectsInvalidRatings(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Braid", category.ID)
	author := f.addUser(t, "tim")

	for _, rating := range []float64{0, 0.3, 0.25, 2.7, 5.5, -1} {
		_, err := f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
			ItemID:  item.ID.String(),
			Rating:  rating,
			Content: "nope",
		})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %v", rating)
	}
}

func TestValidRating(t *testing.T) {
	for _, rating := range []float64{0.5, 1, 2.5, 4.5, 5} {
		assert.True(t, validRating(rating), "rating %v", rating)
	}
	for _, rating := range []float64{0, 0.4, 5.5, 3.25, -0.5} {
		assert.False(t, validRating(rating), "rating %v", rating)
	}
}

func TestCreateReviewRejectsBlankContent(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Fez", category.ID)
	author := f.addUser(t, "gomez")

	_, err := f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
		ItemID:  item.ID.String(),
		Rating:  3,
		Content: "   \n\t ",
	})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestCreateReviewUnknownItem(t *testing.T) {
	f := newFeedFixture(t)
	author := f.addUser(t, "nobody")

	_, err := f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
		ItemID:  uuid.NewString(),
		Rating:  3,
		Content: "ghost item",
	})
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
		ItemID:  "not-a-uuid",
		Rating:  3,
		Content: "ghost item",
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCreateReviewDuplicate(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Portal", category.ID)
	author := f.addUser(t, "chell")

	_, err := f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
		ItemID:  item.ID.String(),
		Rating:  5,
		Content: "the cake is a lie",
	})
	require.NoError(t, err)

	_, err = f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
		ItemID:  item.ID.String(),
		Rating:  4,
		Content: "second thoughts",
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestCreateReviewDuplicateRace(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Portal 2", category.ID)
	author := f.addUser(t, "wheatley")

	// Pre-check sees nothing, the insert itself trips the unique index.
	f.reviews.createErr = gorm.ErrDuplicatedKey

	_, err := f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
		ItemID:  item.ID.String(),
		Rating:  4,
		Content: "space",
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestCreateReviewPublishFailureDoesNotFail(t *testing.T) {
	f := newFeedFixture(t)
	category := f.categories.add("Games", "game")
	item := f.addItem(t, "Rain World", category.ID)
	author := f.addUser(t, "slugcat")
	f.producer.err = fmt.Errorf("broker unreachable")

	created, err := f.service.CreateReview(context.Background(), author.ID.String(), &CreateReviewRequest{
		ItemID:  item.ID.String(),
		Rating:  4.5,
		Content: "brutal ecosystem",
	})
	require.NoError(t, err)
	assert.NotNil(t, created)
}
