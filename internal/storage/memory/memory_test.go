package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchspace/storefront/internal/storage"
)

func TestCreateUser_SequentialIDsFromOne(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		u, err := s.CreateUser(ctx, fmt.Sprintf("user%d", i), "pw")
		require.NoError(t, err)
		assert.Equal(t, int64(i), u.ID, "ids are strictly increasing from 1 with no gaps")
	}
}

func TestCreateUser_Scenario(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, "alice", "x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)

	bob, err := s.CreateUser(ctx, "bob", "y")
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.ID)

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	_, err = s.GetUserByUsername(ctx, "carol")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateUser_DuplicateUsernameRejected(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "x")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice", "y")
	assert.ErrorIs(t, err, storage.ErrUsernameTaken)

	// The failed attempt must not burn the rejected record into the index,
	// and getUserByUsername still yields exactly the first record.
	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Password)
}

func TestGetUser_NotFound(t *testing.T) {
	s := New()

	_, err := s.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetUser_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "alice", "x")
	require.NoError(t, err)

	created.Username = "mallory"

	got, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username, "mutating a returned record must not affect the store")
}

func TestGetReviews_EmptyBeforeAnyCreate(t *testing.T) {
	s := New()

	reviews, err := s.GetReviews(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestCreateReview_Scenario(t *testing.T) {
	s := New()
	ctx := context.Background()

	r1, err := s.CreateReview(ctx, 42, 1, "alice", 5, "Great!")
	require.NoError(t, err)
	assert.Equal(t, int64(1), r1.ID)
	assert.Equal(t, int64(42), r1.ProductID)
	assert.Equal(t, int64(1), r1.UserID)
	assert.Equal(t, "alice", r1.Username)
	assert.Equal(t, 5, r1.Rating)
	assert.Equal(t, "Great!", r1.Comment)
	assert.False(t, r1.CreatedAt.IsZero())

	r2, err := s.CreateReview(ctx, 42, 2, "bob", 3, "OK")
	require.NoError(t, err)
	assert.Equal(t, int64(2), r2.ID)

	got, err := s.GetReviews(ctx, 42)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, *r1, got[0])
	assert.Equal(t, *r2, got[1])
}

func TestCreateReview_NotIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	r1, err := s.CreateReview(ctx, 7, 1, "alice", 4, "again")
	require.NoError(t, err)
	r2, err := s.CreateReview(ctx, 7, 1, "alice", 4, "again")
	require.NoError(t, err)

	assert.NotEqual(t, r1.ID, r2.ID, "identical arguments still produce distinct reviews")

	got, err := s.GetReviews(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCreateReview_GlobalCounterAcrossProducts(t *testing.T) {
	s := New()
	ctx := context.Background()

	r1, err := s.CreateReview(ctx, 1, 1, "alice", 5, "a")
	require.NoError(t, err)
	r2, err := s.CreateReview(ctx, 2, 1, "alice", 5, "b")
	require.NoError(t, err)
	r3, err := s.CreateReview(ctx, 1, 1, "alice", 5, "c")
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, []int64{r1.ID, r2.ID, r3.ID})
}

func TestCreateReview_OrderPreserved(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 20
	for i := 0; i < n; i++ {
		_, err := s.CreateReview(ctx, 5, 1, "alice", 3, fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	got, err := s.GetReviews(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprintf("comment %d", i), got[i].Comment)
		assert.Equal(t, int64(i+1), got[i].ID)
	}
}

func TestCreateReview_RoundTripIdentical(t *testing.T) {
	s := New()
	s.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	ctx := context.Background()

	created, err := s.CreateReview(ctx, 42, 1, "alice", 5, "Great!")
	require.NoError(t, err)

	got, err := s.GetReviews(ctx, 42)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *created, got[0], "fetched review matches the created one field for field")
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), got[0].CreatedAt)
}

func TestGetReviews_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateReview(ctx, 9, 1, "alice", 5, "original")
	require.NoError(t, err)

	got, _ := s.GetReviews(ctx, 9)
	got[0].Comment = "tampered"

	again, _ := s.GetReviews(ctx, 9)
	assert.Equal(t, "original", again[0].Comment)
}

func TestConcurrentCreates_NoDuplicateOrLostIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	userIDs := make(chan int64, workers*perWorker)
	reviewIDs := make(chan int64, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				u, err := s.CreateUser(ctx, fmt.Sprintf("u-%d-%d", w, i), "pw")
				assert.NoError(t, err)
				userIDs <- u.ID

				r, err := s.CreateReview(ctx, int64(w%3), u.ID, u.Username, 4, "c")
				assert.NoError(t, err)
				reviewIDs <- r.ID
			}
		}(w)
	}
	wg.Wait()
	close(userIDs)
	close(reviewIDs)

	assertDense := func(ch chan int64) {
		var ids []int64
		for id := range ch {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		require.Len(t, ids, workers*perWorker)
		for i, id := range ids {
			assert.Equal(t, int64(i+1), id, "no duplicate, no lost identifier")
		}
	}
	assertDense(userIDs)
	assertDense(reviewIDs)
}

func TestReviewStoreHasNoConceptOfProductExistence(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Product 123456 exists nowhere; the store appends regardless.
	r, err := s.CreateReview(ctx, 123456, 1, "alice", 1, "bad")
	require.NoError(t, err)
	assert.Equal(t, int64(123456), r.ProductID)
}
