package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

func TestSubmit_RatingFueraDeRango_NoEscribe(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner", entity.RoleVendor)
	v := f.addVendor(t, owner)
	reviewer := f.addUser(t, "ana", entity.RoleNormalUser)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.comments.Submit(context.Background(), reviewer, entity.VendorTarget(v.ID), dto.CommentRequest{Content: "x", Rating: rating})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr, "rating %d", rating)
		assert.Contains(t, vErr.Fields, "rating")
	}

	reviews, err := f.comments.Reviews(context.Background(), entity.VendorTarget(v.ID))
	require.NoError(t, err)
	assert.Zero(t, reviews.Count)
}

func TestSubmit_RatingsEnBorde(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner", entity.RoleVendor)
	v := f.addVendor(t, owner)
	p := f.addProduct(t, v, "p-1")

	a := f.addUser(t, "ana", entity.RoleNormalUser)
	_, err := f.comments.Submit(context.Background(), a, entity.VendorTarget(v.ID), dto.CommentRequest{Rating: 1})
	require.NoError(t, err)
	_, err = f.comments.Submit(context.Background(), a, entity.ProductTarget(p.ID), dto.CommentRequest{Rating: 5})
	require.NoError(t, err, "el mismo usuario puede reseñar vendor y producto")
}

func TestReviews_SinResenas_PromedioNulo(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner", entity.RoleVendor)
	v := f.addVendor(t, owner)

	reviews, err := f.comments.Reviews(context.Background(), entity.VendorTarget(v.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, reviews.Count)
	assert.Nil(t, reviews.Average)
	assert.Nil(t, reviews.Exact)
	assert.Empty(t, reviews.Items)
}

func TestReviews_PromedioRedondeado(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner", entity.RoleVendor)
	v := f.addVendor(t, owner)
	p := f.addProduct(t, v, "p-1")

	for i, rating := range []int{3, 4, 5} {
		u := f.addUser(t, string(rune('a'+i))+"-user", entity.RoleNormalUser)
		_, err := f.comments.Submit(context.Background(), u, entity.ProductTarget(p.ID), dto.CommentRequest{Content: "ok", Rating: rating})
		require.NoError(t, err)
	}

	reviews, err := f.comments.Reviews(context.Background(), entity.ProductTarget(p.ID))
	require.NoError(t, err)
	assert.Equal(t, 3, reviews.Count)
	require.NotNil(t, reviews.Average)
	assert.Equal(t, 4, *reviews.Average)
	require.NotNil(t, reviews.Exact)
	assert.Equal(t, "4.00", *reviews.Exact)
	require.Len(t, reviews.Items, 3)
}

func TestReviews_EmpateRedondeaAPar(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner", entity.RoleVendor)
	v := f.addVendor(t, owner)

	for i, rating := range []int{2, 3} {
		u := f.addUser(t, string(rune('a'+i))+"-user", entity.RoleNormalUser)
		_, err := f.comments.Submit(context.Background(), u, entity.VendorTarget(v.ID), dto.CommentRequest{Rating: rating})
		require.NoError(t, err)
	}

	reviews, err := f.comments.Reviews(context.Background(), entity.VendorTarget(v.ID))
	require.NoError(t, err)
	require.NotNil(t, reviews.Average)
	assert.Equal(t, 2, *reviews.Average, "2.5 redondea a 2")
}

func TestSubmit_Duplicada_PrimeraIntacta(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner", entity.RoleVendor)
	v := f.addVendor(t, owner)
	ana := f.addUser(t, "ana", entity.RoleNormalUser)
	target := entity.VendorTarget(v.ID)

	_, err := f.comments.Submit(context.Background(), ana, target, dto.CommentRequest{Content: "primera", Rating: 4})
	require.NoError(t, err)

	_, err = f.comments.Submit(context.Background(), ana, target, dto.CommentRequest{Content: "segunda", Rating: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)

	reviews, err := f.comments.Reviews(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, reviews.Items, 1)
	assert.Equal(t, "primera", reviews.Items[0].Content)
	assert.Equal(t, 4, reviews.Items[0].Rating)
}

func TestSubmit_Concurrente_UnaSolaPersiste(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner", entity.RoleVendor)
	v := f.addVendor(t, owner)
	ana := f.addUser(t, "ana", entity.RoleNormalUser)
	target := entity.VendorTarget(v.ID)

	const attempts = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, dupes  int
		unexpected []error
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			<-start
			_, err := f.comments.Submit(context.Background(), ana, target, dto.CommentRequest{Rating: rating})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrDuplicateReview):
				dupes++
			default:
				unexpected = append(unexpected, err)
			}
		}(i%5 + 1)
	}
	close(start)
	wg.Wait()

	assert.Empty(t, unexpected)
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dupes)

	n, err := f.store.Comments().CountByUserAndTarget(context.Background(), ana.UserID, target)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSubmit_DestinoInexistente(t *testing.T) {
	f := newFixture(t)
	ana := f.addUser(t, "ana", entity.RoleNormalUser)

	_, err := f.comments.Submit(context.Background(), ana, entity.ProductTarget("no-existe"), dto.CommentRequest{Rating: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_SinActor(t *testing.T) {
	f := newFixture(t)
	_, err := f.comments.Submit(context.Background(), nil, entity.VendorTarget("v"), dto.CommentRequest{Rating: 3})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
