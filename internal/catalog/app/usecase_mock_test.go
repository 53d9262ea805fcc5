package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"filmorate/internal/catalog/adapters/memory"
	"filmorate/internal/catalog/app"
	"filmorate/internal/catalog/domain/entities"
)

var errDatabase = errors.New("connection reset by peer")

func TestAddFriendPersistsOnlyChangedSide(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	users := app.NewUserUseCase(repo, func() time.Time { return fixedNow })

	repo.On("GetByID", mock.Anything, int64(1)).Return(&entities.User{ID: 1, Friends: []int64{2}}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(&entities.User{ID: 2, Friends: []int64{}}, nil)
	repo.On("SetFriendConnection", mock.Anything, int64(2), int64(1), entities.StatusConfirmed).Return(nil)

	require.NoError(t, users.AddFriend(ctx, 1, 2))

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "SetFriendConnection", mock.Anything, int64(1), int64(2), entities.StatusConfirmed)
}

func TestAddFriendNoChangesSkipsWrites(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	users := app.NewUserUseCase(repo, nil)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&entities.User{ID: 1, Friends: []int64{2}}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(&entities.User{ID: 2, Friends: []int64{1}}, nil)

	require.NoError(t, users.AddFriend(ctx, 1, 2))

	repo.AssertNotCalled(t, "SetFriendConnection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveFriendStoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	users := app.NewUserUseCase(repo, nil)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&entities.User{ID: 1, Friends: []int64{2}}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(&entities.User{ID: 2, Friends: []int64{1}}, nil)
	repo.On("RemoveFriendConnection", mock.Anything, int64(1), int64(2)).Return(errDatabase)

	err := users.RemoveFriend(ctx, 1, 2)

	require.ErrorIs(t, err, errDatabase)
	assert.NotErrorIs(t, err, entities.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestUserCreateStoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	users := app.NewUserUseCase(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Name == "dolore" && u.Login == "dolore"
	})).Return(nil, errDatabase)

	_, err := users.Create(ctx, userInput("dolore"))

	require.ErrorIs(t, err, errDatabase)
	repo.AssertExpectations(t)
}

func TestFilmUseCaseStoreFailures(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := app.NewUserUseCase(store.UserRepository(), nil)

	t.Run("top films propagates find all error", func(t *testing.T) {
		films := new(mockFilmRepository)
		uc := app.NewFilmUseCase(films, new(mockLikeRepository), store.ReferenceData(), users)
		films.On("FindAll", mock.Anything).Return(nil, errDatabase)

		_, err := uc.TopFilms(ctx, 10)

		require.ErrorIs(t, err, errDatabase)
		films.AssertExpectations(t)
	})

	t.Run("unchanged like returns without error", func(t *testing.T) {
		films := new(mockFilmRepository)
		likes := new(mockLikeRepository)
		uc := app.NewFilmUseCase(films, likes, store.ReferenceData(), users)

		user, err := users.Create(ctx, userInput("neo"))
		require.NoError(t, err)
		films.On("GetByID", mock.Anything, int64(7)).Return(&entities.Film{ID: 7}, nil)
		likes.On("AddLike", mock.Anything, int64(7), user.ID).Return(false, nil)

		require.NoError(t, uc.AddLike(ctx, 7, user.ID))
		films.AssertExpectations(t)
		likes.AssertExpectations(t)
	})

	t.Run("like store failure is wrapped", func(t *testing.T) {
		films := new(mockFilmRepository)
		likes := new(mockLikeRepository)
		uc := app.NewFilmUseCase(films, likes, store.ReferenceData(), users)

		user, err := users.Create(ctx, userInput("trinity"))
		require.NoError(t, err)
		films.On("GetByID", mock.Anything, int64(7)).Return(&entities.Film{ID: 7}, nil)
		likes.On("RemoveLike", mock.Anything, int64(7), user.ID).Return(false, errDatabase)

		err = uc.RemoveLike(ctx, 7, user.ID)
		require.ErrorIs(t, err, errDatabase)
	})

	t.Run("film lookup failure is not reported as not found", func(t *testing.T) {
		films := new(mockFilmRepository)
		uc := app.NewFilmUseCase(films, new(mockLikeRepository), store.ReferenceData(), users)
		films.On("GetByID", mock.Anything, int64(7)).Return(nil, errDatabase)

		err := uc.AddLike(ctx, 7, 1)
		require.ErrorIs(t, err, errDatabase)
		assert.NotErrorIs(t, err, entities.ErrNotFound)
	})
}
