package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"filmorate/internal/catalog/app/validation"
	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/api"
	"filmorate/internal/catalog/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodCreateUser    = "CreateUser"
	methodUpdateUser    = "UpdateUser"
	methodGetUser       = "GetUser"
	methodListUsers     = "ListUsers"
	methodDeleteUser    = "DeleteUser"
	methodAddFriend     = "AddFriend"
	methodRemoveFriend  = "RemoveFriend"
	methodFriends       = "Friends"
	methodCommonFriends = "CommonFriends"

	msgUserCreated        = "user successfully created"
	msgUserUpdated        = "user successfully updated"
	msgUserDeleted        = "user successfully deleted"
	msgFriendAdded        = "friend successfully added"
	msgFriendRemoved      = "friend successfully removed"
	msgFriendshipSame     = "friendship unchanged"
	msgErrUserFailed      = "user operation failed"
	msgErrFriendFailed    = "friendship operation failed"
	msgCommonFriendsFound = "common friends found"

	errCtxValidatingUser  = "validating user"
	errCtxCreatingUser    = "creating user"
	errCtxUpdatingUser    = "updating user"
	errCtxFetchingUser    = "fetching user"
	errCtxListingUsers    = "listing users"
	errCtxDeletingUser    = "deleting user"
	errCtxChangingFriends = "changing friends"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	users     repositories.UserRepository
	validator *validation.UserValidator
}

// NewUserUseCase создает новый экземпляр сервиса пользователей.
// now задает часы для проверки даты рождения, nil означает time.Now.
func NewUserUseCase(users repositories.UserRepository, now func() time.Time) api.UserUseCase {
	return &UserUseCaseImpl{
		users:     users,
		validator: validation.NewUserValidator(now),
	}
}

// Create проверяет входные данные и сохраняет нового пользователя.
// Пустое имя заменяется логином.
func (u *UserUseCaseImpl) Create(ctx context.Context, in entities.UserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser))

	if err := u.validator.ValidateCreate(in); err != nil {
		logFailure(ctx, log, msgErrUserFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	user := &entities.User{}
	user.Apply(in)

	created, err := u.users.Create(ctx, user)
	if err != nil {
		logFailure(ctx, log, msgErrUserFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("user_id", created.ID))
	return created, nil
}

// Update применяет к существующему пользователю только переданные поля.
func (u *UserUseCaseImpl) Update(ctx context.Context, in entities.UserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser))

	if err := u.validator.ValidateUpdate(in); err != nil {
		logFailure(ctx, log, msgErrUserFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}
	log = log.With(zap.Int64("user_id", *in.ID))

	user, err := u.users.GetByID(ctx, *in.ID)
	if err != nil {
		logFailure(ctx, log, msgErrUserFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	user.Apply(in)

	updated, err := u.users.Update(ctx, user)
	if err != nil {
		logFailure(ctx, log, msgErrUserFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// GetByID возвращает пользователя по идентификатору.
func (u *UserUseCaseImpl) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", methodGetUser)), msgErrUserFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	return user, nil
}

// FindAll возвращает всех пользователей по возрастанию id.
func (u *UserUseCaseImpl) FindAll(ctx context.Context) ([]*entities.User, error) {
	users, err := u.users.FindAll(ctx)
	if err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", methodListUsers)), msgErrUserFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}
	return users, nil
}

// Delete удаляет пользователя вместе с его связями.
func (u *UserUseCaseImpl) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int64("user_id", id))

	if err := u.users.DeleteByID(ctx, id); err != nil {
		logFailure(ctx, log, msgErrUserFailed, err)
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

// AddFriend связывает двух пользователей взаимной дружбой.
// Сохраняется только та сторона, которая изменилась.
func (u *UserUseCaseImpl) AddFriend(ctx context.Context, userID, friendID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodAddFriend),
		zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))

	if userID == friendID {
		err := entities.ValidationError("user %d cannot befriend themselves", userID)
		logFailure(ctx, log, msgErrFriendFailed, err)
		return err
	}

	user, friend, err := u.loadPair(ctx, userID, friendID)
	if err != nil {
		logFailure(ctx, log, msgErrFriendFailed, err)
		return err
	}

	changedUser := entities.NewIDSet(user.Friends...).Add(friendID)
	changedFriend := entities.NewIDSet(friend.Friends...).Add(userID)
	if !changedUser && !changedFriend {
		log.Debug(ctx, msgFriendshipSame)
		return nil
	}

	if changedUser {
		if err := u.users.SetFriendConnection(ctx, userID, friendID, entities.StatusConfirmed); err != nil {
			logFailure(ctx, log, msgErrFriendFailed, err)
			return fmt.Errorf("%s: %w", errCtxChangingFriends, err)
		}
	}
	if changedFriend {
		if err := u.users.SetFriendConnection(ctx, friendID, userID, entities.StatusConfirmed); err != nil {
			logFailure(ctx, log, msgErrFriendFailed, err)
			return fmt.Errorf("%s: %w", errCtxChangingFriends, err)
		}
	}

	log.Info(ctx, msgFriendAdded)
	return nil
}

// RemoveFriend разрывает дружбу в обе стороны.
func (u *UserUseCaseImpl) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodRemoveFriend),
		zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))

	if userID == friendID {
		err := entities.ValidationError("user %d cannot unfriend themselves", userID)
		logFailure(ctx, log, msgErrFriendFailed, err)
		return err
	}

	user, friend, err := u.loadPair(ctx, userID, friendID)
	if err != nil {
		logFailure(ctx, log, msgErrFriendFailed, err)
		return err
	}

	changedUser := entities.NewIDSet(user.Friends...).Remove(friendID)
	changedFriend := entities.NewIDSet(friend.Friends...).Remove(userID)
	if !changedUser && !changedFriend {
		log.Debug(ctx, msgFriendshipSame)
		return nil
	}

	if changedUser {
		if err := u.users.RemoveFriendConnection(ctx, userID, friendID); err != nil {
			logFailure(ctx, log, msgErrFriendFailed, err)
			return fmt.Errorf("%s: %w", errCtxChangingFriends, err)
		}
	}
	if changedFriend {
		if err := u.users.RemoveFriendConnection(ctx, friendID, userID); err != nil {
			logFailure(ctx, log, msgErrFriendFailed, err)
			return fmt.Errorf("%s: %w", errCtxChangingFriends, err)
		}
	}

	log.Info(ctx, msgFriendRemoved)
	return nil
}

// Friends возвращает друзей пользователя в порядке их хранения.
func (u *UserUseCaseImpl) Friends(ctx context.Context, userID int64) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFriends), zap.Int64("user_id", userID))

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		logFailure(ctx, log, msgErrFriendFailed, err)
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	return u.resolve(ctx, user.Friends)
}

// CommonFriends возвращает общих друзей двух пользователей в порядке друзей первого.
// Пустое пересечение считается отсутствием результата.
func (u *UserUseCaseImpl) CommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCommonFriends),
		zap.Int64("user_id", userID), zap.Int64("other_id", otherID))

	user, other, err := u.loadPair(ctx, userID, otherID)
	if err != nil {
		logFailure(ctx, log, msgErrFriendFailed, err)
		return nil, err
	}

	common := entities.NewIDSet(user.Friends...).Intersect(entities.NewIDSet(other.Friends...))
	if len(common) == 0 {
		err := entities.NotFoundError("users %d and %d have no common friends", userID, otherID)
		logFailure(ctx, log, msgErrFriendFailed, err)
		return nil, err
	}

	log.Debug(ctx, msgCommonFriendsFound, zap.Int("count", len(common)))
	return u.resolve(ctx, common)
}

func (u *UserUseCaseImpl) loadPair(ctx context.Context, firstID, secondID int64) (*entities.User, *entities.User, error) {
	first, err := u.users.GetByID(ctx, firstID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	second, err := u.users.GetByID(ctx, secondID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	return first, second, nil
}

func (u *UserUseCaseImpl) resolve(ctx context.Context, ids []int64) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(ids))
	for _, id := range ids {
		user, err := u.users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
		}
		users = append(users, user)
	}
	return users, nil
}
