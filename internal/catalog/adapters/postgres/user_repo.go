package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	queryInsertUser = `
        INSERT INTO users (email, login, name, birthday)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	queryUpdateUser = `
        UPDATE users
        SET email = $1, login = $2, name = $3, birthday = $4
        WHERE id = $5
    `
	querySelectUser         = `SELECT id, email, login, name, birthday FROM users WHERE id = $1`
	querySelectUsers        = `SELECT id, email, login, name, birthday FROM users ORDER BY id`
	querySelectUserFriends  = `SELECT friend_id FROM friendships WHERE user_id = $1 ORDER BY seq`
	querySelectAllFriends   = `SELECT user_id, friend_id FROM friendships ORDER BY seq`
	querySelectUserLikes    = `SELECT film_id FROM film_likes WHERE user_id = $1 ORDER BY seq`
	querySelectAllUserLikes = `SELECT user_id, film_id FROM film_likes ORDER BY seq`
	queryDeleteUser         = `DELETE FROM users WHERE id = $1`
	queryUpsertFriendship   = `
        INSERT INTO friendships (user_id, friend_id, status_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, friend_id) DO UPDATE SET status_id = EXCLUDED.status_id
    `
	queryDeleteFriendship = `DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2`

	errUserNotFoundFmt = "user with id %d not found"
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create сохраняет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created := *user
	err := r.pool.QueryRow(ctx, queryInsertUser,
		user.Email, user.Login, user.Name, toDate(user.Birthday),
	).Scan(&created.ID)
	if err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, translateError(fmt.Errorf("error creating user: %w", err), errUserNotFoundFmt, user.ID)
	}

	created.Friends = []int64{}
	created.Likes = []int64{}
	log.Debug(ctx, "user created", zap.Int64("user_id", created.ID))
	return &created, nil
}

// Update заменяет поля пользователя. Связи не меняются.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"),
		zap.Int64("user_id", user.ID))

	tag, err := r.pool.Exec(ctx, queryUpdateUser,
		user.Email, user.Login, user.Name, toDate(user.Birthday), user.ID)
	if err != nil {
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, translateError(fmt.Errorf("error updating user: %w", err), errUserNotFoundFmt, user.ID)
	}
	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "user not found")
		return nil, entities.NotFoundError(errUserNotFoundFmt, user.ID)
	}

	return r.GetByID(ctx, user.ID)
}

// GetByID находит пользователя по ID вместе с друзьями и лайками.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "GetByID"))

	user, err := scanUser(r.pool.QueryRow(ctx, querySelectUser, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("user_id", id))
			return nil, entities.NotFoundError(errUserNotFoundFmt, id)
		}
		log.Error(ctx, "error querying user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	friendRows, err := r.pool.Query(ctx, querySelectUserFriends, id)
	if err != nil {
		log.Error(ctx, "error querying user friends", zap.Error(err))
		return nil, fmt.Errorf("error querying user friends: %w", err)
	}
	if user.Friends, err = collectIDs(friendRows); err != nil {
		return nil, fmt.Errorf("error scanning user friends: %w", err)
	}

	likeRows, err := r.pool.Query(ctx, querySelectUserLikes, id)
	if err != nil {
		log.Error(ctx, "error querying user likes", zap.Error(err))
		return nil, fmt.Errorf("error querying user likes: %w", err)
	}
	if user.Likes, err = collectIDs(likeRows); err != nil {
		return nil, fmt.Errorf("error scanning user likes: %w", err)
	}

	return user, nil
}

// FindAll возвращает всех пользователей тремя запросами: пользователи, дружба, лайки.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindAll"))

	rows, err := r.pool.Query(ctx, querySelectUsers)
	if err != nil {
		log.Error(ctx, "error querying users", zap.Error(err))
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	friendRows, err := r.pool.Query(ctx, querySelectAllFriends)
	if err != nil {
		log.Error(ctx, "error querying friendships", zap.Error(err))
		return nil, fmt.Errorf("error querying friendships: %w", err)
	}
	friends, err := collectPairs(friendRows)
	if err != nil {
		return nil, fmt.Errorf("error scanning friendships: %w", err)
	}

	likeRows, err := r.pool.Query(ctx, querySelectAllUserLikes)
	if err != nil {
		log.Error(ctx, "error querying user likes", zap.Error(err))
		return nil, fmt.Errorf("error querying user likes: %w", err)
	}
	likes, err := collectPairs(likeRows)
	if err != nil {
		return nil, fmt.Errorf("error scanning user likes: %w", err)
	}

	for _, user := range users {
		user.Friends = nonNil(friends[user.ID])
		user.Likes = nonNil(likes[user.ID])
	}
	return users, nil
}

// DeleteByID удаляет пользователя. Дружба и лайки удаляются каскадно.
func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "DeleteByID"))

	tag, err := r.pool.Exec(ctx, queryDeleteUser, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "user not found", zap.Int64("user_id", id))
		return entities.NotFoundError(errUserNotFoundFmt, id)
	}
	return nil
}

// SetFriendConnection сохраняет направленную связь fromID -> toID.
func (r *UserRepository) SetFriendConnection(ctx context.Context, fromID, toID int64, status entities.FriendshipStatus) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "SetFriendConnection"),
		zap.Int64("from", fromID), zap.Int64("to", toID))

	if _, err := r.pool.Exec(ctx, queryUpsertFriendship, fromID, toID, int64(status)); err != nil {
		err = translateError(err, "user %d or %d not found", fromID, toID)
		if errors.Is(err, entities.ErrNotFound) || errors.Is(err, entities.ErrValidation) {
			log.Debug(ctx, "friend connection rejected", zap.Error(err))
			return err
		}
		log.Error(ctx, "error storing friend connection", zap.Error(err))
		return fmt.Errorf("error storing friend connection: %w", err)
	}
	return nil
}

// RemoveFriendConnection удаляет направленную связь fromID -> toID.
func (r *UserRepository) RemoveFriendConnection(ctx context.Context, fromID, toID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "RemoveFriendConnection"))

	if _, err := r.pool.Exec(ctx, queryDeleteFriendship, fromID, toID); err != nil {
		log.Error(ctx, "error removing friend connection", zap.Error(err))
		return fmt.Errorf("error removing friend connection: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var birthday pgtype.Date
	if err := row.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &birthday); err != nil {
		return nil, err
	}
	if birthday.Valid {
		user.Birthday = birthday.Time
	}
	user.Friends = []int64{}
	user.Likes = []int64{}
	return &user, nil
}

// toDate переводит нулевую дату в NULL.
func toDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}
