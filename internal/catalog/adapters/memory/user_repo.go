package memory

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/pkg/logger"
)

// Константы для имен методов.
const (
	methodCreateUser    = "UserRepository.Create"
	methodUpdateUser    = "UserRepository.Update"
	methodDeleteUser    = "UserRepository.DeleteByID"
	methodSetFriend     = "UserRepository.SetFriendConnection"
	methodRemoveFriend  = "UserRepository.RemoveFriendConnection"
	logUserCreated      = "user created"
	logUserUpdated      = "user updated"
	logUserDeleted      = "user deleted"
	logUserNotFound     = "user not found"
	logFriendConnected  = "friend connection stored"
	logFriendDisconnect = "friend connection removed"
	errUserNotFoundFm   = "user with id %d not found"
)

// UserRepository реализует repositories.UserRepository поверх Store.
type UserRepository struct {
	store *Store
}

// Create присваивает пользователю новый идентификатор и сохраняет его.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := stripUser(user)
	stored.ID = s.nextUserID.Add(1)
	s.users[stored.ID] = stored

	logger.Log(ctx).With(zap.String("method", methodCreateUser)).
		Debug(ctx, logUserCreated, zap.Int64("user_id", stored.ID))
	return s.hydrateUser(stored), nil
}

// Update заменяет поля существующего пользователя. Друзья и лайки сохраняются.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.Int64("user_id", user.ID))

	if _, ok := s.users[user.ID]; !ok {
		log.Debug(ctx, logUserNotFound)
		return nil, entities.NotFoundError(errUserNotFoundFm, user.ID)
	}
	stored := stripUser(user)
	s.users[user.ID] = stored

	log.Debug(ctx, logUserUpdated)
	return s.hydrateUser(stored), nil
}

// GetByID возвращает пользователя со связями.
func (r *UserRepository) GetByID(_ context.Context, id int64) (*entities.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, entities.NotFoundError(errUserNotFoundFm, id)
	}
	return s.hydrateUser(user), nil
}

// FindAll возвращает всех пользователей по возрастанию id.
func (r *UserRepository) FindAll(_ context.Context) ([]*entities.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*entities.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, s.hydrateUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// DeleteByID удаляет пользователя, его связи дружбы в обе стороны и его лайки.
func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int64("user_id", id))

	if _, ok := s.users[id]; !ok {
		log.Debug(ctx, logUserNotFound)
		return entities.NotFoundError(errUserNotFoundFm, id)
	}
	delete(s.users, id)
	delete(s.friends, id)
	for from := range s.friends {
		s.friends[from] = removeEdge(s.friends[from], id)
	}
	if likes, ok := s.userLikes[id]; ok {
		for _, filmID := range likes.Values() {
			if set, ok := s.filmLikes[filmID]; ok {
				set.Remove(id)
			}
		}
		delete(s.userLikes, id)
	}

	log.Debug(ctx, logUserDeleted)
	return nil
}

// SetFriendConnection сохраняет направленную связь from -> to. Повторный вызов обновляет статус.
func (r *UserRepository) SetFriendConnection(ctx context.Context, fromID, toID int64, status entities.FriendshipStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range []int64{fromID, toID} {
		if _, ok := s.users[id]; !ok {
			return entities.NotFoundError(errUserNotFoundFm, id)
		}
	}

	edges := s.friends[fromID]
	for i := range edges {
		if edges[i].to == toID {
			edges[i].status = status
			return nil
		}
	}
	s.friends[fromID] = append(edges, friendEdge{to: toID, status: status})

	logger.Log(ctx).With(zap.String("method", methodSetFriend)).
		Debug(ctx, logFriendConnected, zap.Int64("from", fromID), zap.Int64("to", toID))
	return nil
}

// RemoveFriendConnection удаляет направленную связь from -> to, если она есть.
func (r *UserRepository) RemoveFriendConnection(ctx context.Context, fromID, toID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if edges, ok := s.friends[fromID]; ok {
		s.friends[fromID] = removeEdge(edges, toID)
	}

	logger.Log(ctx).With(zap.String("method", methodRemoveFriend)).
		Debug(ctx, logFriendDisconnect, zap.Int64("from", fromID), zap.Int64("to", toID))
	return nil
}

func removeEdge(edges []friendEdge, to int64) []friendEdge {
	out := edges[:0]
	for _, e := range edges {
		if e.to != to {
			out = append(out, e)
		}
	}
	return out
}

func stripUser(user *entities.User) *entities.User {
	stored := *user
	stored.Friends = nil
	stored.Likes = nil
	return &stored
}
