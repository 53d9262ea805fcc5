package dto

// DefaultPopularCount - размер топа по умолчанию.
const DefaultPopularCount = 10

// IDParam - идентификатор сущности в пути.
type IDParam struct {
	ID int64 `uri:"id"`
}

// FilmLikeParams - параметры пути для лайков.
type FilmLikeParams struct {
	ID     int64 `uri:"id"`
	UserID int64 `uri:"userId"`
}

// FriendParams - параметры пути для операций с друзьями.
type FriendParams struct {
	ID       int64 `uri:"id"`
	FriendID int64 `uri:"friendId"`
}

// CommonFriendsParams - параметры пути для общих друзей.
type CommonFriendsParams struct {
	ID      int64 `uri:"id"`
	OtherID int64 `uri:"otherId"`
}

// PopularQuery - параметры запроса топа фильмов.
type PopularQuery struct {
	Count int `query:"count" validate:"gt=0"`
}
