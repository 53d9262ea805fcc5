package entities

// Genre - жанр фильма. Справочные данные, только для чтения.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Mpa - рейтинг Американской киноассоциации. Справочные данные, только для чтения.
type Mpa struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FriendshipStatus - статус направленной связи дружбы.
type FriendshipStatus int64

// StatusConfirmed - единственный поддерживаемый статус.
const StatusConfirmed FriendshipStatus = 1

// String возвращает имя статуса.
func (s FriendshipStatus) String() string {
	if s == StatusConfirmed {
		return "CONFIRMED"
	}
	return "UNKNOWN"
}
