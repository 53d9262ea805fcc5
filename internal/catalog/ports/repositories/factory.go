package repositories

// Factory предоставляет репозитории одного хранилища.
type Factory interface {
	FilmRepository() FilmRepository
	LikeRepository() LikeRepository
	UserRepository() UserRepository
	ReferenceData() ReferenceData
}
