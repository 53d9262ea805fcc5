package dto

import "filmorate/internal/catalog/domain/entities"

// Ref - ссылка на элемент справочника по идентификатору.
type Ref struct {
	ID   *int64 `json:"id"`
	Name string `json:"name,omitempty"`
}

// FilmRequest - тело запросов создания и обновления фильма.
// Отсутствующее поле не меняет значение при обновлении.
type FilmRequest struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ReleaseDate *Date   `json:"releaseDate"`
	Duration    *int    `json:"duration"`
	Mpa         *Ref    `json:"mpa"`
	Genres      *[]Ref  `json:"genres"`
}

// ToInput переводит запрос во входные данные use case.
// Ссылка на справочник без идентификатора является ошибкой валидации.
func (r *FilmRequest) ToInput() (entities.FilmInput, error) {
	in := entities.FilmInput{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: r.ReleaseDate.timePtr(),
		Duration:    r.Duration,
	}
	if r.Mpa != nil {
		if r.Mpa.ID == nil {
			return entities.FilmInput{}, entities.ValidationError("film mpa id is required")
		}
		in.MpaID = r.Mpa.ID
	}
	if r.Genres != nil {
		in.GenreIDs = make([]int64, 0, len(*r.Genres))
		for _, g := range *r.Genres {
			if g.ID == nil {
				return entities.FilmInput{}, entities.ValidationError("film genre id is required")
			}
			in.GenreIDs = append(in.GenreIDs, *g.ID)
		}
	}
	return in, nil
}

// FilmResponse - представление фильма в ответах.
type FilmResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ReleaseDate Date             `json:"releaseDate"`
	Duration    int              `json:"duration"`
	Mpa         entities.Mpa     `json:"mpa"`
	Genres      []entities.Genre `json:"genres"`
	Likes       []int64          `json:"likes"`
}

// NewFilmResponse строит ответ из фильма.
func NewFilmResponse(f *entities.Film) FilmResponse {
	resp := FilmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: Date{Time: f.ReleaseDate},
		Duration:    f.Duration,
		Mpa:         f.Mpa,
		Genres:      f.Genres,
		Likes:       f.Likes,
	}
	if resp.Genres == nil {
		resp.Genres = []entities.Genre{}
	}
	if resp.Likes == nil {
		resp.Likes = []int64{}
	}
	return resp
}

// NewFilmListResponse строит ответ из списка фильмов.
func NewFilmListResponse(films []*entities.Film) []FilmResponse {
	resp := make([]FilmResponse, 0, len(films))
	for _, f := range films {
		resp = append(resp, NewFilmResponse(f))
	}
	return resp
}
