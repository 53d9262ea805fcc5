package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/repositories"
	"filmorate/pkg/db/postgres"
	"filmorate/pkg/logger"
)

const (
	queryInsertFilm = `
        INSERT INTO films (name, description, release_date, duration, mpa_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	queryUpdateFilm = `
        UPDATE films
        SET name = $1, description = $2, release_date = $3, duration = $4, mpa_id = $5
        WHERE id = $6
    `
	querySelectFilm = `
        SELECT f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
        FROM films f
        JOIN mpa m ON m.id = f.mpa_id
        WHERE f.id = $1
    `
	querySelectFilms = `
        SELECT f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
        FROM films f
        JOIN mpa m ON m.id = f.mpa_id
        ORDER BY f.id
    `
	querySelectFilmGenres = `
        SELECT g.id, g.name
        FROM film_genres fg
        JOIN genres g ON g.id = fg.genre_id
        WHERE fg.film_id = $1
        ORDER BY g.id
    `
	querySelectAllFilmGenres = `
        SELECT fg.film_id, g.id, g.name
        FROM film_genres fg
        JOIN genres g ON g.id = fg.genre_id
        ORDER BY fg.film_id, g.id
    `
	querySelectFilmLikes    = `SELECT user_id FROM film_likes WHERE film_id = $1 ORDER BY seq`
	querySelectAllFilmLikes = `SELECT film_id, user_id FROM film_likes ORDER BY seq`
	queryDeleteFilmGenres   = `DELETE FROM film_genres WHERE film_id = $1`
	queryInsertFilmGenres   = `
        INSERT INTO film_genres (film_id, genre_id)
        SELECT $1, unnest($2::bigint[])
        ON CONFLICT DO NOTHING
    `
	queryDeleteFilm = `DELETE FROM films WHERE id = $1`

	errFilmNotFoundFmt = "film with id %d not found"
	errFilmRefsFmt     = "mpa or genre referenced by film %q not found"
)

// FilmRepository реализует интерфейс repositories.FilmRepository для работы с Postgres.
type FilmRepository struct {
	pool PgxPoolInterface
}

// NewFilmRepository создает новый экземпляр репозитория фильмов.
func NewFilmRepository(pool PgxPoolInterface) repositories.FilmRepository {
	return &FilmRepository{pool: pool}
}

// Create сохраняет фильм и его жанры в одной транзакции.
func (r *FilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Create"))

	var id int64
	err := postgres.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, queryInsertFilm,
			film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID,
		).Scan(&id); err != nil {
			return translateError(err, errFilmRefsFmt, film.Name)
		}
		return insertGenres(ctx, tx, id, film.GenreIDs())
	})
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) || errors.Is(err, entities.ErrValidation) {
			log.Debug(ctx, "film references rejected", zap.Error(err))
			return nil, err
		}
		log.Error(ctx, "error creating film", zap.Error(err))
		return nil, fmt.Errorf("error creating film: %w", err)
	}

	log.Debug(ctx, "film created", zap.Int64("film_id", id))
	return r.GetByID(ctx, id)
}

// Update заменяет поля фильма и полностью пересобирает его жанры.
func (r *FilmRepository) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Update"),
		zap.Int64("film_id", film.ID))

	err := postgres.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, queryUpdateFilm,
			film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID, film.ID)
		if err != nil {
			return translateError(err, errFilmRefsFmt, film.Name)
		}
		if tag.RowsAffected() == 0 {
			return entities.NotFoundError(errFilmNotFoundFmt, film.ID)
		}
		if _, err := tx.Exec(ctx, queryDeleteFilmGenres, film.ID); err != nil {
			return err
		}
		return insertGenres(ctx, tx, film.ID, film.GenreIDs())
	})
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) || errors.Is(err, entities.ErrValidation) {
			log.Debug(ctx, "film update rejected", zap.Error(err))
			return nil, err
		}
		log.Error(ctx, "error updating film", zap.Error(err))
		return nil, fmt.Errorf("error updating film: %w", err)
	}

	return r.GetByID(ctx, film.ID)
}

func insertGenres(ctx context.Context, tx pgx.Tx, filmID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, queryInsertFilmGenres, filmID, genreIDs); err != nil {
		return translateError(err, "genre referenced by film %d not found", filmID)
	}
	return nil
}

// GetByID находит фильм по ID вместе с жанрами и лайками.
func (r *FilmRepository) GetByID(ctx context.Context, id int64) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "GetByID"))

	film, err := scanFilm(r.pool.QueryRow(ctx, querySelectFilm, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "film not found", zap.Int64("film_id", id))
			return nil, entities.NotFoundError(errFilmNotFoundFmt, id)
		}
		log.Error(ctx, "error querying film by id", zap.Error(err))
		return nil, fmt.Errorf("error querying film by id: %w", err)
	}

	genreRows, err := r.pool.Query(ctx, querySelectFilmGenres, id)
	if err != nil {
		log.Error(ctx, "error querying film genres", zap.Error(err))
		return nil, fmt.Errorf("error querying film genres: %w", err)
	}
	genres, err := collectGenres(genreRows)
	if err != nil {
		return nil, fmt.Errorf("error scanning film genres: %w", err)
	}
	film.Genres = genres

	likeRows, err := r.pool.Query(ctx, querySelectFilmLikes, id)
	if err != nil {
		log.Error(ctx, "error querying film likes", zap.Error(err))
		return nil, fmt.Errorf("error querying film likes: %w", err)
	}
	likes, err := collectIDs(likeRows)
	if err != nil {
		return nil, fmt.Errorf("error scanning film likes: %w", err)
	}
	film.Likes = likes

	return film, nil
}

// FindAll возвращает все фильмы тремя запросами: фильмы, жанры, лайки.
func (r *FilmRepository) FindAll(ctx context.Context) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "FindAll"))

	rows, err := r.pool.Query(ctx, querySelectFilms)
	if err != nil {
		log.Error(ctx, "error querying films", zap.Error(err))
		return nil, fmt.Errorf("error querying films: %w", err)
	}
	films := make([]*entities.Film, 0)
	byID := make(map[int64]*entities.Film)
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning film: %w", err)
		}
		films = append(films, film)
		byID[film.ID] = film
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating films: %w", err)
	}

	genreRows, err := r.pool.Query(ctx, querySelectAllFilmGenres)
	if err != nil {
		log.Error(ctx, "error querying film genres", zap.Error(err))
		return nil, fmt.Errorf("error querying film genres: %w", err)
	}
	for genreRows.Next() {
		var filmID int64
		var g entities.Genre
		if err := genreRows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			genreRows.Close()
			return nil, fmt.Errorf("error scanning film genre: %w", err)
		}
		if film, ok := byID[filmID]; ok {
			film.Genres = append(film.Genres, g)
		}
	}
	genreRows.Close()
	if err := genreRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating film genres: %w", err)
	}

	likeRows, err := r.pool.Query(ctx, querySelectAllFilmLikes)
	if err != nil {
		log.Error(ctx, "error querying film likes", zap.Error(err))
		return nil, fmt.Errorf("error querying film likes: %w", err)
	}
	likes, err := collectPairs(likeRows)
	if err != nil {
		return nil, fmt.Errorf("error scanning film likes: %w", err)
	}
	for id, film := range byID {
		film.Likes = nonNil(likes[id])
	}

	log.Debug(ctx, "films loaded", zap.Int("count", len(films)))
	return films, nil
}

// DeleteByID удаляет фильм. Жанры и лайки удаляются каскадно.
func (r *FilmRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "DeleteByID"))

	tag, err := r.pool.Exec(ctx, queryDeleteFilm, id)
	if err != nil {
		log.Error(ctx, "error deleting film", zap.Error(err))
		return fmt.Errorf("error deleting film: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "film not found", zap.Int64("film_id", id))
		return entities.NotFoundError(errFilmNotFoundFmt, id)
	}

	log.Debug(ctx, "film deleted", zap.Int64("film_id", id))
	return nil
}

func collectGenres(rows pgx.Rows) ([]entities.Genre, error) {
	defer rows.Close()

	genres := make([]entities.Genre, 0)
	for rows.Next() {
		var g entities.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func scanFilm(row pgx.Row) (*entities.Film, error) {
	film := &entities.Film{Genres: []entities.Genre{}, Likes: []int64{}}
	err := row.Scan(
		&film.ID,
		&film.Name,
		&film.Description,
		&film.ReleaseDate,
		&film.Duration,
		&film.Mpa.ID,
		&film.Mpa.Name,
	)
	if err != nil {
		return nil, err
	}
	return film, nil
}
