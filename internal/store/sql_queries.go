package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/notelock/notelock/models"
)

const (
	createUser = `INSERT INTO users (login, password_hash, first_name, last_name)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, password_hash, first_name, last_name, created_at;`

	createProfile = `INSERT INTO profiles (user_id) VALUES ($1);`

	findUserByLogin = `SELECT user_id, login, password_hash, first_name, last_name, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, password_hash, first_name, last_name, created_at
    FROM users
    WHERE user_id = $1;`

	updateUserPassword = `UPDATE users SET password_hash = $2 WHERE user_id = $1;`

	deleteUser = `DELETE FROM users WHERE user_id = $1;`

	getProfileByUserID = `SELECT profile_id, user_id, COALESCE(pin_hash, ''), COALESCE(picture_path, ''), updated_at
    FROM profiles
    WHERE user_id = $1;`

	setProfilePin = `UPDATE profiles
    SET pin_hash = $2, updated_at = NOW()
    WHERE user_id = $1;`

	selectPinForUpdate = `SELECT COALESCE(pin_hash, '')
    FROM profiles
    WHERE user_id = $1
    FOR UPDATE;`

	updateUserNames = `UPDATE users SET first_name = $2, last_name = $3 WHERE user_id = $1;`

	updateProfilePicture = `UPDATE profiles
    SET picture_path = CASE WHEN $2 = '' THEN picture_path ELSE $2 END,
        updated_at = NOW()
    WHERE user_id = $1;`

	getNote = `SELECT note_id, user_id, title, description, tag, color, is_hidden, is_deleted, created_at, updated_at
    FROM notes
    WHERE note_id = $1 AND user_id = $2 AND is_deleted = FALSE;`

	createNote = `INSERT INTO notes (user_id, title, description, tag, color, is_hidden)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING note_id, user_id, title, description, tag, color, is_hidden, is_deleted, created_at, updated_at;`

	updateNote = `UPDATE notes
    SET title = $3, description = $4, tag = $5, color = $6, is_hidden = $7, updated_at = NOW()
    WHERE note_id = $1 AND user_id = $2 AND is_deleted = FALSE
    RETURNING note_id, user_id, title, description, tag, color, is_hidden, is_deleted, created_at, updated_at;`

	softDeleteNote = `UPDATE notes
    SET is_deleted = TRUE, updated_at = NOW()
    WHERE note_id = $1 AND user_id = $2 AND is_deleted = FALSE;`

	createImage = `INSERT INTO note_images (image_id, note_id, file_path, width, height)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING image_id, note_id, file_path, width, height, created_at;`

	listImagesByNoteIDs = `SELECT image_id, note_id, file_path, width, height, created_at
    FROM note_images
    WHERE note_id = ANY($1)
    ORDER BY created_at;`

	deleteImage = `DELETE FROM note_images
    USING notes
    WHERE note_images.image_id = $2
      AND note_images.note_id = notes.note_id
      AND notes.user_id = $1
    RETURNING note_images.image_id, note_images.note_id, note_images.file_path,
              note_images.width, note_images.height, note_images.created_at;`
)

var noteColumns = []string{
	"note_id", "user_id", "title", "description", "tag", "color",
	"is_hidden", "is_deleted", "created_at", "updated_at",
}

// likeEscaper neutralizes LIKE metacharacters in a search term so the term
// matches as a literal substring ("100%" must not match every "100").
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListNotesQuery assembles the dynamic filter query. The partition
// constraints (owner, not deleted, hidden flag) are always present; tag,
// color, and search constraints join only when set. Ordering is fixed:
// most recently updated first.
func buildListNotesQuery(filter models.NoteFilter) (string, []any, error) {
	builder := sq.Select(noteColumns...).
		From("notes").
		Where(sq.Eq{
			"user_id":    filter.UserID,
			"is_deleted": false,
			"is_hidden":  filter.Hidden,
		}).
		PlaceholderFormat(sq.Dollar)

	if filter.Tag != nil {
		builder = builder.Where(sq.Expr("LOWER(tag) = LOWER(?)", *filter.Tag))
	}
	if filter.Color != nil {
		builder = builder.Where(sq.Expr("LOWER(color) = LOWER(?)", *filter.Color))
	}
	if filter.Search != nil {
		if term := strings.TrimSpace(*filter.Search); term != "" {
			pattern := "%" + likeEscaper.Replace(term) + "%"
			builder = builder.Where(sq.Or{
				sq.ILike{"title": pattern},
				sq.ILike{"description": pattern},
				sq.ILike{"tag": pattern},
			})
		}
	}

	return builder.OrderBy("updated_at DESC").ToSql()
}

// buildFacetQuery assembles a distinct-values query for one facet axis
// (column) within the owner+hidden partition, optionally constrained by the
// other axis (crossColumn = crossValue). Empty labels are excluded; the
// search term never participates in facet computation.
func buildFacetQuery(column string, userID int64, hidden bool, crossColumn string, crossValue *string) (string, []any, error) {
	builder := sq.Select("DISTINCT " + column).
		From("notes").
		Where(sq.Eq{
			"user_id":    userID,
			"is_deleted": false,
			"is_hidden":  hidden,
		}).
		Where(sq.NotEq{column: ""}).
		PlaceholderFormat(sq.Dollar)

	if crossValue != nil {
		builder = builder.Where(sq.Expr("LOWER("+crossColumn+") = LOWER(?)", *crossValue))
	}

	return builder.ToSql()
}
