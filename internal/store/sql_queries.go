package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-user-directory/models"
)

const (
	findUserByID = `SELECT id, username, email, first_name, last_name, enabled, created_at, updated_at
    FROM users
    WHERE id = $1;`

	findUserByUsername = `SELECT id, username, email, first_name, last_name, enabled, created_at, updated_at
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT id, username, email, first_name, last_name, enabled, created_at, updated_at
    FROM users
    WHERE email = $1;`

	existsUserByUsername = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1);`

	existsUserByEmail = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1);`

	createUser = `INSERT INTO users (username, email, first_name, last_name, enabled)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, username, email, first_name, last_name, enabled, created_at, updated_at;`

	updateUser = `UPDATE users
    SET username = $1, email = $2, first_name = $3, last_name = $4, enabled = $5, updated_at = NOW()
    WHERE id = $6
    RETURNING id, username, email, first_name, last_name, enabled, created_at, updated_at;`

	deleteUser = `DELETE FROM users
    WHERE id = $1;`

	insertUserRole = `INSERT INTO user_roles (user_id, role)
    VALUES ($1, $2);`

	deleteUserRoles = `DELETE FROM user_roles
    WHERE user_id = $1;`

	selectRolesByUserIDs = `SELECT user_id, role
    FROM user_roles
    WHERE user_id = ANY($1)
    ORDER BY user_id, role;`
)

// psql builds dynamic queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userColumns is the canonical column list scanned into a [models.User].
var userColumns = []string{
	"id", "username", "email", "first_name", "last_name", "enabled", "created_at", "updated_at",
}

// sortableColumns maps API-level sort field names to database columns.
// Restricting ORDER BY to this whitelist keeps caller input out of raw SQL.
var sortableColumns = map[string]string{
	"id":        "id",
	"username":  "username",
	"email":     "email",
	"firstName": "first_name",
	"lastName":  "last_name",
	"enabled":   "enabled",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// IsSortableField reports whether name is an accepted sort field for the
// user listing endpoints.
func IsSortableField(name string) bool {
	_, ok := sortableColumns[name]
	return ok
}

// likeEscaper neutralises the LIKE metacharacters of a search term so that
// user input always matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPredicate builds the case-insensitive substring match across the four
// searchable text fields.
func searchPredicate(term string) sq.Sqlizer {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	return sq.Or{
		sq.ILike{"username": pattern},
		sq.ILike{"email": pattern},
		sq.ILike{"first_name": pattern},
		sq.ILike{"last_name": pattern},
	}
}

// buildSelectUsersQuery produces the paginated user listing query.
//
// A blank term yields an unfiltered listing; the WHERE clause is simply
// omitted, so a blank search and a plain listing are the same query with the
// same ordering. When no sort field is requested, rows come back in stable
// primary-key order; an explicit sort always gets "id" as a tie-breaker so
// that pages never overlap.
func buildSelectUsersQuery(term string, page models.PageRequest) (string, []any, error) {
	builder := psql.Select(userColumns...).From("users")

	if strings.TrimSpace(term) != "" {
		builder = builder.Where(searchPredicate(strings.TrimSpace(term)))
	}

	if page.SortField != "" {
		column, ok := sortableColumns[page.SortField]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown sort field %q", ErrBuildingSQLQuery, page.SortField)
		}

		direction := "ASC"
		if page.Direction == models.SortDesc {
			direction = "DESC"
		}
		builder = builder.OrderBy(column+" "+direction, "id ASC")
	} else {
		builder = builder.OrderBy("id ASC")
	}

	return builder.
		Limit(uint64(page.Size)).
		Offset(page.Offset()).
		ToSql()
}

// buildCountUsersQuery produces the total-element count query matching
// [buildSelectUsersQuery] for the same term.
func buildCountUsersQuery(term string) (string, []any, error) {
	builder := psql.Select("COUNT(*)").From("users")

	if strings.TrimSpace(term) != "" {
		builder = builder.Where(searchPredicate(strings.TrimSpace(term)))
	}

	return builder.ToSql()
}
