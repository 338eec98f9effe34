package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account CRUD and paginated lookups against the "users" and
// "user_roles" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindAll returns one page of users in stable, resolved order together with
// the total user count. It is the blank-term case of [FindBySearchTerm].
func (r *userRepository) FindAll(ctx context.Context, page models.PageRequest) ([]models.User, int64, error) {
	return r.list(ctx, "", page)
}

// FindBySearchTerm returns one page of users whose username, email, first
// name, or last name contains term as a case-insensitive substring, plus the
// total count of matching users. A blank term matches all users and produces
// the exact result set of [FindAll].
func (r *userRepository) FindBySearchTerm(ctx context.Context, term string, page models.PageRequest) ([]models.User, int64, error) {
	return r.list(ctx, term, page)
}

func (r *userRepository) list(ctx context.Context, term string, page models.PageRequest) ([]models.User, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountUsersQuery(term)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.list").Msg("error: building count query")
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.list").Msg("error: counting users")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	selectQuery, selectArgs, err := buildSelectUsersQuery(term, page)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.list").Msg("error: building select query")
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, selectQuery, selectArgs...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.list").Msg("error: selecting users page")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, page.Size)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email,
			&user.FirstName, &user.LastName, &user.Enabled,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			log.Err(err).Str("func", "*userRepository.list").Msg("error: scanning user row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.list").Msg("error: iterating user rows")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err := r.attachRoles(ctx, users); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// FindByID retrieves the user with the given identifier.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, findUserByID, id)
}

// FindByUsername retrieves the user with the given unique username.
// Absence is reported as [ErrUserNotFound].
func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, findUserByUsername, username)
}

// FindByEmail retrieves the user with the given unique email address.
// Absence is reported as [ErrUserNotFound].
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, findUserByEmail, email)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email,
		&user.FirstName, &user.LastName, &user.Enabled,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: looking up user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	users := []models.User{user}
	if err := r.attachRoles(ctx, users); err != nil {
		return models.User{}, err
	}

	return users[0], nil
}

// Create persists a new user record and its role set in one transaction and
// returns the fully populated [models.User] with server-assigned fields
// (ID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error: beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	saved := user
	err = tx.QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.FirstName, user.LastName, user.Enabled,
	).Scan(
		&saved.ID, &saved.Username, &saved.Email,
		&saved.FirstName, &saved.LastName, &saved.Enabled,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Str("username", user.Username).Msg("error: inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := r.insertRoles(ctx, tx, saved.ID, user.Roles); err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Int64("id", saved.ID).Msg("error: inserting user roles")
		return models.User{}, err
	}
	saved.Roles = user.Roles

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error: committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return saved, nil
}

// Update overwrites the identity attributes, enabled flag, and role set of
// the user with user.ID, refreshing UpdatedAt, all in one transaction.
//
// Error handling:
//   - No matching row → [ErrUserNotFound]; nothing is changed.
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
func (r *userRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error: beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	saved := user
	err = tx.QueryRowContext(ctx, updateUser,
		user.Username, user.Email, user.FirstName, user.LastName, user.Enabled, user.ID,
	).Scan(
		&saved.ID, &saved.Username, &saved.Email,
		&saved.FirstName, &saved.LastName, &saved.Enabled,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.Update").Int64("id", user.ID).Msg("error: updating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, deleteUserRoles, user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Int64("id", user.ID).Msg("error: clearing user roles")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if err := r.insertRoles(ctx, tx, user.ID, user.Roles); err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Int64("id", user.ID).Msg("error: inserting user roles")
		return models.User{}, err
	}
	saved.Roles = user.Roles

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error: committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return saved, nil
}

// Delete removes the user record with the given identifier. Role rows are
// removed by the ON DELETE CASCADE constraint on user_roles.
//
// Returns [ErrUserNotFound] when no record matched, so a second delete of
// the same id always fails rather than succeeding silently.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Int64("id", id).Msg("error: deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Int64("id", id).Msg("error: reading rows affected")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, existsUserByUsername, username)
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, existsUserByEmail, email)
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*userRepository.exists").Msg("error: probing existence")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	return exists, nil
}

// insertRoles writes the role set of one user inside the given transaction.
func (r *userRepository) insertRoles(ctx context.Context, tx *sql.Tx, userID int64, roles []models.Role) error {
	for _, role := range roles {
		if _, err := tx.ExecContext(ctx, insertUserRole, userID, role); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}
	return nil
}

// attachRoles loads the role sets of all given users with one query and
// assigns them in place.
func (r *userRepository) attachRoles(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	ids := make([]int64, 0, len(users))
	index := make(map[int64]int, len(users))
	for i, user := range users {
		ids = append(ids, user.ID)
		index[user.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, selectRolesByUserIDs, ids)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.attachRoles").Msg("error: selecting user roles")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var role models.Role
		if err := rows.Scan(&userID, &role); err != nil {
			log.Err(err).Str("func", "*userRepository.attachRoles").Msg("error: scanning role row")
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if i, ok := index[userID]; ok {
			users[i].Roles = append(users[i].Roles, role)
		}
	}

	return rows.Err()
}
