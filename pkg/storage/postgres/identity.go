package postgres

import (
	"context"

	"github.com/lib/pq"

	"github.com/studyatlas/studyatlas/pkg/api"
)

// --- Users (admin login principals) ---

func (s *Store) CreateUser(ctx context.Context, in *api.User) (*api.User, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	var u api.User
	err = db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, is_admin) VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, is_admin`,
		in.Username, in.PasswordHash, in.IsAdmin).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin)
	if err != nil {
		return nil, wrap(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*api.User, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	var u api.User
	err = db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, is_admin FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin)
	if err != nil {
		return nil, wrap(err)
	}
	return &u, nil
}

// --- Active users (site members) ---

const activeUserCols = `id, full_name, email, password_hash, google_id, profile_image,
	saved_articles, saved_scholarships`

func scanActiveUser(r rowScanner) (*api.ActiveUser, error) {
	var u api.ActiveUser
	err := r.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.GoogleID,
		&u.ProfileImage, pq.Array(&u.SavedArticles), pq.Array(&u.SavedScholarships))
	if err != nil {
		return nil, err
	}
	if u.SavedArticles == nil {
		u.SavedArticles = []int64{}
	}
	if u.SavedScholarships == nil {
		u.SavedScholarships = []int64{}
	}
	return &u, nil
}

func (s *Store) CreateActiveUser(ctx context.Context, in *api.ActiveUser) (*api.ActiveUser, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanActiveUser(db.QueryRowContext(ctx,
		`INSERT INTO active_users (full_name, email, password_hash, google_id, profile_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+activeUserCols,
		in.FullName, in.Email, in.PasswordHash, in.GoogleID, in.ProfileImage))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

func (s *Store) GetActiveUserByEmail(ctx context.Context, email string) (*api.ActiveUser, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanActiveUser(db.QueryRowContext(ctx,
		`SELECT `+activeUserCols+` FROM active_users WHERE email = $1`, email))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

func (s *Store) GetActiveUserByID(ctx context.Context, id int64) (*api.ActiveUser, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanActiveUser(db.QueryRowContext(ctx,
		`SELECT `+activeUserCols+` FROM active_users WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

// updateRefs applies an idempotent add or remove on one of the saved
// reference arrays. column is a fixed string, never caller input.
func (s *Store) updateRefs(ctx context.Context, column string, add bool, userID, refID int64) (*api.ActiveUser, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	expr := `CASE WHEN $2 = ANY(` + column + `) THEN ` + column + ` ELSE array_append(` + column + `, $2) END`
	if !add {
		expr = `array_remove(` + column + `, $2)`
	}
	u, err := scanActiveUser(db.QueryRowContext(ctx,
		`UPDATE active_users SET `+column+` = `+expr+` WHERE id = $1 RETURNING `+activeUserCols,
		userID, refID))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

func (s *Store) SaveArticle(ctx context.Context, userID, articleID int64) (*api.ActiveUser, error) {
	return s.updateRefs(ctx, "saved_articles", true, userID, articleID)
}

func (s *Store) UnsaveArticle(ctx context.Context, userID, articleID int64) (*api.ActiveUser, error) {
	return s.updateRefs(ctx, "saved_articles", false, userID, articleID)
}

func (s *Store) SaveScholarship(ctx context.Context, userID, scholarshipID int64) (*api.ActiveUser, error) {
	return s.updateRefs(ctx, "saved_scholarships", true, userID, scholarshipID)
}

func (s *Store) UnsaveScholarship(ctx context.Context, userID, scholarshipID int64) (*api.ActiveUser, error) {
	return s.updateRefs(ctx, "saved_scholarships", false, userID, scholarshipID)
}

// --- Comments ---

func (s *Store) AddComment(ctx context.Context, in *api.Comment) (*api.Comment, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	var c api.Comment
	err = db.QueryRowContext(ctx,
		`INSERT INTO comments (user_id, article_id, content) VALUES ($1, $2, $3)
		RETURNING id, user_id, article_id, content, created_at`,
		in.UserID, in.ArticleID, in.Content).
		Scan(&c.ID, &c.UserID, &c.ArticleID, &c.Content, &c.CreatedAt)
	if err != nil {
		return nil, wrap(err)
	}
	return &c, nil
}

func (s *Store) listComments(ctx context.Context, query string, arg int64) ([]*api.Comment, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	var out []*api.Comment
	for rows.Next() {
		var c api.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.ArticleID, &c.Content, &c.CreatedAt); err != nil {
			return nil, unavailable(err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (s *Store) ListCommentsByUser(ctx context.Context, userID int64) ([]*api.Comment, error) {
	return s.listComments(ctx,
		`SELECT id, user_id, article_id, content, created_at FROM comments
		WHERE user_id = $1 ORDER BY id ASC`, userID)
}

func (s *Store) ListCommentsByArticle(ctx context.Context, articleID int64) ([]*api.Comment, error) {
	return s.listComments(ctx,
		`SELECT id, user_id, article_id, content, created_at FROM comments
		WHERE article_id = $1 ORDER BY id ASC`, articleID)
}
