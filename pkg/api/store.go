package api

import "context"

// ContentStore is the per-kind persistence contract for the public
// directory. Both the durable and the ephemeral backend satisfy it with
// identical semantics: lookups return ErrNotFound when nothing matches,
// creates assign the identifier and return the persisted entity, and
// Search* methods cap results at the given limit.
type ContentStore interface {
	ListScholarships(ctx context.Context) ([]*Scholarship, error)
	GetScholarshipBySlug(ctx context.Context, slug string) (*Scholarship, error)
	GetScholarshipByID(ctx context.Context, id int64) (*Scholarship, error)
	CreateScholarship(ctx context.Context, s *Scholarship) (*Scholarship, error)
	UpdateScholarship(ctx context.Context, s *Scholarship) (*Scholarship, error)
	DeleteScholarship(ctx context.Context, id int64) error
	SearchScholarships(ctx context.Context, query string, limit int) ([]*Scholarship, error)

	ListArticles(ctx context.Context) ([]*Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*Article, error)
	GetArticleByID(ctx context.Context, id int64) (*Article, error)
	CreateArticle(ctx context.Context, a *Article) (*Article, error)
	UpdateArticle(ctx context.Context, a *Article) (*Article, error)
	DeleteArticle(ctx context.Context, id int64) error
	SearchArticles(ctx context.Context, query string, limit int) ([]*Article, error)
	LikeArticle(ctx context.Context, articleID, userID int64) (int, error)
	UnlikeArticle(ctx context.Context, articleID, userID int64) (int, error)

	ListCountries(ctx context.Context) ([]*Country, error)
	GetCountryBySlug(ctx context.Context, slug string) (*Country, error)
	GetCountryByID(ctx context.Context, id int64) (*Country, error)
	CreateCountry(ctx context.Context, c *Country) (*Country, error)
	UpdateCountry(ctx context.Context, c *Country) (*Country, error)
	DeleteCountry(ctx context.Context, id int64) error
	SearchCountries(ctx context.Context, query string, limit int) ([]*Country, error)

	ListUniversities(ctx context.Context) ([]*University, error)
	GetUniversityBySlug(ctx context.Context, slug string) (*University, error)
	GetUniversityByID(ctx context.Context, id int64) (*University, error)
	CreateUniversity(ctx context.Context, u *University) (*University, error)
	UpdateUniversity(ctx context.Context, u *University) (*University, error)
	DeleteUniversity(ctx context.Context, id int64) error
	SearchUniversities(ctx context.Context, query string, limit int) ([]*University, error)

	ListNews(ctx context.Context) ([]*News, error)
	GetNewsBySlug(ctx context.Context, slug string) (*News, error)
	GetNewsByID(ctx context.Context, id int64) (*News, error)
	CreateNews(ctx context.Context, n *News) (*News, error)
	UpdateNews(ctx context.Context, n *News) (*News, error)
	DeleteNews(ctx context.Context, id int64) error
	SearchNews(ctx context.Context, query string, limit int) ([]*News, error)

	ListMenuItems(ctx context.Context) ([]*MenuItem, error)
	CreateMenuItem(ctx context.Context, m *MenuItem) (*MenuItem, error)
}

// IdentityStore persists principals and their owned state. Save and
// like operations are idempotent: repeating one in the already-desired
// state is a no-op, never an error.
type IdentityStore interface {
	CreateUser(ctx context.Context, u *User) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	CreateActiveUser(ctx context.Context, u *ActiveUser) (*ActiveUser, error)
	GetActiveUserByEmail(ctx context.Context, email string) (*ActiveUser, error)
	GetActiveUserByID(ctx context.Context, id int64) (*ActiveUser, error)

	SaveArticle(ctx context.Context, userID, articleID int64) (*ActiveUser, error)
	UnsaveArticle(ctx context.Context, userID, articleID int64) (*ActiveUser, error)
	SaveScholarship(ctx context.Context, userID, scholarshipID int64) (*ActiveUser, error)
	UnsaveScholarship(ctx context.Context, userID, scholarshipID int64) (*ActiveUser, error)

	AddComment(ctx context.Context, c *Comment) (*Comment, error)
	ListCommentsByUser(ctx context.Context, userID int64) ([]*Comment, error)
	ListCommentsByArticle(ctx context.Context, articleID int64) ([]*Comment, error)
}

// Store is the full storage contract consumed by the HTTP layer.
type Store interface {
	ContentStore
	IdentityStore
}

// SearchLimit is the per-kind result cap applied identically by the
// indexed path, the fallback path, and the ephemeral path.
const SearchLimit = 10
