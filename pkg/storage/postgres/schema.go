package postgres

import "context"

// schemaStatements bootstrap the durable schema. Arrays use native
// text[]/bigint[] columns; search runs over expression GIN indexes so
// no materialized tsvector column leaks into entity rows.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS scholarships (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		overview TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		highlights TEXT[] NOT NULL DEFAULT '{}',
		amount TEXT NOT NULL DEFAULT '',
		deadline TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT '',
		fields_covered TEXT[] NOT NULL DEFAULT '{}',
		eligibility TEXT NOT NULL DEFAULT '',
		is_renewable BOOLEAN NOT NULL DEFAULT FALSE,
		benefits TEXT[] NOT NULL DEFAULT '{}',
		application_procedure TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		link TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS scholarships_tsv_idx ON scholarships
		USING GIN (to_tsvector('english', title || ' ' || description || ' ' || overview || ' ' || country))`,

	`CREATE TABLE IF NOT EXISTS articles (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		slug TEXT NOT NULL UNIQUE,
		publish_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		author TEXT NOT NULL DEFAULT '',
		author_title TEXT NOT NULL DEFAULT '',
		author_image TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		likes BIGINT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS articles_tsv_idx ON articles
		USING GIN (to_tsvector('english', title || ' ' || content || ' ' || summary))`,

	`CREATE TABLE IF NOT EXISTS countries (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		overview TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		highlights TEXT[] NOT NULL DEFAULT '{}',
		universities INT NOT NULL DEFAULT 0,
		acceptance_rate TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT '',
		average_tuition TEXT NOT NULL DEFAULT '',
		average_living_cost TEXT NOT NULL DEFAULT '',
		visa_requirement TEXT NOT NULL DEFAULT '',
		popular_cities TEXT[] NOT NULL DEFAULT '{}',
		top_universities TEXT[] NOT NULL DEFAULT '{}',
		education_system TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		flag TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS countries_tsv_idx ON countries
		USING GIN (to_tsvector('english', name || ' ' || description || ' ' || overview))`,

	`CREATE TABLE IF NOT EXISTS universities (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		overview TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		founded_year INT NOT NULL DEFAULT 0,
		ranking INT NOT NULL DEFAULT 0,
		acceptance_rate TEXT NOT NULL DEFAULT '',
		student_population INT NOT NULL DEFAULT 0,
		international_students INT NOT NULL DEFAULT 0,
		academic_calendar TEXT NOT NULL DEFAULT '',
		programs_offered TEXT[] NOT NULL DEFAULT '{}',
		tuition_fees TEXT NOT NULL DEFAULT '',
		admission_requirements TEXT[] NOT NULL DEFAULT '{}',
		application_deadlines TEXT NOT NULL DEFAULT '',
		scholarships_available BOOLEAN NOT NULL DEFAULT FALSE,
		campus_life TEXT NOT NULL DEFAULT '',
		notable_alumni TEXT[] NOT NULL DEFAULT '{}',
		facilities TEXT[] NOT NULL DEFAULT '{}',
		image TEXT NOT NULL DEFAULT '',
		logo TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		slug TEXT NOT NULL UNIQUE,
		features TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS universities_tsv_idx ON universities
		USING GIN (to_tsvector('english', name || ' ' || description || ' ' || overview || ' ' || country))`,

	`CREATE TABLE IF NOT EXISTS news (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		publish_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		image TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		slug TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS news_tsv_idx ON news
		USING GIN (to_tsvector('english', title || ' ' || content || ' ' || summary))`,

	`CREATE TABLE IF NOT EXISTS menu_items (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		children JSONB NOT NULL DEFAULT '[]'
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	`CREATE TABLE IF NOT EXISTS active_users (
		id BIGSERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		google_id TEXT NOT NULL DEFAULT '',
		profile_image TEXT NOT NULL DEFAULT '',
		saved_articles BIGINT[] NOT NULL DEFAULT '{}',
		saved_scholarships BIGINT[] NOT NULL DEFAULT '{}'
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		article_id BIGINT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS comments_user_idx ON comments (user_id)`,
	`CREATE INDEX IF NOT EXISTS comments_article_idx ON comments (article_id)`,
}

// EnsureSchema creates all tables and indexes if absent. Safe to run on
// every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return err
	}
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return unavailable(err)
		}
	}
	return nil
}
