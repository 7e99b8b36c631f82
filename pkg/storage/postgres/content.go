package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/validation"
)

// --- Countries ---

const countryCols = `id, name, slug, overview, description, highlights, universities,
	acceptance_rate, language, currency, average_tuition, average_living_cost,
	visa_requirement, popular_cities, top_universities, education_system, image, flag`

func scanCountry(r rowScanner) (*api.Country, error) {
	var c api.Country
	err := r.Scan(&c.ID, &c.Name, &c.Slug, &c.Overview, &c.Description,
		pq.Array(&c.Highlights), &c.Universities, &c.AcceptanceRate, &c.Language,
		&c.Currency, &c.AverageTuition, &c.AverageLivingCost, &c.VisaRequirement,
		pq.Array(&c.PopularCities), pq.Array(&c.TopUniversities), &c.EducationSystem,
		&c.Image, &c.Flag)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) queryCountries(ctx context.Context, query string, args ...interface{}) ([]*api.Country, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	var out []*api.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (s *Store) ListCountries(ctx context.Context) ([]*api.Country, error) {
	return s.queryCountries(ctx,
		`SELECT `+countryCols+` FROM countries ORDER BY name ASC`)
}

func (s *Store) GetCountryBySlug(ctx context.Context, slug string) (*api.Country, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	c, err := scanCountry(db.QueryRowContext(ctx,
		`SELECT `+countryCols+` FROM countries WHERE slug = $1`, slug))
	if err != nil {
		return nil, wrap(err)
	}
	return c, nil
}

func (s *Store) GetCountryByID(ctx context.Context, id int64) (*api.Country, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	c, err := scanCountry(db.QueryRowContext(ctx,
		`SELECT `+countryCols+` FROM countries WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return c, nil
}

func (s *Store) CreateCountry(ctx context.Context, in *api.Country) (*api.Country, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	base := in.Slug
	if base == "" {
		base = validation.Slugify(in.Name)
	}
	slug := base
	for attempt := 2; attempt <= slugAttempts+1; attempt++ {
		c, err := scanCountry(db.QueryRowContext(ctx,
			`INSERT INTO countries (name, slug, overview, description, highlights, universities,
				acceptance_rate, language, currency, average_tuition, average_living_cost,
				visa_requirement, popular_cities, top_universities, education_system, image, flag)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
			RETURNING `+countryCols,
			in.Name, slug, in.Overview, in.Description, pq.Array(in.Highlights),
			in.Universities, in.AcceptanceRate, in.Language, in.Currency, in.AverageTuition,
			in.AverageLivingCost, in.VisaRequirement, pq.Array(in.PopularCities),
			pq.Array(in.TopUniversities), in.EducationSystem, in.Image, in.Flag))
		if err == nil {
			return c, nil
		}
		if isUniqueViolation(err) {
			slug = fmt.Sprintf("%s-%d", base, attempt)
			continue
		}
		return nil, wrap(err)
	}
	return nil, fmt.Errorf("slug %q: %w", base, api.ErrConflict)
}

func (s *Store) UpdateCountry(ctx context.Context, in *api.Country) (*api.Country, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	c, err := scanCountry(db.QueryRowContext(ctx,
		`UPDATE countries SET name=$2, slug = CASE WHEN $3 = '' THEN slug ELSE $3 END,
			overview=$4, description=$5, highlights=$6, universities=$7, acceptance_rate=$8,
			language=$9, currency=$10, average_tuition=$11, average_living_cost=$12,
			visa_requirement=$13, popular_cities=$14, top_universities=$15,
			education_system=$16, image=$17, flag=$18
		WHERE id = $1
		RETURNING `+countryCols,
		in.ID, in.Name, in.Slug, in.Overview, in.Description, pq.Array(in.Highlights),
		in.Universities, in.AcceptanceRate, in.Language, in.Currency, in.AverageTuition,
		in.AverageLivingCost, in.VisaRequirement, pq.Array(in.PopularCities),
		pq.Array(in.TopUniversities), in.EducationSystem, in.Image, in.Flag))
	if err != nil {
		return nil, wrap(err)
	}
	return c, nil
}

func (s *Store) DeleteCountry(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "countries", id)
}

// --- Universities ---

const universityCols = `id, name, description, overview, country, location, founded_year,
	ranking, acceptance_rate, student_population, international_students, academic_calendar,
	programs_offered, tuition_fees, admission_requirements, application_deadlines,
	scholarships_available, campus_life, notable_alumni, facilities, image, logo, website,
	slug, features`

func scanUniversity(r rowScanner) (*api.University, error) {
	var u api.University
	err := r.Scan(&u.ID, &u.Name, &u.Description, &u.Overview, &u.Country, &u.Location,
		&u.FoundedYear, &u.Ranking, &u.AcceptanceRate, &u.StudentPopulation,
		&u.InternationalStudents, &u.AcademicCalendar, pq.Array(&u.ProgramsOffered),
		&u.TuitionFees, pq.Array(&u.AdmissionRequirements), &u.ApplicationDeadlines,
		&u.ScholarshipsAvailable, &u.CampusLife, pq.Array(&u.NotableAlumni),
		pq.Array(&u.Facilities), &u.Image, &u.Logo, &u.Website, &u.Slug, pq.Array(&u.Features))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) queryUniversities(ctx context.Context, query string, args ...interface{}) ([]*api.University, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	var out []*api.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (s *Store) ListUniversities(ctx context.Context) ([]*api.University, error) {
	// ranking ascending, unranked (zero) last
	return s.queryUniversities(ctx,
		`SELECT `+universityCols+` FROM universities
		ORDER BY CASE WHEN ranking = 0 THEN 1 ELSE 0 END, ranking ASC`)
}

func (s *Store) GetUniversityBySlug(ctx context.Context, slug string) (*api.University, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanUniversity(db.QueryRowContext(ctx,
		`SELECT `+universityCols+` FROM universities WHERE slug = $1`, slug))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

func (s *Store) GetUniversityByID(ctx context.Context, id int64) (*api.University, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanUniversity(db.QueryRowContext(ctx,
		`SELECT `+universityCols+` FROM universities WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

func (s *Store) CreateUniversity(ctx context.Context, in *api.University) (*api.University, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	base := in.Slug
	if base == "" {
		base = validation.Slugify(in.Name)
	}
	slug := base
	for attempt := 2; attempt <= slugAttempts+1; attempt++ {
		u, err := scanUniversity(db.QueryRowContext(ctx,
			`INSERT INTO universities (name, description, overview, country, location,
				founded_year, ranking, acceptance_rate, student_population,
				international_students, academic_calendar, programs_offered, tuition_fees,
				admission_requirements, application_deadlines, scholarships_available,
				campus_life, notable_alumni, facilities, image, logo, website, slug, features)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
			RETURNING `+universityCols,
			in.Name, in.Description, in.Overview, in.Country, in.Location, in.FoundedYear,
			in.Ranking, in.AcceptanceRate, in.StudentPopulation, in.InternationalStudents,
			in.AcademicCalendar, pq.Array(in.ProgramsOffered), in.TuitionFees,
			pq.Array(in.AdmissionRequirements), in.ApplicationDeadlines,
			in.ScholarshipsAvailable, in.CampusLife, pq.Array(in.NotableAlumni),
			pq.Array(in.Facilities), in.Image, in.Logo, in.Website, slug, pq.Array(in.Features)))
		if err == nil {
			return u, nil
		}
		if isUniqueViolation(err) {
			slug = fmt.Sprintf("%s-%d", base, attempt)
			continue
		}
		return nil, wrap(err)
	}
	return nil, fmt.Errorf("slug %q: %w", base, api.ErrConflict)
}

func (s *Store) UpdateUniversity(ctx context.Context, in *api.University) (*api.University, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanUniversity(db.QueryRowContext(ctx,
		`UPDATE universities SET name=$2, description=$3, overview=$4, country=$5,
			location=$6, founded_year=$7, ranking=$8, acceptance_rate=$9,
			student_population=$10, international_students=$11, academic_calendar=$12,
			programs_offered=$13, tuition_fees=$14, admission_requirements=$15,
			application_deadlines=$16, scholarships_available=$17, campus_life=$18,
			notable_alumni=$19, facilities=$20, image=$21, logo=$22, website=$23,
			slug = CASE WHEN $24 = '' THEN slug ELSE $24 END, features=$25
		WHERE id = $1
		RETURNING `+universityCols,
		in.ID, in.Name, in.Description, in.Overview, in.Country, in.Location,
		in.FoundedYear, in.Ranking, in.AcceptanceRate, in.StudentPopulation,
		in.InternationalStudents, in.AcademicCalendar, pq.Array(in.ProgramsOffered),
		in.TuitionFees, pq.Array(in.AdmissionRequirements), in.ApplicationDeadlines,
		in.ScholarshipsAvailable, in.CampusLife, pq.Array(in.NotableAlumni),
		pq.Array(in.Facilities), in.Image, in.Logo, in.Website, in.Slug,
		pq.Array(in.Features)))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

func (s *Store) DeleteUniversity(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "universities", id)
}

// --- News ---

const newsCols = `id, title, content, summary, publish_date, image, category, is_featured, slug`

func scanNews(r rowScanner) (*api.News, error) {
	var n api.News
	err := r.Scan(&n.ID, &n.Title, &n.Content, &n.Summary, &n.PublishDate, &n.Image,
		&n.Category, &n.IsFeatured, &n.Slug)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) queryNews(ctx context.Context, query string, args ...interface{}) ([]*api.News, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	var out []*api.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (s *Store) ListNews(ctx context.Context) ([]*api.News, error) {
	return s.queryNews(ctx,
		`SELECT `+newsCols+` FROM news ORDER BY publish_date DESC`)
}

func (s *Store) GetNewsBySlug(ctx context.Context, slug string) (*api.News, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	n, err := scanNews(db.QueryRowContext(ctx,
		`SELECT `+newsCols+` FROM news WHERE slug = $1`, slug))
	if err != nil {
		return nil, wrap(err)
	}
	return n, nil
}

func (s *Store) GetNewsByID(ctx context.Context, id int64) (*api.News, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	n, err := scanNews(db.QueryRowContext(ctx,
		`SELECT `+newsCols+` FROM news WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return n, nil
}

func (s *Store) CreateNews(ctx context.Context, in *api.News) (*api.News, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	base := in.Slug
	if base == "" {
		base = validation.Slugify(in.Title)
	}
	slug := base
	for attempt := 2; attempt <= slugAttempts+1; attempt++ {
		n, err := scanNews(db.QueryRowContext(ctx,
			`INSERT INTO news (title, content, summary, publish_date, image, category,
				is_featured, slug)
			VALUES ($1,$2,$3,CASE WHEN $4 < TIMESTAMPTZ '1970-01-01' THEN NOW() ELSE $4 END,$5,$6,$7,$8)
			RETURNING `+newsCols,
			in.Title, in.Content, in.Summary, in.PublishDate, in.Image, in.Category,
			in.IsFeatured, slug))
		if err == nil {
			return n, nil
		}
		if isUniqueViolation(err) {
			slug = fmt.Sprintf("%s-%d", base, attempt)
			continue
		}
		return nil, wrap(err)
	}
	return nil, fmt.Errorf("slug %q: %w", base, api.ErrConflict)
}

func (s *Store) UpdateNews(ctx context.Context, in *api.News) (*api.News, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	n, err := scanNews(db.QueryRowContext(ctx,
		`UPDATE news SET title=$2, content=$3, summary=$4, image=$5, category=$6,
			is_featured=$7, slug = CASE WHEN $8 = '' THEN slug ELSE $8 END
		WHERE id = $1
		RETURNING `+newsCols,
		in.ID, in.Title, in.Content, in.Summary, in.Image, in.Category, in.IsFeatured,
		in.Slug))
	if err != nil {
		return nil, wrap(err)
	}
	return n, nil
}

func (s *Store) DeleteNews(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "news", id)
}

// --- Menu ---

// menuChildren stores the two-level child list as a JSONB document.
type menuChildren []api.MenuChild

func (m menuChildren) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]api.MenuChild(m))
	return string(b), err
}

func (m *menuChildren) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported menu children type %T", src)
	}
	return json.Unmarshal(data, (*[]api.MenuChild)(m))
}

func (s *Store) ListMenuItems(ctx context.Context) ([]*api.MenuItem, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, url, children FROM menu_items ORDER BY id ASC`)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	var out []*api.MenuItem
	for rows.Next() {
		var mi api.MenuItem
		var children menuChildren
		if err := rows.Scan(&mi.ID, &mi.Title, &mi.URL, &children); err != nil {
			return nil, unavailable(err)
		}
		mi.Children = children
		out = append(out, &mi)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, in *api.MenuItem) (*api.MenuItem, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	var mi api.MenuItem
	var children menuChildren
	err = db.QueryRowContext(ctx,
		`INSERT INTO menu_items (title, url, children) VALUES ($1, $2, $3)
		RETURNING id, title, url, children`,
		in.Title, in.URL, menuChildren(in.Children)).
		Scan(&mi.ID, &mi.Title, &mi.URL, &children)
	if err != nil {
		return nil, wrap(err)
	}
	mi.Children = children
	return &mi, nil
}
