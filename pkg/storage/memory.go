package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/validation"
)

// Memory is the ephemeral store: one keyed map per entity kind with
// per-kind monotonically increasing identifiers starting at 1. It is
// always available and loses everything on process restart. All methods
// are safe for concurrent use.
type Memory struct {
	mu sync.RWMutex

	scholarships map[int64]*api.Scholarship
	articles     map[int64]*api.Article
	countries    map[int64]*api.Country
	universities map[int64]*api.University
	news         map[int64]*api.News
	menu         map[int64]*api.MenuItem
	users        map[int64]*api.User
	activeUsers  map[int64]*api.ActiveUser
	comments     map[int64]*api.Comment

	nextID map[string]int64
}

// NewMemory creates an empty ephemeral store.
func NewMemory() *Memory {
	m := &Memory{nextID: make(map[string]int64)}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.scholarships = make(map[int64]*api.Scholarship)
	m.articles = make(map[int64]*api.Article)
	m.countries = make(map[int64]*api.Country)
	m.universities = make(map[int64]*api.University)
	m.news = make(map[int64]*api.News)
	m.menu = make(map[int64]*api.MenuItem)
	m.users = make(map[int64]*api.User)
	m.activeUsers = make(map[int64]*api.ActiveUser)
	m.comments = make(map[int64]*api.Comment)
}

// Reset clears every collection. Identifier counters keep counting up;
// deleted or cleared identifiers are never reused.
func (m *Memory) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

// next must be called with the write lock held.
func (m *Memory) next(kind string) int64 {
	m.nextID[kind]++
	return m.nextID[kind]
}

// uniqueSlug must be called with at least the read lock held.
func uniqueSlug(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// matches reports whether any field contains the query,
// case-insensitively. This is the same contract as the durable
// backend's non-indexed fallback so the two paths are indistinguishable
// to callers.
func matches(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func cloneInts(v []int64) []int64 {
	if v == nil {
		return nil
	}
	return append([]int64(nil), v...)
}

func cloneScholarship(s *api.Scholarship) *api.Scholarship { cp := *s; return &cp }

func cloneArticle(a *api.Article) *api.Article {
	cp := *a
	cp.Likes = cloneInts(a.Likes)
	return &cp
}

func cloneCountry(c *api.Country) *api.Country { cp := *c; return &cp }

func cloneUniversity(u *api.University) *api.University { cp := *u; return &cp }

func cloneNews(n *api.News) *api.News { cp := *n; return &cp }

func cloneMenuItem(mi *api.MenuItem) *api.MenuItem {
	cp := *mi
	cp.Children = append([]api.MenuChild(nil), mi.Children...)
	return &cp
}

func cloneActiveUser(u *api.ActiveUser) *api.ActiveUser {
	cp := *u
	cp.SavedArticles = cloneInts(u.SavedArticles)
	cp.SavedScholarships = cloneInts(u.SavedScholarships)
	return &cp
}

// --- Scholarships ---

func (m *Memory) ListScholarships(ctx context.Context) ([]*api.Scholarship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*api.Scholarship, 0, len(m.scholarships))
	for _, s := range m.scholarships {
		out = append(out, cloneScholarship(s))
	}
	// most recent first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) GetScholarshipBySlug(ctx context.Context, slug string) (*api.Scholarship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.scholarships {
		if s.Slug == slug {
			return cloneScholarship(s), nil
		}
	}
	return nil, api.ErrNotFound
}

func (m *Memory) GetScholarshipByID(ctx context.Context, id int64) (*api.Scholarship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.scholarships[id]; ok {
		return cloneScholarship(s), nil
	}
	return nil, api.ErrNotFound
}

func (m *Memory) scholarshipSlugTaken(slug string, exceptID int64) bool {
	for _, s := range m.scholarships {
		if s.Slug == slug && s.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *Memory) CreateScholarship(ctx context.Context, s *api.Scholarship) (*api.Scholarship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneScholarship(s)
	cp.ID = m.next("scholarship")
	if cp.Slug == "" {
		cp.Slug = validation.Slugify(cp.Title)
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.scholarshipSlugTaken(sl, cp.ID) })
	m.scholarships[cp.ID] = cp
	return cloneScholarship(cp), nil
}

func (m *Memory) UpdateScholarship(ctx context.Context, s *api.Scholarship) (*api.Scholarship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.scholarships[s.ID]
	if !ok {
		return nil, api.ErrNotFound
	}
	cp := cloneScholarship(s)
	if cp.Slug == "" {
		cp.Slug = cur.Slug
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.scholarshipSlugTaken(sl, cp.ID) })
	m.scholarships[cp.ID] = cp
	return cloneScholarship(cp), nil
}

func (m *Memory) DeleteScholarship(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scholarships[id]; !ok {
		return api.ErrNotFound
	}
	delete(m.scholarships, id)
	return nil
}

func (m *Memory) SearchScholarships(ctx context.Context, query string, limit int) ([]*api.Scholarship, error) {
	all, err := m.ListScholarships(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*api.Scholarship, 0, limit)
	for _, s := range all {
		if matches(query, s.Title, s.Description, s.Overview, s.Country) {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// --- Articles ---

func (m *Memory) ListArticles(ctx context.Context) ([]*api.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*api.Article, 0, len(m.articles))
	for _, a := range m.articles {
		out = append(out, cloneArticle(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishDate.After(out[j].PublishDate) })
	return out, nil
}

func (m *Memory) GetArticleBySlug(ctx context.Context, slug string) (*api.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.articles {
		if a.Slug == slug {
			return cloneArticle(a), nil
		}
	}
	return nil, api.ErrNotFound
}

func (m *Memory) GetArticleByID(ctx context.Context, id int64) (*api.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.articles[id]; ok {
		return cloneArticle(a), nil
	}
	return nil, api.ErrNotFound
}

func (m *Memory) articleSlugTaken(slug string, exceptID int64) bool {
	for _, a := range m.articles {
		if a.Slug == slug && a.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *Memory) CreateArticle(ctx context.Context, a *api.Article) (*api.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneArticle(a)
	cp.ID = m.next("article")
	if cp.Slug == "" {
		cp.Slug = validation.Slugify(cp.Title)
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.articleSlugTaken(sl, cp.ID) })
	if cp.Likes == nil {
		cp.Likes = []int64{}
	}
	m.articles[cp.ID] = cp
	return cloneArticle(cp), nil
}

func (m *Memory) UpdateArticle(ctx context.Context, a *api.Article) (*api.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.articles[a.ID]
	if !ok {
		return nil, api.ErrNotFound
	}
	cp := cloneArticle(a)
	if cp.Slug == "" {
		cp.Slug = cur.Slug
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.articleSlugTaken(sl, cp.ID) })
	// likes are owned by the like/unlike operations, not updates
	cp.Likes = cloneInts(cur.Likes)
	m.articles[cp.ID] = cp
	return cloneArticle(cp), nil
}

func (m *Memory) DeleteArticle(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[id]; !ok {
		return api.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *Memory) SearchArticles(ctx context.Context, query string, limit int) ([]*api.Article, error) {
	all, err := m.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*api.Article, 0, limit)
	for _, a := range all {
		if matches(query, a.Title, a.Content, a.Summary) {
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) LikeArticle(ctx context.Context, articleID, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[articleID]
	if !ok {
		return 0, api.ErrNotFound
	}
	for _, id := range a.Likes {
		if id == userID {
			return len(a.Likes), nil // already liked, no-op
		}
	}
	a.Likes = append(a.Likes, userID)
	return len(a.Likes), nil
}

func (m *Memory) UnlikeArticle(ctx context.Context, articleID, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[articleID]
	if !ok {
		return 0, api.ErrNotFound
	}
	for i, id := range a.Likes {
		if id == userID {
			a.Likes = append(a.Likes[:i], a.Likes[i+1:]...)
			break
		}
	}
	return len(a.Likes), nil
}

// --- Countries ---

func (m *Memory) ListCountries(ctx context.Context) ([]*api.Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*api.Country, 0, len(m.countries))
	for _, c := range m.countries {
		out = append(out, cloneCountry(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetCountryBySlug(ctx context.Context, slug string) (*api.Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.countries {
		if c.Slug == slug {
			return cloneCountry(c), nil
		}
	}
	return nil, api.ErrNotFound
}

func (m *Memory) GetCountryByID(ctx context.Context, id int64) (*api.Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.countries[id]; ok {
		return cloneCountry(c), nil
	}
	return nil, api.ErrNotFound
}

func (m *Memory) countrySlugTaken(slug string, exceptID int64) bool {
	for _, c := range m.countries {
		if c.Slug == slug && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *Memory) CreateCountry(ctx context.Context, c *api.Country) (*api.Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneCountry(c)
	cp.ID = m.next("country")
	if cp.Slug == "" {
		cp.Slug = validation.Slugify(cp.Name)
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.countrySlugTaken(sl, cp.ID) })
	m.countries[cp.ID] = cp
	return cloneCountry(cp), nil
}

func (m *Memory) UpdateCountry(ctx context.Context, c *api.Country) (*api.Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.countries[c.ID]
	if !ok {
		return nil, api.ErrNotFound
	}
	cp := cloneCountry(c)
	if cp.Slug == "" {
		cp.Slug = cur.Slug
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.countrySlugTaken(sl, cp.ID) })
	m.countries[cp.ID] = cp
	return cloneCountry(cp), nil
}

func (m *Memory) DeleteCountry(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.countries[id]; !ok {
		return api.ErrNotFound
	}
	delete(m.countries, id)
	return nil
}

func (m *Memory) SearchCountries(ctx context.Context, query string, limit int) ([]*api.Country, error) {
	all, err := m.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*api.Country, 0, limit)
	for _, c := range all {
		if matches(query, c.Name, c.Description, c.Overview) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// --- Universities ---

func (m *Memory) ListUniversities(ctx context.Context) ([]*api.University, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*api.University, 0, len(m.universities))
	for _, u := range m.universities {
		out = append(out, cloneUniversity(u))
	}
	// ranking ascending, unranked (zero) last
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Ranking, out[j].Ranking
		if ri == 0 {
			return false
		}
		if rj == 0 {
			return true
		}
		return ri < rj
	})
	return out, nil
}

func (m *Memory) GetUniversityBySlug(ctx context.Context, slug string) (*api.University, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.universities {
		if u.Slug == slug {
			return cloneUniversity(u), nil
		}
	}
	return nil, api.ErrNotFound
}

func (m *Memory) GetUniversityByID(ctx context.Context, id int64) (*api.University, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.universities[id]; ok {
		return cloneUniversity(u), nil
	}
	return nil, api.ErrNotFound
}

func (m *Memory) universitySlugTaken(slug string, exceptID int64) bool {
	for _, u := range m.universities {
		if u.Slug == slug && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *Memory) CreateUniversity(ctx context.Context, u *api.University) (*api.University, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneUniversity(u)
	cp.ID = m.next("university")
	if cp.Slug == "" {
		cp.Slug = validation.Slugify(cp.Name)
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.universitySlugTaken(sl, cp.ID) })
	m.universities[cp.ID] = cp
	return cloneUniversity(cp), nil
}

func (m *Memory) UpdateUniversity(ctx context.Context, u *api.University) (*api.University, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.universities[u.ID]
	if !ok {
		return nil, api.ErrNotFound
	}
	cp := cloneUniversity(u)
	if cp.Slug == "" {
		cp.Slug = cur.Slug
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.universitySlugTaken(sl, cp.ID) })
	m.universities[cp.ID] = cp
	return cloneUniversity(cp), nil
}

func (m *Memory) DeleteUniversity(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.universities[id]; !ok {
		return api.ErrNotFound
	}
	delete(m.universities, id)
	return nil
}

func (m *Memory) SearchUniversities(ctx context.Context, query string, limit int) ([]*api.University, error) {
	all, err := m.ListUniversities(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*api.University, 0, limit)
	for _, u := range all {
		if matches(query, u.Name, u.Description, u.Overview, u.Country) {
			out = append(out, u)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// --- News ---

func (m *Memory) ListNews(ctx context.Context) ([]*api.News, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*api.News, 0, len(m.news))
	for _, n := range m.news {
		out = append(out, cloneNews(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishDate.After(out[j].PublishDate) })
	return out, nil
}

func (m *Memory) GetNewsBySlug(ctx context.Context, slug string) (*api.News, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.news {
		if n.Slug == slug {
			return cloneNews(n), nil
		}
	}
	return nil, api.ErrNotFound
}

func (m *Memory) GetNewsByID(ctx context.Context, id int64) (*api.News, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.news[id]; ok {
		return cloneNews(n), nil
	}
	return nil, api.ErrNotFound
}

func (m *Memory) newsSlugTaken(slug string, exceptID int64) bool {
	for _, n := range m.news {
		if n.Slug == slug && n.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *Memory) CreateNews(ctx context.Context, n *api.News) (*api.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneNews(n)
	cp.ID = m.next("news")
	if cp.Slug == "" {
		cp.Slug = validation.Slugify(cp.Title)
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.newsSlugTaken(sl, cp.ID) })
	m.news[cp.ID] = cp
	return cloneNews(cp), nil
}

func (m *Memory) UpdateNews(ctx context.Context, n *api.News) (*api.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.news[n.ID]
	if !ok {
		return nil, api.ErrNotFound
	}
	cp := cloneNews(n)
	if cp.Slug == "" {
		cp.Slug = cur.Slug
	}
	cp.Slug = uniqueSlug(cp.Slug, func(sl string) bool { return m.newsSlugTaken(sl, cp.ID) })
	m.news[cp.ID] = cp
	return cloneNews(cp), nil
}

func (m *Memory) DeleteNews(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.news[id]; !ok {
		return api.ErrNotFound
	}
	delete(m.news, id)
	return nil
}

func (m *Memory) SearchNews(ctx context.Context, query string, limit int) ([]*api.News, error) {
	all, err := m.ListNews(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*api.News, 0, limit)
	for _, n := range all {
		if matches(query, n.Title, n.Content, n.Summary) {
			out = append(out, n)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// --- Menu ---

func (m *Memory) ListMenuItems(ctx context.Context) ([]*api.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*api.MenuItem, 0, len(m.menu))
	for _, mi := range m.menu {
		out = append(out, cloneMenuItem(mi))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateMenuItem(ctx context.Context, mi *api.MenuItem) (*api.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneMenuItem(mi)
	cp.ID = m.next("menu")
	for i := range cp.Children {
		if cp.Children[i].ID == 0 {
			cp.Children[i].ID = int64(i + 1)
		}
	}
	m.menu[cp.ID] = cp
	return cloneMenuItem(cp), nil
}

// --- Users ---

func (m *Memory) CreateUser(ctx context.Context, u *api.User) (*api.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return nil, fmt.Errorf("username %q taken: %w", u.Username, api.ErrConflict)
		}
	}
	cp := *u
	cp.ID = m.next("user")
	m.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*api.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, api.ErrNotFound
}

// --- Active users ---

func (m *Memory) CreateActiveUser(ctx context.Context, u *api.ActiveUser) (*api.ActiveUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.activeUsers {
		if existing.Email == u.Email {
			return nil, fmt.Errorf("email %q registered: %w", u.Email, api.ErrConflict)
		}
	}
	cp := cloneActiveUser(u)
	cp.ID = m.next("activeUser")
	if cp.SavedArticles == nil {
		cp.SavedArticles = []int64{}
	}
	if cp.SavedScholarships == nil {
		cp.SavedScholarships = []int64{}
	}
	m.activeUsers[cp.ID] = cp
	return cloneActiveUser(cp), nil
}

func (m *Memory) GetActiveUserByEmail(ctx context.Context, email string) (*api.ActiveUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.activeUsers {
		if u.Email == email {
			return cloneActiveUser(u), nil
		}
	}
	return nil, api.ErrNotFound
}

func (m *Memory) GetActiveUserByID(ctx context.Context, id int64) (*api.ActiveUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.activeUsers[id]; ok {
		return cloneActiveUser(u), nil
	}
	return nil, api.ErrNotFound
}

func addRef(refs []int64, id int64) []int64 {
	for _, r := range refs {
		if r == id {
			return refs
		}
	}
	return append(refs, id)
}

func removeRef(refs []int64, id int64) []int64 {
	for i, r := range refs {
		if r == id {
			return append(refs[:i], refs[i+1:]...)
		}
	}
	return refs
}

func (m *Memory) SaveArticle(ctx context.Context, userID, articleID int64) (*api.ActiveUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.activeUsers[userID]
	if !ok {
		return nil, api.ErrNotFound
	}
	u.SavedArticles = addRef(u.SavedArticles, articleID)
	return cloneActiveUser(u), nil
}

func (m *Memory) UnsaveArticle(ctx context.Context, userID, articleID int64) (*api.ActiveUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.activeUsers[userID]
	if !ok {
		return nil, api.ErrNotFound
	}
	u.SavedArticles = removeRef(u.SavedArticles, articleID)
	return cloneActiveUser(u), nil
}

func (m *Memory) SaveScholarship(ctx context.Context, userID, scholarshipID int64) (*api.ActiveUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.activeUsers[userID]
	if !ok {
		return nil, api.ErrNotFound
	}
	u.SavedScholarships = addRef(u.SavedScholarships, scholarshipID)
	return cloneActiveUser(u), nil
}

func (m *Memory) UnsaveScholarship(ctx context.Context, userID, scholarshipID int64) (*api.ActiveUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.activeUsers[userID]
	if !ok {
		return nil, api.ErrNotFound
	}
	u.SavedScholarships = removeRef(u.SavedScholarships, scholarshipID)
	return cloneActiveUser(u), nil
}

// --- Comments ---

func (m *Memory) AddComment(ctx context.Context, c *api.Comment) (*api.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.ID = m.next("comment")
	if cp.CreatedAt.IsZero() {
		// same contract as the durable backend's NOW()
		cp.CreatedAt = time.Now().UTC()
	}
	m.comments[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *Memory) ListCommentsByUser(ctx context.Context, userID int64) ([]*api.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*api.Comment, 0)
	for _, c := range m.comments {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ListCommentsByArticle(ctx context.Context, articleID int64) ([]*api.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*api.Comment, 0)
	for _, c := range m.comments {
		if c.ArticleID == articleID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ api.Store = (*Memory)(nil)
