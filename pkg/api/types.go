package api

import "time"

// Scholarship is a funded study opportunity listed in the directory.
type Scholarship struct {
	ID                   int64    `json:"id"`
	Title                string   `json:"title"`
	Slug                 string   `json:"slug"`
	Overview             string   `json:"overview"`
	Description          string   `json:"description"`
	Highlights           []string `json:"highlights"`
	Amount               string   `json:"amount"`
	Deadline             string   `json:"deadline"`
	Duration             string   `json:"duration"`
	Level                string   `json:"level"`
	FieldsCovered        []string `json:"fieldsCovered"`
	Eligibility          string   `json:"eligibility"`
	IsRenewable          bool     `json:"isRenewable"`
	Benefits             []string `json:"benefits"`
	ApplicationProcedure string   `json:"applicationProcedure"`
	Country              string   `json:"country"`
	Tags                 []string `json:"tags"`
	Link                 string   `json:"link,omitempty"`
}

// Article is an editorial piece. Likes is a set of user IDs; a user
// appears at most once.
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary"`
	Slug        string    `json:"slug"`
	PublishDate time.Time `json:"publishDate"`
	Author      string    `json:"author"`
	AuthorTitle string    `json:"authorTitle,omitempty"`
	AuthorImage string    `json:"authorImage,omitempty"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category"`
	Likes       []int64   `json:"likes"`
}

// Country is a study-destination profile.
type Country struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Overview          string   `json:"overview"`
	Description       string   `json:"description"`
	Highlights        []string `json:"highlights"`
	Universities      int      `json:"universities"`
	AcceptanceRate    string   `json:"acceptanceRate"`
	Language          string   `json:"language"`
	Currency          string   `json:"currency"`
	AverageTuition    string   `json:"averageTuition"`
	AverageLivingCost string   `json:"averageLivingCost"`
	VisaRequirement   string   `json:"visaRequirement"`
	PopularCities     []string `json:"popularCities"`
	TopUniversities   []string `json:"topUniversities"`
	EducationSystem   string   `json:"educationSystem"`
	Image             string   `json:"image,omitempty"`
	Flag              string   `json:"flag,omitempty"`
}

// University is an institution profile. Ranking zero means unranked and
// sorts after every ranked entry.
type University struct {
	ID                    int64    `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Overview              string   `json:"overview"`
	Country               string   `json:"country"`
	Location              string   `json:"location"`
	FoundedYear           int      `json:"foundedYear"`
	Ranking               int      `json:"ranking,omitempty"`
	AcceptanceRate        string   `json:"acceptanceRate,omitempty"`
	StudentPopulation     int      `json:"studentPopulation,omitempty"`
	InternationalStudents int      `json:"internationalStudents,omitempty"`
	AcademicCalendar      string   `json:"academicCalendar,omitempty"`
	ProgramsOffered       []string `json:"programsOffered"`
	TuitionFees           string   `json:"tuitionFees"`
	AdmissionRequirements []string `json:"admissionRequirements"`
	ApplicationDeadlines  string   `json:"applicationDeadlines"`
	ScholarshipsAvailable bool     `json:"scholarshipsAvailable"`
	CampusLife            string   `json:"campusLife"`
	NotableAlumni         []string `json:"notableAlumni"`
	Facilities            []string `json:"facilities"`
	Image                 string   `json:"image,omitempty"`
	Logo                  string   `json:"logo,omitempty"`
	Website               string   `json:"website,omitempty"`
	Slug                  string   `json:"slug"`
	Features              []string `json:"features,omitempty"`
}

// News is a dated announcement.
type News struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary"`
	PublishDate time.Time `json:"publishDate"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category"`
	IsFeatured  bool      `json:"isFeatured"`
	Slug        string    `json:"slug"`
}

// MenuItem is a top-level navigation entry with at most one level of
// children.
type MenuItem struct {
	ID       int64       `json:"id"`
	Title    string      `json:"title"`
	URL      string      `json:"url"`
	Children []MenuChild `json:"children"`
}

// MenuChild is a second-level navigation entry.
type MenuChild struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// User is the minimal admin-login principal.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"isAdmin"`
}

// ActiveUser is the richer site-member principal. PasswordHash is empty
// for Google-linked accounts.
type ActiveUser struct {
	ID                int64   `json:"id"`
	FullName          string  `json:"fullName"`
	Email             string  `json:"email"`
	PasswordHash      string  `json:"-"`
	GoogleID          string  `json:"-"`
	ProfileImage      string  `json:"profileImage,omitempty"`
	SavedArticles     []int64 `json:"savedArticles"`
	SavedScholarships []int64 `json:"savedScholarships"`
}

// Comment references both its author and its article so either side can
// be listed without scanning the other.
type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ArticleID int64     `json:"articleId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// SearchResults groups per-kind search hits for a single query.
type SearchResults struct {
	Scholarships []*Scholarship `json:"scholarships"`
	Articles     []*Article     `json:"articles"`
	Countries    []*Country     `json:"countries"`
	Universities []*University  `json:"universities"`
	News         []*News        `json:"news"`
}
