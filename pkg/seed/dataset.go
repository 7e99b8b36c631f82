// Package seed provides the canonical starter dataset, bulk population,
// and migration of content from one backend into another.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/studyatlas/studyatlas/pkg/api"
)

// Dataset is a full content snapshot. YAML keys mirror the JSON field
// names of the entity types.
type Dataset struct {
	Scholarships []*api.Scholarship `json:"scholarships"`
	Articles     []*api.Article     `json:"articles"`
	Countries    []*api.Country     `json:"countries"`
	Universities []*api.University  `json:"universities"`
	News         []*api.News        `json:"news"`
	Menu         []*api.MenuItem    `json:"menu"`
}

// Count returns the total number of entities across all kinds.
func (d *Dataset) Count() int {
	return len(d.Scholarships) + len(d.Articles) + len(d.Countries) +
		len(d.Universities) + len(d.News) + len(d.Menu)
}

// LoadDataset reads a dataset from a YAML file. The document is decoded
// generically and routed through the JSON field names, so one set of
// tags serves both the API and the dataset files.
func LoadDataset(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset YAML: %w", err)
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert dataset: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(buf, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return &ds, nil
}

// DefaultDataset returns the built-in starter content used when no
// dataset file is supplied.
func DefaultDataset() *Dataset {
	return &Dataset{
		Scholarships: []*api.Scholarship{
			{
				Title:         "Chevening Scholarship",
				Overview:      "The UK government's flagship international award for one-year master's degrees.",
				Description:   "Chevening funds outstanding emerging leaders from around the world to pursue a one-year master's degree at any UK university.",
				Highlights:    []string{"Fully funded tuition", "Monthly living stipend", "Return airfare"},
				Amount:        "Full funding",
				Deadline:      "November 7",
				Duration:      "1 year",
				Level:         "Masters",
				FieldsCovered: []string{"All fields"},
				Eligibility:   "Bachelor's degree, two years of work experience, return commitment of two years.",
				IsRenewable:   false,
				Benefits:      []string{"Tuition fees", "Living allowance", "Travel costs", "Visa application"},
				ApplicationProcedure: "Apply online through the Chevening portal with two references " +
					"and three course choices, then attend an interview at the local British embassy.",
				Country: "United Kingdom",
				Tags:    []string{"fully-funded", "masters", "uk"},
				Link:    "https://www.chevening.org",
			},
			{
				Title:         "DAAD EPOS Scholarship",
				Overview:      "German Academic Exchange Service awards for development-related postgraduate courses.",
				Description:   "DAAD EPOS supports professionals from developing countries in selected master's and doctoral programmes at German universities.",
				Highlights:    []string{"Monthly stipend of 992 EUR", "Health insurance", "Travel allowance"},
				Amount:        "992 EUR/month",
				Deadline:      "Varies by course",
				Duration:      "12-42 months",
				Level:         "Masters, PhD",
				FieldsCovered: []string{"Engineering", "Economics", "Public Health", "Agriculture"},
				Eligibility:   "Bachelor's degree completed within the last six years and two years of professional experience.",
				IsRenewable:   true,
				Benefits:      []string{"Monthly stipend", "Health insurance", "Travel allowance", "German course"},
				ApplicationProcedure: "Apply directly to the participating course with the DAAD form, " +
					"certified transcripts, and a motivation letter.",
				Country: "Germany",
				Tags:    []string{"fully-funded", "masters", "phd", "germany"},
				Link:    "https://www.daad.de",
			},
			{
				Title:         "Fulbright Foreign Student Program",
				Overview:      "US government grants for graduate study and research in the United States.",
				Description:   "The Fulbright Foreign Student Program enables graduate students and young professionals to study and conduct research at US institutions.",
				Highlights:    []string{"Tuition and fees", "Living stipend", "Health coverage"},
				Amount:        "Full funding",
				Deadline:      "February-October, by country",
				Duration:      "1-2 years",
				Level:         "Masters, PhD",
				FieldsCovered: []string{"All fields except medicine"},
				Eligibility:   "Bachelor's degree, English proficiency, and country-specific requirements.",
				IsRenewable:   true,
				Benefits:      []string{"Tuition", "Airfare", "Stipend", "Health insurance"},
				ApplicationProcedure: "Apply through the Fulbright commission or US embassy in the " +
					"applicant's home country.",
				Country: "United States",
				Tags:    []string{"fully-funded", "masters", "phd", "usa"},
				Link:    "https://foreign.fulbrightonline.org",
			},
		},
		Articles: []*api.Article{
			{
				Title:       "How to Write a Scholarship Motivation Letter",
				Content:     "A motivation letter is your single best chance to stand out. Start from the selection criteria, mirror their language, and anchor every claim in a concrete story. Committees read hundreds of letters; the ones they remember open with a specific moment, not a biography.",
				Summary:     "A practical structure for motivation letters that committees actually read.",
				PublishDate: time.Date(2024, 9, 12, 0, 0, 0, 0, time.UTC),
				Author:      "Amina Yusuf",
				AuthorTitle: "Admissions Consultant",
				Category:    "Application Tips",
			},
			{
				Title:       "IELTS vs TOEFL: Which Should You Take?",
				Content:     "Both tests are accepted almost everywhere, so the choice comes down to format. IELTS keeps a human examiner for speaking; TOEFL is fully computer-based and favors fast readers. Check your target universities first, then book the format that matches how you perform under pressure.",
				Summary:     "Choosing between the two main English proficiency tests.",
				PublishDate: time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
				Author:      "Daniel Mensah",
				AuthorTitle: "Test Prep Instructor",
				Category:    "Exams",
			},
		},
		Countries: []*api.Country{
			{
				Name:              "United Kingdom",
				Overview:          "Home to some of the world's oldest universities and one-year master's programmes.",
				Description:       "The UK combines short, intensive degrees with a large international student community and post-study work visas.",
				Highlights:        []string{"One-year masters", "Graduate route visa", "160+ universities"},
				Universities:      160,
				AcceptanceRate:    "varies widely",
				Language:          "English",
				Currency:          "GBP",
				AverageTuition:    "15,000-35,000 GBP/year",
				AverageLivingCost: "12,000-15,000 GBP/year",
				VisaRequirement:   "Student visa with CAS from a licensed sponsor",
				PopularCities:     []string{"London", "Manchester", "Edinburgh", "Glasgow"},
				TopUniversities:   []string{"University of Oxford", "University of Cambridge", "Imperial College London"},
				EducationSystem:   "Three-year bachelors, one-year taught masters, three-year PhDs.",
			},
			{
				Name:              "Germany",
				Overview:          "Tuition-free public universities and a strong engineering tradition.",
				Description:       "Most German public universities charge no tuition for international students, and many master's programmes are taught in English.",
				Highlights:        []string{"No tuition at public universities", "18-month job seeker visa", "Strong industry links"},
				Universities:      400,
				AcceptanceRate:    "moderate",
				Language:          "German, English programmes available",
				Currency:          "EUR",
				AverageTuition:    "0-3,000 EUR/year",
				AverageLivingCost: "10,000-12,000 EUR/year",
				VisaRequirement:   "National visa with blocked account of 11,208 EUR",
				PopularCities:     []string{"Berlin", "Munich", "Hamburg", "Aachen"},
				TopUniversities:   []string{"TU Munich", "LMU Munich", "Heidelberg University"},
				EducationSystem:   "Bologna system with strong applied-science universities alongside research universities.",
			},
		},
		Universities: []*api.University{
			{
				Name:                  "University of Oxford",
				Description:           "Collegiate research university and the oldest in the English-speaking world.",
				Overview:              "Oxford teaches through weekly tutorials in 39 self-governing colleges.",
				Country:               "United Kingdom",
				Location:              "Oxford, England",
				FoundedYear:           1096,
				Ranking:               1,
				AcceptanceRate:        "17%",
				StudentPopulation:     24000,
				InternationalStudents: 11000,
				ProgramsOffered:       []string{"Humanities", "Sciences", "Medicine", "Law"},
				TuitionFees:           "28,000-44,000 GBP/year",
				AdmissionRequirements: []string{"First-class honours or equivalent", "English proficiency", "Subject test where required"},
				ApplicationDeadlines:  "January for most graduate courses",
				ScholarshipsAvailable: true,
				CampusLife:            "College-based societies, formal halls, and one of the largest library systems in the world.",
				NotableAlumni:         []string{"Stephen Hawking", "Indira Gandhi", "Tim Berners-Lee"},
				Facilities:            []string{"Bodleian Libraries", "University museums", "College sports grounds"},
				Website:               "https://www.ox.ac.uk",
			},
			{
				Name:                  "Technical University of Munich",
				Description:           "Germany's top-ranked technical university.",
				Overview:              "TUM spans engineering, natural sciences, life sciences, and medicine across three campuses.",
				Country:               "Germany",
				Location:              "Munich, Bavaria",
				FoundedYear:           1868,
				Ranking:               2,
				StudentPopulation:     50000,
				InternationalStudents: 20000,
				ProgramsOffered:       []string{"Engineering", "Computer Science", "Natural Sciences", "Management"},
				TuitionFees:           "No tuition, semester fee only",
				AdmissionRequirements: []string{"Recognized bachelor's degree", "GRE for some programmes", "English or German proficiency"},
				ApplicationDeadlines:  "May 31 for winter semester",
				ScholarshipsAvailable: true,
				CampusLife:            "Strong student initiative culture with research groups open to undergraduates.",
				NotableAlumni:         []string{"Rudolf Diesel", "Carl von Linde"},
				Facilities:            []string{"Research reactor", "Makerspace", "Olympic sports campus"},
				Website:               "https://www.tum.de",
			},
		},
		News: []*api.News{
			{
				Title:       "Chevening Applications Open for Next Intake",
				Content:     "The Foreign, Commonwealth and Development Office has opened Chevening applications for the coming academic year. Applicants have until early November to submit.",
				Summary:     "Annual Chevening window now open.",
				PublishDate: time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
				Category:    "Deadlines",
				IsFeatured:  true,
			},
			{
				Title:       "Germany Raises Blocked Account Requirement",
				Content:     "Students applying for a German national visa must now show 11,208 EUR in a blocked account, reflecting updated living cost estimates.",
				Summary:     "New financial proof threshold for German student visas.",
				PublishDate: time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC),
				Category:    "Visas",
			},
		},
		Menu: []*api.MenuItem{
			{
				Title: "Scholarships",
				URL:   "/scholarships",
				Children: []api.MenuChild{
					{Title: "Fully Funded", URL: "/scholarships?tag=fully-funded"},
					{Title: "Masters", URL: "/scholarships?level=masters"},
					{Title: "PhD", URL: "/scholarships?level=phd"},
				},
			},
			{
				Title: "Study Destinations",
				URL:   "/countries",
				Children: []api.MenuChild{
					{Title: "United Kingdom", URL: "/countries/united-kingdom"},
					{Title: "Germany", URL: "/countries/germany"},
					{Title: "United States", URL: "/countries/united-states"},
				},
			},
			{Title: "Universities", URL: "/universities"},
			{Title: "Articles", URL: "/articles"},
			{Title: "News", URL: "/news"},
		},
	}
}
