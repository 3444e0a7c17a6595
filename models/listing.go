package models

import (
	"database/sql"
	"time"
)

type JobListing struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Source      string    `json:"source"`
	SourceURL   string    `json:"source_url"`
	SourceJobID string    `json:"source_job_id,omitempty"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	SalaryInfo  string    `json:"salary_info,omitempty"`
	JobType     string    `json:"job_type,omitempty"`
	PostedDate  string    `json:"posted_date,omitempty"`
	IsEasyApply bool      `json:"is_easy_apply"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Listing status lifecycle: discovered -> approved -> applying -> applied,
// with rejected/skipped exits.
const (
	ListingStatusDiscovered = "discovered"
	ListingStatusApproved   = "approved"
	ListingStatusApplying   = "applying"
	ListingStatusApplied    = "applied"
)

type JobListingModel struct {
	DB *sql.DB
}

func NewJobListingModel(db *sql.DB) *JobListingModel {
	return &JobListingModel{DB: db}
}

func (m *JobListingModel) Create(userID int, source, sourceURL, sourceJobID, title, company, location, description, salaryInfo string, isEasyApply bool) (*JobListing, error) {
	listing := &JobListing{}
	query := `
		INSERT INTO job_listings (user_id, source, source_url, source_job_id, title, company, location, description, salary_info, is_easy_apply, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'discovered', $11)
		RETURNING id, user_id, source, source_url, source_job_id, title, company, location, description, salary_info, is_easy_apply, status, created_at
	`
	var jobID, salary sql.NullString
	err := m.DB.QueryRow(query, userID, source, sourceURL, sourceJobID, title, company, location, description, salaryInfo, isEasyApply, time.Now()).Scan(
		&listing.ID, &listing.UserID, &listing.Source, &listing.SourceURL, &jobID,
		&listing.Title, &listing.Company, &listing.Location, &listing.Description,
		&salary, &listing.IsEasyApply, &listing.Status, &listing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	listing.SourceJobID = jobID.String
	listing.SalaryInfo = salary.String
	return listing, nil
}

func (m *JobListingModel) GetByID(id int) (*JobListing, error) {
	listing := &JobListing{}
	var jobID, salary sql.NullString
	query := `
		SELECT id, user_id, source, source_url, source_job_id, title, company, location, description, salary_info, is_easy_apply, status, created_at
		FROM job_listings WHERE id = $1
	`
	err := m.DB.QueryRow(query, id).Scan(
		&listing.ID, &listing.UserID, &listing.Source, &listing.SourceURL, &jobID,
		&listing.Title, &listing.Company, &listing.Location, &listing.Description,
		&salary, &listing.IsEasyApply, &listing.Status, &listing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	listing.SourceJobID = jobID.String
	listing.SalaryInfo = salary.String
	return listing, nil
}

func (m *JobListingModel) GetByUserID(userID int, status, source string, limit, offset int) ([]JobListing, error) {
	listings := []JobListing{}
	query := `
		SELECT id, user_id, source, source_url, source_job_id, title, company, location, description, salary_info, is_easy_apply, status, created_at
		FROM job_listings
		WHERE user_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR source = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := m.DB.Query(query, userID, status, source, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var listing JobListing
		var jobID, salary sql.NullString
		err := rows.Scan(
			&listing.ID, &listing.UserID, &listing.Source, &listing.SourceURL, &jobID,
			&listing.Title, &listing.Company, &listing.Location, &listing.Description,
			&salary, &listing.IsEasyApply, &listing.Status, &listing.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		listing.SourceJobID = jobID.String
		listing.SalaryInfo = salary.String
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (m *JobListingModel) UpdateStatus(id int, status string) error {
	_, err := m.DB.Exec(`UPDATE job_listings SET status = $1 WHERE id = $2`, status, id)
	return err
}
