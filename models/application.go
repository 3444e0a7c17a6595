package models

import (
	"database/sql"
	"time"
)

type Application struct {
	ID              int       `json:"id"`
	JobID           int       `json:"job_id"`
	UserID          int       `json:"user_id"`
	Status          string    `json:"status"`
	ResumePath      string    `json:"resume_path,omitempty"`
	CoverLetterPath string    `json:"cover_letter_path,omitempty"`
	CoverLetterText string    `json:"cover_letter_text,omitempty"`
	FormDataJSON    string    `json:"form_data_json,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	PageURL         string    `json:"page_url,omitempty"`
	ScreenshotKey   string    `json:"screenshot_key,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Application status lifecycle: pending -> documents_ready -> form_filled /
// awaiting_review -> failed.
const (
	AppStatusPending        = "pending"
	AppStatusDocumentsReady = "documents_ready"
	AppStatusFormFilled     = "form_filled"
	AppStatusAwaitingReview = "awaiting_review"
	AppStatusFailed         = "failed"
)

type ApplicationModel struct {
	DB *sql.DB
}

func NewApplicationModel(db *sql.DB) *ApplicationModel {
	return &ApplicationModel{DB: db}
}

func (m *ApplicationModel) Create(jobID, userID int) (*Application, error) {
	app := &Application{}
	now := time.Now()
	query := `
		INSERT INTO applications (job_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, 'pending', $3, $3)
		RETURNING id, job_id, user_id, status, created_at, updated_at
	`
	err := m.DB.QueryRow(query, jobID, userID, now).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (m *ApplicationModel) GetByID(id int) (*Application, error) {
	app := &Application{}
	var resumePath, coverPath, coverText, formData, errMsg, pageURL, screenshot sql.NullString
	query := `
		SELECT id, job_id, user_id, status, resume_path, cover_letter_path, cover_letter_text,
		       form_data_json, error_message, page_url, screenshot_key, created_at, updated_at
		FROM applications WHERE id = $1
	`
	err := m.DB.QueryRow(query, id).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.Status,
		&resumePath, &coverPath, &coverText, &formData, &errMsg, &pageURL, &screenshot,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.ResumePath = resumePath.String
	app.CoverLetterPath = coverPath.String
	app.CoverLetterText = coverText.String
	app.FormDataJSON = formData.String
	app.ErrorMessage = errMsg.String
	app.PageURL = pageURL.String
	app.ScreenshotKey = screenshot.String
	return app, nil
}

func (m *ApplicationModel) GetByUserID(userID int, status string) ([]Application, error) {
	apps := []Application{}
	query := `
		SELECT id, job_id, user_id, status, resume_path, cover_letter_path, cover_letter_text,
		       form_data_json, error_message, page_url, screenshot_key, created_at, updated_at
		FROM applications
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY updated_at DESC
	`
	rows, err := m.DB.Query(query, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var app Application
		var resumePath, coverPath, coverText, formData, errMsg, pageURL, screenshot sql.NullString
		err := rows.Scan(
			&app.ID, &app.JobID, &app.UserID, &app.Status,
			&resumePath, &coverPath, &coverText, &formData, &errMsg, &pageURL, &screenshot,
			&app.CreatedAt, &app.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		app.ResumePath = resumePath.String
		app.CoverLetterPath = coverPath.String
		app.CoverLetterText = coverText.String
		app.FormDataJSON = formData.String
		app.ErrorMessage = errMsg.String
		app.PageURL = pageURL.String
		app.ScreenshotKey = screenshot.String
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (m *ApplicationModel) UpdateDocuments(id int, resumePath, coverLetterPath string) error {
	query := `
		UPDATE applications
		SET resume_path = $1, cover_letter_path = $2, status = 'documents_ready', updated_at = $3
		WHERE id = $4
	`
	_, err := m.DB.Exec(query, resumePath, coverLetterPath, time.Now(), id)
	return err
}

// UpdateOutcome records the terminal result of one fill attempt.
func (m *ApplicationModel) UpdateOutcome(id int, status, formDataJSON, errorMessage, pageURL, screenshotKey string) error {
	query := `
		UPDATE applications
		SET status = $1, form_data_json = $2, error_message = $3, page_url = $4, screenshot_key = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := m.DB.Exec(query, status, formDataJSON, errorMessage, pageURL, screenshotKey, time.Now(), id)
	return err
}
