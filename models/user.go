package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	ZipCode      string    `json:"zip_code,omitempty"`
	Address      string    `json:"address,omitempty"`
	LinkedInURL  string    `json:"linkedin_url,omitempty"`
	ResumePath   string    `json:"resume_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserModel struct {
	DB *sql.DB
}

func NewUserModel(db *sql.DB) *UserModel {
	return &UserModel{DB: db}
}

func (m *UserModel) Create(email, passwordHash, fullName string) (*User, error) {
	user := &User{}
	query := `
		INSERT INTO users (email, password_hash, full_name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, full_name, created_at
	`
	err := m.DB.QueryRow(query, email, passwordHash, fullName, time.Now()).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (m *UserModel) GetByEmail(email string) (*User, error) {
	return m.getOne(`WHERE email = $1`, email)
}

func (m *UserModel) GetByID(id int) (*User, error) {
	return m.getOne(`WHERE id = $1`, id)
}

func (m *UserModel) getOne(where string, arg interface{}) (*User, error) {
	user := &User{}
	var phone, city, state, zip, address, linkedin, resumePath sql.NullString
	query := `
		SELECT id, email, password_hash, full_name, phone, city, state, zip_code, address, linkedin_url, resume_path, created_at
		FROM users ` + where
	err := m.DB.QueryRow(query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&phone, &city, &state, &zip, &address, &linkedin, &resumePath,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Phone = phone.String
	user.City = city.String
	user.State = state.String
	user.ZipCode = zip.String
	user.Address = address.String
	user.LinkedInURL = linkedin.String
	user.ResumePath = resumePath.String
	return user, nil
}

func (m *UserModel) UpdateProfile(id int, fullName, phone, city, state, zipCode, address, linkedinURL, resumePath string) error {
	query := `
		UPDATE users
		SET full_name = $1, phone = $2, city = $3, state = $4, zip_code = $5, address = $6, linkedin_url = $7, resume_path = $8
		WHERE id = $9
	`
	_, err := m.DB.Exec(query, fullName, phone, city, state, zipCode, address, linkedinURL, resumePath, id)
	return err
}
