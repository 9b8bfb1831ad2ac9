package handlers

import (
	"encoding/json"
	"strings"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/internal/services"
	"github.com/AnshRaj112/devconnect-backend/internal/validation"
	"github.com/AnshRaj112/devconnect-backend/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (req RegisterRequest) Validate() error {
	var c validation.Checker
	c.Required("name", req.Name, "Name is required")
	c.Email("email", strings.TrimSpace(req.Email), "Please include a valid email")
	if c.MinLength("password", req.Password, 6, "Please enter a password with 6 or more characters") {
		c.MaxBytes("password", req.Password, utils.MaxPasswordBytes, "Please enter a password with 72 or fewer bytes")
	}
	c.MinLength("phone", strings.TrimSpace(req.Phone), 10, "Please enter a 10 digit phone number")
	return c.Err()
}

func (req RegisterRequest) Input() services.RegisterInput {
	return services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req LoginRequest) Validate() error {
	var c validation.Checker
	c.Email("email", strings.TrimSpace(req.Email), "Please include a valid email")
	c.Required("password", req.Password, "Password is required")
	return c.Err()
}

// SkillList accepts either "Go, SQL" or ["Go", "SQL"].
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*s = models.SplitSkills(raw)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = models.SplitSkills(strings.Join(list, ","))
	return nil
}

type ProfileRequest struct {
	Company        string     `json:"company"`
	Website        string     `json:"website"`
	Location       string     `json:"location"`
	Bio            string     `json:"bio"`
	Status         string     `json:"status"`
	GitHubUsername string     `json:"githubusername"`
	Skills         *SkillList `json:"skills"`
	YouTube        string     `json:"youtube"`
	Twitter        string     `json:"twitter"`
	Facebook       string     `json:"facebook"`
	LinkedIn       string     `json:"linkedin"`
	Instagram      string     `json:"instagram"`
}

func (req ProfileRequest) Validate() error {
	var c validation.Checker
	c.Required("status", req.Status, "status is required")
	if req.Skills == nil || len(*req.Skills) == 0 {
		c.Add("skills", "Skills is required")
	}
	return c.Err()
}

// Update keeps only the fields that carry a value; blank fields leave the
// stored profile alone.
func (req ProfileRequest) Update() models.ProfileUpdate {
	u := models.ProfileUpdate{
		Company:        present(req.Company),
		Website:        present(req.Website),
		Location:       present(req.Location),
		Bio:            present(req.Bio),
		Status:         present(req.Status),
		GitHubUsername: present(req.GitHubUsername),
		Social: models.SocialUpdate{
			YouTube:   present(req.YouTube),
			Twitter:   present(req.Twitter),
			Facebook:  present(req.Facebook),
			LinkedIn:  present(req.LinkedIn),
			Instagram: present(req.Instagram),
		},
	}
	if req.Skills != nil {
		u.Skills = []string(*req.Skills)
	}
	return u
}

func present(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Experience validates the request and converts it in one pass, since the
// dates are parsed while checking them.
func (req ExperienceRequest) Experience() (models.Experience, error) {
	var c validation.Checker
	c.Required("title", req.Title, "Title is required")
	c.Required("company", req.Company, "Company is required")
	from := c.Date("from", req.From, "from date is required")
	to := c.OptionalDate("to", req.To)
	if err := c.Err(); err != nil {
		return models.Experience{}, err
	}
	return models.Experience{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}, nil
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (req EducationRequest) Education() (models.Education, error) {
	var c validation.Checker
	c.Required("school", req.School, "School is required")
	c.Required("degree", req.Degree, "Degree is required")
	c.Required("fieldofstudy", req.FieldOfStudy, "Field of Study is required")
	from := c.Date("from", req.From, "from date is required")
	to := c.OptionalDate("to", req.To)
	if err := c.Err(); err != nil {
		return models.Education{}, err
	}
	return models.Education{
		School:       strings.TrimSpace(req.School),
		Degree:       strings.TrimSpace(req.Degree),
		FieldOfStudy: strings.TrimSpace(req.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}, nil
}

// TextRequest is the body of both new posts and new comments.
type TextRequest struct {
	Text string `json:"text"`
}

func (req TextRequest) Validate() error {
	var c validation.Checker
	c.Required("text", req.Text, "Text is required")
	return c.Err()
}
