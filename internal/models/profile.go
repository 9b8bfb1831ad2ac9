package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Social struct {
	YouTube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time          `bson:"from" json:"from"`
	To          *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time          `bson:"from" json:"from"`
	To           *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Profile belongs to exactly one user. Experience and education entries
// are kept most-recent-first.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Status         string             `bson:"status" json:"status"`
	GitHubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Skills         []string           `bson:"skills" json:"skills"`
	Social         Social             `bson:"social" json:"social"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Date           time.Time          `bson:"date" json:"date"`
}

// ProfileView is a profile with its owner populated in place of the bare id.
type ProfileView struct {
	*Profile
	User *UserSummary `json:"user"`
}

// AddExperience assigns a fresh id when the entry has none and prepends it.
func (p *Profile) AddExperience(e Experience) Experience {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	p.Experience = append([]Experience{e}, p.Experience...)
	return e
}

// RemoveExperience deletes the entry with the given id, keeping the order
// of the rest. It reports whether anything was removed.
func (p *Profile) RemoveExperience(id primitive.ObjectID) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			p.Experience = append(p.Experience[:i:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) AddEducation(e Education) Education {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	p.Education = append([]Education{e}, p.Education...)
	return e
}

func (p *Profile) RemoveEducation(id primitive.ObjectID) bool {
	for i := range p.Education {
		if p.Education[i].ID == id {
			p.Education = append(p.Education[:i:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}

// SocialUpdate carries the social links present in a request. Nil means
// leave the stored value alone.
type SocialUpdate struct {
	YouTube   *string
	Twitter   *string
	Facebook  *string
	LinkedIn  *string
	Instagram *string
}

// ProfileUpdate is a partial profile write. Nil fields are left untouched.
type ProfileUpdate struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GitHubUsername *string
	Skills         []string
	Social         SocialUpdate
}

// Apply merges the update into p.
func (u ProfileUpdate) Apply(p *Profile) {
	setString(&p.Company, u.Company)
	setString(&p.Website, u.Website)
	setString(&p.Location, u.Location)
	setString(&p.Bio, u.Bio)
	setString(&p.Status, u.Status)
	setString(&p.GitHubUsername, u.GitHubUsername)
	if u.Skills != nil {
		p.Skills = append([]string(nil), u.Skills...)
	}
	setString(&p.Social.YouTube, u.Social.YouTube)
	setString(&p.Social.Twitter, u.Social.Twitter)
	setString(&p.Social.Facebook, u.Social.Facebook)
	setString(&p.Social.LinkedIn, u.Social.LinkedIn)
	setString(&p.Social.Instagram, u.Social.Instagram)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// SplitSkills turns "Go, SQL ,  Docker" into [Go SQL Docker], dropping
// empty items.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}
