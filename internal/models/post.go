package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post has not yet been liked")
	ErrCommentNotFound  = errors.New("comment does not exist")
	ErrNotCommentAuthor = errors.New("comment belongs to another user")
)

type Like struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	User primitive.ObjectID `bson:"user" json:"user"`
}

type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Date   time.Time          `bson:"date" json:"date"`
}

// Post keeps a snapshot of the author's name and avatar taken at creation
// time. Likes and comments are kept newest-first.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}

func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// Like prepends a like for userID. A user may like a post once.
func (p *Post) Like(userID primitive.ObjectID) error {
	if p.LikedBy(userID) {
		return ErrAlreadyLiked
	}
	like := Like{ID: primitive.NewObjectID(), User: userID}
	p.Likes = append([]Like{like}, p.Likes...)
	return nil
}

func (p *Post) Unlike(userID primitive.ObjectID) error {
	for i := range p.Likes {
		if p.Likes[i].User == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

func (p *Post) AddComment(c Comment) Comment {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

// RemoveComment looks the comment up by its own id and only then checks
// that userID wrote it.
func (p *Post) RemoveComment(commentID, userID primitive.ObjectID) error {
	for i := range p.Comments {
		if p.Comments[i].ID != commentID {
			continue
		}
		if p.Comments[i].User != userID {
			return ErrNotCommentAuthor
		}
		p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
		return nil
	}
	return ErrCommentNotFound
}
