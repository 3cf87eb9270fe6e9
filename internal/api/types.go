// Package api defines the portal REST API wire types and a thin client.
// The JSON shapes mirror the server exactly and must not drift: the cache
// replaces local data wholesale from these payloads on every sync.
package api

// FieldsResponse is the envelope returned by the fields endpoint.
type FieldsResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Count   int     `json:"count"`
	Fields  []Field `json:"fields"`
}

// Field is a curriculum field as it appears on the wire.
type Field struct {
	MongoID       string    `json:"_id"`
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	Description   string    `json:"description"`
	ProgramsCount int       `json:"programsCount"`
	TotalCourses  int       `json:"totalCourses"`
	Programs      []Program `json:"programs"`
}

// Program is a degree program nested in a Field.
type Program struct {
	MongoID     string   `json:"_id"`
	Name        string   `json:"name"`
	Duration    string   `json:"duration"`
	Level       []string `json:"level"`
	Description string   `json:"description"`
	CareerPaths []string `json:"careerPaths"`
	Images      []string `json:"images"`
	Courses     []Course `json:"courses"`
}

// Course is a course nested in a Program.
type Course struct {
	MongoID     string  `json:"_id"`
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Instructor  string  `json:"instructor"`
	Duration    string  `json:"duration"`
	Level       string  `json:"level"`
	Rating      float64 `json:"rating"`
	Students    int     `json:"students"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Field       string  `json:"field"`
}

// PostsResponse is the envelope returned by the posts endpoint.
type PostsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Posts   []Post `json:"posts"`
}

// Post is a community post as it appears on the wire.
type Post struct {
	MongoID     string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	PostedBy    Author      `json:"postedBy"`
	Images      []PostImage `json:"images"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
	Version     int         `json:"__v"`
}

// Author is the denormalized post author envelope.
type Author struct {
	MongoID string `json:"_id"`
	Name    string `json:"name"`
}

// PostImage is a CDN image reference attached to a post.
type PostImage struct {
	MongoID  string `json:"_id"`
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// LoginRequest is the credentials payload for the auth endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the envelope returned by the auth endpoint.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// User is the signed-in user profile as it appears on the wire.
type User struct {
	MongoID string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Avatar  string `json:"avatar"`
}
