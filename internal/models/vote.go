package models

// Vote records that a user liked a post. The composite primary key makes a
// second vote on the same pair a constraint violation rather than a second row.
type Vote struct {
	UserID uint  `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID uint  `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	User   *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Post   *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// CreateVoteRequest defines the request body for casting or removing a vote.
// Dir 1 adds the vote; zero or negative removes it.
type CreateVoteRequest struct {
	PostID uint `json:"post_id" validate:"required"`
	Dir    int  `json:"dir" validate:"lte=1"`
}
