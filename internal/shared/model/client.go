package model

import "time"

// Client OAuth 客户端
type Client struct {
	ID          int64     `json:"_id" bson:"_id" db:"id"`
	ClientID    string    `json:"id" bson:"client_id" db:"client_id"`
	Secret      string    `json:"secret" bson:"secret" db:"secret"`
	RedirectURL string    `json:"redirectUrl" bson:"redirect_url" db:"redirect_url"`
	CreatedAt   time.Time `json:"-" bson:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"-" bson:"updated_at" db:"updated_at"`
}

// EntityID 实现 Entity 接口
func (c Client) EntityID() int64 {
	return c.ID
}

var _ Entity = Client{}
