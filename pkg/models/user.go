package models

type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Fullname     string `json:"fullname" db:"fullname"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Fullname string `json:"fullname"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Fullname *string `json:"fullname"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type UserChanges struct {
	Fullname     *string
	PasswordHash *string
	Role         *string
}

func (c *UserChanges) HasChanges() bool {
	return c.Fullname != nil || c.PasswordHash != nil || c.Role != nil
}
