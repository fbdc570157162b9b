package domain

type UserRole string

const (
	UserRoleLandlord UserRole = "LANDLORD"
	UserRoleTenant   UserRole = "TENANT"
)

type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	CreatedOn string   `json:"created_on"`
	UpdatedOn string   `json:"updated_on"`
}
