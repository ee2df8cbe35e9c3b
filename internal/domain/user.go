package domain

// User is a library member.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserPatch carries the fields of a partial user update.
type UserPatch struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
}

// Apply returns a copy of u with every present patch field overwritten.
// The ID is never changed.
func (u User) Apply(p UserPatch) User {
	if p.Name.Set {
		u.Name = p.Name.Value
	}
	if p.Email.Set {
		u.Email = p.Email.Value
	}
	return u
}
