package user

// publicProps is the allow-list of fields anyone may see about a user.
var publicProps = []string{
	"_id", "username", "email", "displayName", "description",
	"reputation", "profilePicture", "verified", "admin",
}

func fields(u *User) map[string]any {
	return map[string]any{
		"_id":            u.ID,
		"username":       u.Username,
		"email":          u.Email,
		"password":       u.Password,
		"displayName":    u.DisplayName,
		"description":    u.Description,
		"reputation":     u.Reputation,
		"profilePicture": u.ProfilePicture,
		"verified":       u.Verified,
		"admin":          u.Admin,
	}
}

// PublicView projects the fields on the public allow-list. The password
// hash is never part of it.
func PublicView(u *User) map[string]any {
	all := fields(u)
	public := make(map[string]any, len(publicProps))

	for _, prop := range publicProps {
		public[prop] = all[prop]
	}

	return public
}

// FullView projects every field, including the password hash. Only served
// when the requester is an admin or the user themself.
func FullView(u *User) map[string]any {
	return fields(u)
}
