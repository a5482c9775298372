package auth

// Gate allows exactly one identity: the configured admin email. The
// comparison is exact and an empty AdminEmail allows nobody.
type Gate struct {
	AdminEmail string
}

func (g Gate) Allow(id Identity) bool {
	return g.AdminEmail != "" && id.Email == g.AdminEmail
}
