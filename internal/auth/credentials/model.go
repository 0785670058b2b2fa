package credentials

// Credential is a fixed username/password pair accepted at login.
type Credential struct {
	Username string
	Password string
}

// HashedCredential is a credential as stored in the credentials table.
type HashedCredential struct {
	Username     string
	PasswordHash string
	HashVersion  string
}

// Defaults returns the built-in credential set.
func Defaults() []Credential {
	return []Credential{
		{Username: "sebastian", Password: "1234"},
		{Username: "prueba", Password: "abcd"},
	}
}
