package lobby

import "github.com/alexedwards/argon2id"

// PasswordParams tunes lobby password hashing.
var PasswordParams = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword returns "" for an empty password, meaning the lobby is open.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	return argon2id.CreateHash(password, PasswordParams)
}

func checkPassword(password, hash string) bool {
	if hash == "" {
		return true
	}
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	return err == nil && match
}
