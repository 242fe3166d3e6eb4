package hash

import "golang.org/x/crypto/bcrypt"

// Hasher abstracts password hashing so use cases call it explicitly
// instead of relying on persistence hooks.
type Hasher interface {
	Hash(password string) (string, error)
	Check(hash, password string) bool
}

type Bcrypt struct {
	Cost int
}

func NewBcrypt() Bcrypt {
	return Bcrypt{Cost: 10}
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

func (b Bcrypt) Check(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
