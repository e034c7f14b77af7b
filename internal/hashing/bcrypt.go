// Package hashing — хэширование паролей администраторов.
package hashing

import "golang.org/x/crypto/bcrypt"

// Bcrypt хэширует пароли с настраиваемой стоимостью.
// Нулевая стоимость означает bcrypt.DefaultCost.
type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash возвращает bcrypt-хэш пароля с солью
func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Compare сверяет пароль с хэшем, не раскрывая причину несовпадения
func (b *Bcrypt) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
