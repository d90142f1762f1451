// Package token генерирует случайные идентификаторы для заметок и публичных ссылок.
package token

import (
	"crypto/rand"
	"math/big"
)

// alphabet - равномерный алфавит из 62 символов.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength - длина идентификатора по умолчанию.
// Вероятность коллизии при таком размере пренебрежимо мала,
// проверка уникальности не выполняется.
const DefaultLength = 22

// New возвращает случайный идентификатор длины DefaultLength.
func New() string {
	return NewWithLength(DefaultLength)
}

// NewWithLength возвращает случайный идентификатор заданной длины.
func NewWithLength(length int) string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand недоступен только при неисправности системного
			// источника энтропии; продолжать работу в этом случае нельзя.
			panic("token: system entropy source unavailable: " + err.Error())
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}
