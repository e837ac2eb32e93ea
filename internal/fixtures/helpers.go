package fixtures

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetNested спускается по пути вида "user.profile.name".
// Любой отсутствующий сегмент или не-словарь по дороге дает false.
func GetNested(data map[string]any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}

	var value any = data
	for _, key := range strings.Split(path, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		value, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString генерирует строку из латинских букв и цифр.
func RandomString(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
	Age      int    `yaml:"age"`
}

type Environment struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// User возвращает типизированную запись пользователя (с откатом на default_user).
func (s *Store) User(userType string) (User, error) {
	var u User
	rec, err := s.UserData(userType)
	if err != nil {
		return u, err
	}
	err = decode(rec, &u)
	return u, err
}

func (s *Store) Environment(env string) (Environment, error) {
	var e Environment
	rec, err := s.EnvironmentData(env)
	if err != nil {
		return e, err
	}
	err = decode(rec, &e)
	return e, err
}

// decode перекладывает словарь в структуру через YAML-теги.
func decode(rec map[string]any, out any) error {
	raw, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("декодирование записи: %w", err)
	}
	return nil
}
