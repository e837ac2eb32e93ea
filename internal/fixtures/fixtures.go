// Package fixtures хранит статические тестовые данные и ищет значения по символьному ключу.
//
// Таблицы просматриваются в фиксированном порядке (users, products, forms, scenarios,
// environments), затем вызываются функции-аксессоры. Промах возвращается как ErrNotFound.
package fixtures

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var embedded []byte

const (
	TableUsers        = "users"
	TableProducts     = "products"
	TableForms        = "forms"
	TableScenarios    = "scenarios"
	TableEnvironments = "environments"
)

// TableOrder задает приоритет таблиц: при одинаковом ключе выигрывает более ранняя.
var TableOrder = []string{TableUsers, TableProducts, TableForms, TableScenarios, TableEnvironments}

const (
	DefaultUser        = "default_user"
	DefaultEnvironment = "dev"
)

var ErrNotFound = errors.New("test data not found")

// AccessorError отделяет сбой аксессора от обычного промаха.
type AccessorError struct {
	Accessor string
	Key      string
	Err      error
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("accessor %s(%q): %v", e.Accessor, e.Key, e.Err)
}

func (e *AccessorError) Unwrap() error {
	return e.Err
}

type Table struct {
	Name string
	Data map[string]any
}

// Accessor возвращает значение по ключу либо ошибку, оборачивающую ErrNotFound.
type Accessor struct {
	Name string
	Fn   func(key string) (any, error)
}

type Store struct {
	tables    []Table
	accessors []Accessor
}

// New собирает хранилище из готовых таблиц и аксессоров, порядок сохраняется.
func New(tables []Table, accessors ...Accessor) *Store {
	return &Store{tables: tables, accessors: accessors}
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// Default возвращает встроенный набор данных, разбирается один раз на процесс.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = Parse(embedded)
	})
	return defaultStore, defaultErr
}

// Open читает данные из файла, пустой путь означает встроенный набор.
func Open(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение тестовых данных %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает YAML-документ с таблицами верхнего уровня и подключает стандартные аксессоры.
func Parse(data []byte) (*Store, error) {
	var doc map[string]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("разбор тестовых данных: %w", err)
	}

	tables := make([]Table, 0, len(TableOrder))
	for _, name := range TableOrder {
		t := doc[name]
		if t == nil {
			t = map[string]any{}
		}
		tables = append(tables, Table{Name: name, Data: t})
	}

	s := New(tables)
	s.accessors = []Accessor{
		{Name: "UserData", Fn: func(key string) (any, error) { return s.UserData(key) }},
		{Name: "ScenarioData", Fn: func(key string) (any, error) { return s.ScenarioData(key) }},
		{Name: "EnvironmentData", Fn: func(key string) (any, error) { return s.EnvironmentData(key) }},
	}
	return s, nil
}

// Find ищет ключ сначала в таблицах, потом через аксессоры.
// Возвращает ErrNotFound, если ничего не нашлось, и *AccessorError при сбое аксессора.
func (s *Store) Find(key string) (any, error) {
	for _, t := range s.tables {
		if v, ok := t.Data[key]; ok {
			return clone(v), nil
		}
	}

	for _, a := range s.accessors {
		v, err := a.Fn(key)
		if err == nil {
			return clone(v), nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return nil, &AccessorError{Accessor: a.Name, Key: key, Err: err}
	}

	return nil, ErrNotFound
}

// Lookup ищет ключ только в одной таблице.
func (s *Store) Lookup(table, key string) (any, bool) {
	t, ok := s.table(table)
	if !ok {
		return nil, false
	}
	v, ok := t[key]
	if !ok {
		return nil, false
	}
	return clone(v), true
}

func (s *Store) table(name string) (map[string]any, bool) {
	for _, t := range s.tables {
		if t.Name == name {
			return t.Data, true
		}
	}
	return nil, false
}

// UserData возвращает запись пользователя, для неизвестного типа default_user.
func (s *Store) UserData(userType string) (map[string]any, error) {
	return s.recordOrDefault(TableUsers, userType, DefaultUser)
}

// ScenarioData возвращает описание сценария или пустую запись.
func (s *Store) ScenarioData(name string) (map[string]any, error) {
	if rec, err := s.record(TableScenarios, name); err == nil {
		return rec, nil
	}
	return map[string]any{}, nil
}

// EnvironmentData возвращает данные окружения, для неизвестного dev.
func (s *Store) EnvironmentData(env string) (map[string]any, error) {
	return s.recordOrDefault(TableEnvironments, env, DefaultEnvironment)
}

func (s *Store) recordOrDefault(table, key, fallback string) (map[string]any, error) {
	rec, err := s.record(table, key)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.record(table, fallback)
}

func (s *Store) record(table, key string) (map[string]any, error) {
	v, ok := s.Lookup(table, key)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", table, key, ErrNotFound)
	}
	rec, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s.%s: запись должна быть словарем, получено %T", table, key, v)
	}
	return rec, nil
}

// clone копирует вложенные словари и списки, чтобы сценарии не меняли общие таблицы.
func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = clone(val)
		}
		return out
	default:
		return v
	}
}
