package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"uiTest/internal/fixtures"
	"uiTest/internal/sanitizer"
)

func newDataCmd(d Deps) *cobra.Command {
	data := &cobra.Command{
		Use:   "data",
		Short: "Тестовые данные",
	}

	var reveal bool
	get := &cobra.Command{
		Use:   "get <key> [path]",
		Short: "Найти значение по ключу и, опционально, пути вида a.b.c",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := d.Data.Find(args[0])
			if errors.Is(err, fixtures.ErrNotFound) {
				return fmt.Errorf("ключ %q не найден", args[0])
			}
			if err != nil {
				return err
			}

			if len(args) == 2 {
				m, ok := value.(map[string]any)
				if !ok {
					return fmt.Errorf("значение %q не словарь", args[0])
				}
				value, ok = fixtures.GetNested(m, args[1])
				if !ok {
					return fmt.Errorf("путь %q не найден в %q", args[1], args[0])
				}
			}

			if !reveal {
				field := args[0]
				if len(args) == 2 {
					field = args[1][strings.LastIndex(args[1], ".")+1:]
				}
				value = mask(field, value)
			}
			out, err := yaml.Marshal(value)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	get.Flags().BoolVar(&reveal, "reveal", false, "не скрывать пароли и ключи")

	random := &cobra.Command{
		Use:   "random [length]",
		Short: "Случайная строка из букв и цифр",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 10
			if len(args) == 1 {
				var err error
				if n, err = strconv.Atoi(args[0]); err != nil || n <= 0 {
					return fmt.Errorf("некорректная длина %q", args[0])
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), fixtures.RandomString(n))
			return nil
		},
	}

	data.AddCommand(get, random)
	return data
}

// mask скрывает чувствительные значения, field задает имя, под которым лежит v.
func mask(field string, v any) any {
	s := sanitizer.New()
	switch val := v.(type) {
	case map[string]any:
		return s.SanitizeRecord(val)
	case string:
		return s.SanitizeField(field, val)
	default:
		if sanitizer.IsSensitiveKey(field) {
			return sanitizer.Filtered
		}
		return v
	}
}
