package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// jsonValue/jsonScan общая сериализация json полей, хранятся как text (sqlite/postgres)
func jsonValue(v any) (driver.Value, error) {
	valueString, err := json.Marshal(v)
	return string(valueString), err
}

func jsonScan(value interface{}, out any) error {
	switch data := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, out)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), out)
	}
	return errors.Errorf("неподдерживаемый тип json поля: %T", value)
}
