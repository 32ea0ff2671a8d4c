package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Files []ProjectFile

type Comments []Comment

func (t Files) Value() (driver.Value, error) {
	if t == nil {
		t = Files{}
	}
	jsonBytes, err := json.Marshal(&t)
	if err != nil {
		return nil, err
	}
	return string(jsonBytes), nil
}

func (c *Files) Scan(v interface{}) error {
	jsonBytes, err := columnBytes(v)
	if err != nil {
		return err
	}
	*c = Files{}
	if len(jsonBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(jsonBytes, c); err != nil {
		return err
	}
	if *c == nil {
		*c = Files{}
	}
	return nil
}

func (t Comments) Value() (driver.Value, error) {
	if t == nil {
		t = Comments{}
	}
	jsonBytes, err := json.Marshal(&t)
	if err != nil {
		return nil, err
	}
	return string(jsonBytes), nil
}

func (c *Comments) Scan(v interface{}) error {
	jsonBytes, err := columnBytes(v)
	if err != nil {
		return err
	}
	*c = Comments{}
	if len(jsonBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(jsonBytes, c); err != nil {
		return err
	}
	if *c == nil {
		*c = Comments{}
	}
	return nil
}

func columnBytes(v interface{}) ([]byte, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(s), nil
	case []byte:
		return s, nil
	default:
		return nil, fmt.Errorf("type is neither string nor []byte: %T %v", v, v)
	}
}
