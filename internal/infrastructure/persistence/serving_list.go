package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nutribase/backend/internal/domain"
)

// servingSizeList stores a food's alternative servings as a JSON array of
// {grams, description, descriptionEn} objects in a text column
type servingSizeList []domain.ServingSize

// storedServing is the column format. Grams is written as a JSON number to
// match rows written by earlier importers.
type storedServing struct {
	Grams         json.Number `json:"grams"`
	Description   string      `json:"description"`
	DescriptionEn string      `json:"descriptionEn"`
}

// Value implements driver.Valuer
func (l servingSizeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	stored := make([]storedServing, len(l))
	for i, s := range l {
		stored[i] = storedServing{
			Grams:         json.Number(s.Grams.String()),
			Description:   s.Description,
			DescriptionEn: s.DescriptionEn,
		}
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner. Malformed payloads are logged and read as no
// alternative servings; entries without positive grams are dropped.
func (l *servingSizeList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into serving size list", src)
	}

	if len(data) == 0 {
		*l = nil
		return nil
	}

	var servings []domain.ServingSize
	if err := json.Unmarshal(data, &servings); err != nil {
		log.Printf("[DB] Ignoring malformed alternative servings: %v", err)
		*l = nil
		return nil
	}

	valid := servings[:0]
	for _, s := range servings {
		if s.Grams.IsPositive() {
			valid = append(valid, s)
		}
	}
	*l = servingSizeList(valid)
	return nil
}
