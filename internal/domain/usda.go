package domain

import "encoding/json"

// USDAFood represents a food item from the USDA FoodData Central API
type USDAFood struct {
	FdcID       int            `json:"fdcId"`
	Description string         `json:"description"`
	DataType    string         `json:"dataType"`
	FoodClass   string         `json:"foodClass,omitempty"`
	FoodCode    string         `json:"foodCode,omitempty"`
	Category    string         `json:"foodCategory,omitempty"`
	Nutrients   []USDANutrient `json:"foodNutrients"`
}

// USDANutrient represents a single nutrient from USDA data
type USDANutrient struct {
	NutrientID     int     `json:"nutrientId"`
	NutrientName   string  `json:"nutrientName"`
	NutrientNumber string  `json:"nutrientNumber,omitempty"`
	UnitName       string  `json:"unitName"`
	Value          float64 `json:"value"`
}

// UnmarshalJSON accepts both the flat search shape and the nested
// {"nutrient": {...}, "amount": n} shape returned by the food details endpoint.
func (n *USDANutrient) UnmarshalJSON(data []byte) error {
	type flat USDANutrient
	var raw struct {
		flat
		Nutrient *struct {
			ID       int    `json:"id"`
			Number   string `json:"number"`
			Name     string `json:"name"`
			UnitName string `json:"unitName"`
		} `json:"nutrient"`
		Amount *float64 `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*n = USDANutrient(raw.flat)
	if raw.Nutrient != nil {
		n.NutrientID = raw.Nutrient.ID
		n.NutrientNumber = raw.Nutrient.Number
		n.NutrientName = raw.Nutrient.Name
		n.UnitName = raw.Nutrient.UnitName
	}
	if raw.Amount != nil {
		n.Value = *raw.Amount
	}
	return nil
}

// USDASearchResponse represents the response from USDA search API
type USDASearchResponse struct {
	Foods       []USDAFood `json:"foods"`
	TotalHits   int        `json:"totalHits"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
