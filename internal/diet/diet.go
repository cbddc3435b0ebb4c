// Package diet decodes logged meals and totals their nutrition. Food
// recognition sources (photo, OCR, barcode) send numbers inconsistently, so
// every numeric field accepts JSON numbers, numeric strings, or nothing.
package diet

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sanggab/PagenationCalendar/internal/nutrient"
)

// DateLayout is the format of Food.DietDate.
const DateLayout = "2006-01-02 15:04:05"

// Nutrition is the nutrient content of one logged food.
type Nutrition struct {
	EnergyKcal     float64 `json:"nutrntEnergy"`
	CarbohydratesG float64 `json:"nutrntChocdf"`
	ProteinG       float64 `json:"nutrntProtein"`
	FatG           float64 `json:"nutrntFat"`
	SugarG         float64 `json:"nutrntSugar"`
	SodiumMg       float64 `json:"nutrntNat"`
	FiberG         float64 `json:"nutrntFibtg"`
	SaturatedFatG  float64 `json:"nutrntSfa"`
	TransFatG      float64 `json:"nutrntTrnfa"`
	CholesterolMg  float64 `json:"nutrntChole"`
}

// UnmarshalJSON decodes every field losslessly; anything unparseable is zero.
func (n *Nutrition) UnmarshalJSON(b []byte) error {
	var raw struct {
		EnergyKcal     flexFloat `json:"nutrntEnergy"`
		CarbohydratesG flexFloat `json:"nutrntChocdf"`
		ProteinG       flexFloat `json:"nutrntProtein"`
		FatG           flexFloat `json:"nutrntFat"`
		SugarG         flexFloat `json:"nutrntSugar"`
		SodiumMg       flexFloat `json:"nutrntNat"`
		FiberG         flexFloat `json:"nutrntFibtg"`
		SaturatedFatG  flexFloat `json:"nutrntSfa"`
		TransFatG      flexFloat `json:"nutrntTrnfa"`
		CholesterolMg  flexFloat `json:"nutrntChole"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		*n = Nutrition{}
		return nil
	}
	*n = Nutrition{
		EnergyKcal:     raw.EnergyKcal.value(),
		CarbohydratesG: raw.CarbohydratesG.value(),
		ProteinG:       raw.ProteinG.value(),
		FatG:           raw.FatG.value(),
		SugarG:         raw.SugarG.value(),
		SodiumMg:       raw.SodiumMg.value(),
		FiberG:         raw.FiberG.value(),
		SaturatedFatG:  raw.SaturatedFatG.value(),
		TransFatG:      raw.TransFatG.value(),
		CholesterolMg:  raw.CholesterolMg.value(),
	}
	return nil
}

// Add returns the field-wise sum of n and o.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		EnergyKcal:     n.EnergyKcal + o.EnergyKcal,
		CarbohydratesG: n.CarbohydratesG + o.CarbohydratesG,
		ProteinG:       n.ProteinG + o.ProteinG,
		FatG:           n.FatG + o.FatG,
		SugarG:         n.SugarG + o.SugarG,
		SodiumMg:       n.SodiumMg + o.SodiumMg,
		FiberG:         n.FiberG + o.FiberG,
		SaturatedFatG:  n.SaturatedFatG + o.SaturatedFatG,
		TransFatG:      n.TransFatG + o.TransFatG,
		CholesterolMg:  n.CholesterolMg + o.CholesterolMg,
	}
}

// Amount returns the amount of k in its display unit.
func (n Nutrition) Amount(k nutrient.Kind) float64 {
	switch k {
	case nutrient.Carb:
		return n.CarbohydratesG
	case nutrient.Protein:
		return n.ProteinG
	case nutrient.Fat:
		return n.FatG
	case nutrient.Sodium:
		return n.SodiumMg
	case nutrient.Sugar:
		return n.SugarG
	case nutrient.Fiber:
		return n.FiberG
	case nutrient.Cholesterol:
		return n.CholesterolMg
	}
	return 0
}

// Amounts returns every tracked nutrient amount keyed by kind.
func (n Nutrition) Amounts() map[nutrient.Kind]float64 {
	out := make(map[nutrient.Kind]float64, len(nutrient.Kinds))
	for _, k := range nutrient.Kinds {
		out[k] = n.Amount(k)
	}
	return out
}

// Food is one entry of the diet log. Optional fields are nil when the source
// couldn't extract them.
type Food struct {
	HeaderNo     int       `json:"dietHdNo"`
	FoodName     string    `json:"foodName"`
	ServingSize  *float64  `json:"srvSize,omitempty"`
	ServingUnit  *string   `json:"srvUnit,omitempty"`
	ServingCount *int      `json:"srvCnt,omitempty"`
	Nutrition    Nutrition `json:"nutrition"`
	DietDate     string    `json:"dietDate"`
	FoodCount    *int      `json:"dietDtCnt,omitempty"`
	ImageName    *string   `json:"dietHdImgNm,omitempty"`
	HeaderName   *string   `json:"dietHdNm,omitempty"`
}

// UnmarshalJSON never fails on field-level problems; malformed values are
// dropped to their zero or nil value.
func (f *Food) UnmarshalJSON(b []byte) error {
	var raw struct {
		HeaderNo     flexFloat       `json:"dietHdNo"`
		FoodName     json.RawMessage `json:"foodName"`
		ServingSize  flexFloat       `json:"srvSize"`
		ServingUnit  json.RawMessage `json:"srvUnit"`
		ServingCount flexFloat       `json:"srvCnt"`
		Nutrition    Nutrition       `json:"nutrition"`
		DietDate     json.RawMessage `json:"dietDate"`
		FoodCount    flexFloat       `json:"dietDtCnt"`
		ImageName    json.RawMessage `json:"dietHdImgNm"`
		HeaderName   json.RawMessage `json:"dietHdNm"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*f = Food{
		HeaderNo:     raw.HeaderNo.intValue(),
		FoodName:     rawString(raw.FoodName),
		ServingSize:  raw.ServingSize.ptr(),
		ServingUnit:  nonEmpty(raw.ServingUnit),
		ServingCount: raw.ServingCount.intPtr(),
		Nutrition:    raw.Nutrition,
		DietDate:     rawString(raw.DietDate),
		FoodCount:    raw.FoodCount.intPtr(),
		ImageName:    nonEmpty(raw.ImageName),
		HeaderName:   nonEmpty(raw.HeaderName),
	}
	return nil
}

// Date parses DietDate in loc. ok is false when the date is missing or malformed.
func (f Food) Date(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(f.DietDate), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Totals sums the nutrition of every food.
func Totals(foods []Food) Nutrition {
	var total Nutrition
	for _, f := range foods {
		total = total.Add(f.Nutrition)
	}
	return total
}

// ByDay groups foods by their YYYY-MM-DD diet date. Foods without a parseable
// date are skipped. Each day's foods are ordered by time.
func ByDay(foods []Food, loc *time.Location) map[string][]Food {
	out := map[string][]Food{}
	for _, f := range foods {
		t, ok := f.Date(loc)
		if !ok {
			continue
		}
		key := t.Format("2006-01-02")
		out[key] = append(out[key], f)
	}
	for key := range out {
		day := out[key]
		sort.SliceStable(day, func(i, j int) bool {
			a, _ := day[i].Date(loc)
			b, _ := day[j].Date(loc)
			return a.Before(b)
		})
	}
	return out
}

/* ─── Lossless decoding helpers ──────────────────────────────────────── */

// flexFloat accepts 1, 1.5, "1.5", " 2 " and treats "", null and garbage as absent.
type flexFloat struct {
	v     float64
	valid bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = flexFloat{}
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.v, f.valid = v, true
	return nil
}

func (f flexFloat) value() float64 {
	return f.v
}

func (f flexFloat) ptr() *float64 {
	if !f.valid {
		return nil
	}
	v := f.v
	return &v
}

func (f flexFloat) intValue() int {
	return int(f.v)
}

func (f flexFloat) intPtr() *int {
	if !f.valid {
		return nil
	}
	v := int(f.v)
	return &v
}

func rawString(b json.RawMessage) string {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ""
	}
	return s
}

func nonEmpty(b json.RawMessage) *string {
	s := strings.TrimSpace(rawString(b))
	if s == "" {
		return nil
	}
	return &s
}
