package domain

// Category classifies an event into one of a fixed set of values.
type Category string

const (
	CategoryTechnology Category = "Technology"
	CategoryBusiness   Category = "Business"
	CategoryArts       Category = "Arts"
	CategorySports     Category = "Sports"
	CategoryMusic      Category = "Music"
	CategoryEducation  Category = "Education"
	CategoryHealth     Category = "Health"
	CategoryFood       Category = "Food"
	CategoryOther      Category = "Other"
)

var categories = map[Category]struct{}{
	CategoryTechnology: {},
	CategoryBusiness:   {},
	CategoryArts:       {},
	CategorySports:     {},
	CategoryMusic:      {},
	CategoryEducation:  {},
	CategoryHealth:     {},
	CategoryFood:       {},
	CategoryOther:      {},
}

// ParseCategory maps a raw string onto the category set. An empty string
// falls back to Other; anything else must match a known value.
func ParseCategory(raw string) (Category, bool) {
	if raw == "" {
		return CategoryOther, true
	}
	c := Category(raw)
	if _, ok := categories[c]; !ok {
		return "", false
	}
	return c, true
}
