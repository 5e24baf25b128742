package models

var monthNames = map[string]string{
	"Jan": "Ene",
	"Feb": "Feb",
	"Mar": "Mar",
	"Apr": "Abr",
	"May": "May",
	"Jun": "Jun",
	"Jul": "Jul",
	"Aug": "Ago",
	"Sep": "Sep",
	"Oct": "Oct",
	"Nov": "Nov",
	"Dec": "Dic",
}

// MonthDisplayName returns the Spanish abbreviation for a month tag.
// Unknown tags are returned unchanged.
func MonthDisplayName(tag string) string {
	if name, ok := monthNames[tag]; ok {
		return name
	}
	return tag
}

// GenderDisplay translates the two canonical gender values and passes any
// other text through.
func GenderDisplay(gender string) string {
	switch gender {
	case "Male":
		return "Hombre"
	case "Female":
		return "Mujer"
	}
	return gender
}

// ContactPhone picks the phone shown on summaries: phone2, then phone.
func (p PublisherRecord) ContactPhone() string {
	if p.Phone2 != "" {
		return p.Phone2
	}
	if p.Phone != "" {
		return p.Phone
	}
	return "N/A"
}
