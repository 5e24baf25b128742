package models

import "fmt"

// Element and attribute names of the roster document.
const (
	RootElement      = "PUBLIST"
	AgentElement     = "Agent"
	AgentVersionAttr = "Ver"
	DateElement      = "Date"
	CountElement     = "Count"
	ActiveElement    = "Active"
	PublisherElement = "Pub"
	YearAttr         = "Year"
)

// MonthTags lists the month element names in calendar order.
var MonthTags = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// PublisherField names a scalar child element of a publisher.
type PublisherField string

const (
	FieldID          PublisherField = "id"
	FieldFirstName   PublisherField = "fname"
	FieldLastName    PublisherField = "lname"
	FieldAddress     PublisherField = "addr"
	FieldPhone       PublisherField = "phone"
	FieldPhone2      PublisherField = "phone2"
	FieldPhone3      PublisherField = "phone3"
	FieldGender      PublisherField = "gender"
	FieldBirthDate   PublisherField = "birdate"
	FieldBaptismDate PublisherField = "bapdate"
	FieldGroup       PublisherField = "group"
	FieldGroupRole   PublisherField = "groupname"
	FieldStatus      PublisherField = "status"
	FieldPioneer     PublisherField = "pioneer"
)

// PublisherFields is the order in which scalar fields are written.
var PublisherFields = []PublisherField{
	FieldID, FieldFirstName, FieldLastName, FieldAddress,
	FieldPhone, FieldPhone2, FieldPhone3, FieldGender,
	FieldBirthDate, FieldBaptismDate, FieldGroup, FieldGroupRole,
	FieldStatus, FieldPioneer,
}

// MonthField names a child element of a month element.
type MonthField string

// R.V.s and BiSt. carry punctuation; they are schema names and must be
// written exactly as declared here.
const (
	MonthPlacements   MonthField = "Plcmts"
	MonthVideos       MonthField = "Videos"
	MonthHours        MonthField = "Hours"
	MonthReturnVisits MonthField = "R.V.s"
	MonthBibleStudies MonthField = "BiSt."
	MonthRemark       MonthField = "Remark"
	MonthPioneer      MonthField = "Pio"
)

// MonthFields is the order in which month sub-fields are written.
var MonthFields = []MonthField{
	MonthPlacements, MonthVideos, MonthHours, MonthReturnVisits,
	MonthBibleStudies, MonthRemark, MonthPioneer,
}

// Defaults applied by the parser when an element is missing or empty.
const (
	DefaultStatus = "activo"
	DefaultMetric = "0"
)

// IsMetric reports whether f is one of the numeric-looking month fields
// that default to "0".
func (f MonthField) IsMetric() bool {
	switch f {
	case MonthPlacements, MonthVideos, MonthHours, MonthReturnVisits, MonthBibleStudies:
		return true
	}
	return false
}

// ParsePublisherField maps an element name to its field.
func ParsePublisherField(name string) (PublisherField, error) {
	for _, f := range PublisherFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown publisher field %q", name)
}

// ParseMonthField maps an element name to its month field.
func ParseMonthField(name string) (MonthField, error) {
	for _, f := range MonthFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown month field %q", name)
}

// IsMonthTag reports whether tag is one of MonthTags.
func IsMonthTag(tag string) bool {
	for _, m := range MonthTags {
		if m == tag {
			return true
		}
	}
	return false
}

// Field returns a pointer to the storage of f, or nil if f is unknown.
func (p *PublisherRecord) Field(f PublisherField) *string {
	switch f {
	case FieldID:
		return &p.ID
	case FieldFirstName:
		return &p.FirstName
	case FieldLastName:
		return &p.LastName
	case FieldAddress:
		return &p.Address
	case FieldPhone:
		return &p.Phone
	case FieldPhone2:
		return &p.Phone2
	case FieldPhone3:
		return &p.Phone3
	case FieldGender:
		return &p.Gender
	case FieldBirthDate:
		return &p.BirthDate
	case FieldBaptismDate:
		return &p.BaptismDate
	case FieldGroup:
		return &p.Group
	case FieldGroupRole:
		return &p.GroupRole
	case FieldStatus:
		return &p.Status
	case FieldPioneer:
		return &p.Pioneer
	}
	return nil
}

// Field returns a pointer to the storage of f, or nil if f is unknown.
func (m *MonthRecord) Field(f MonthField) *string {
	switch f {
	case MonthPlacements:
		return &m.Placements
	case MonthVideos:
		return &m.Videos
	case MonthHours:
		return &m.Hours
	case MonthReturnVisits:
		return &m.ReturnVisits
	case MonthBibleStudies:
		return &m.BibleStudies
	case MonthRemark:
		return &m.Remark
	case MonthPioneer:
		return &m.Pioneer
	}
	return nil
}
