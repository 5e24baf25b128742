package models

// MonthRecord is one reporting period for one publisher. Metric values are
// kept as the strings found in the document and are never validated.
type MonthRecord struct {
	Month        string `json:"month" yaml:"month"`
	Year         string `json:"year" yaml:"year"`
	Placements   string `json:"placements" yaml:"placements"`
	Videos       string `json:"videos" yaml:"videos"`
	Hours        string `json:"hours" yaml:"hours"`
	ReturnVisits string `json:"returnVisits" yaml:"returnVisits"`
	BibleStudies string `json:"bibleStudies" yaml:"bibleStudies"`
	Remark       string `json:"remark" yaml:"remark"`
	Pioneer      string `json:"pioneer" yaml:"pioneer"`
}

// PublisherRecord is one person on the roster. GroupRole, Status and Pioneer
// are free text; every classification over them goes through package labels.
type PublisherRecord struct {
	ID          string        `json:"id" yaml:"id"`
	FirstName   string        `json:"firstName" yaml:"firstName"`
	LastName    string        `json:"lastName" yaml:"lastName"`
	Address     string        `json:"address" yaml:"address"`
	Phone       string        `json:"phone" yaml:"phone"`
	Phone2      string        `json:"phone2" yaml:"phone2"`
	Phone3      string        `json:"phone3" yaml:"phone3"`
	Gender      string        `json:"gender" yaml:"gender"`
	BirthDate   string        `json:"birthDate" yaml:"birthDate"`
	BaptismDate string        `json:"baptismDate" yaml:"baptismDate"`
	Group       string        `json:"group" yaml:"group"`
	GroupRole   string        `json:"groupRole" yaml:"groupRole"`
	Status      string        `json:"status" yaml:"status"`
	Pioneer     string        `json:"pioneer" yaml:"pioneer"`
	Months      []MonthRecord `json:"months,omitempty" yaml:"months,omitempty"`
}

// FullName is the "first last" string used for display and name ordering.
func (p PublisherRecord) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Clone returns a copy that shares no month storage with p.
func (p PublisherRecord) Clone() PublisherRecord {
	if p.Months != nil {
		months := make([]MonthRecord, len(p.Months))
		copy(months, p.Months)
		p.Months = months
	}
	return p
}

// RosterMetadata is the document header. It is echoed back on serialize.
type RosterMetadata struct {
	Agent        string `json:"agent" yaml:"agent"`
	AgentVersion string `json:"agentVersion" yaml:"agentVersion"`
	Date         string `json:"date" yaml:"date"`
	Count        string `json:"count" yaml:"count"`
}
