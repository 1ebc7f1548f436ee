package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/aldoetobex/legal-practice-backend/pkg/codec"
)

/* =============================== Enums ================================== */

// CaseStatus is free text in storage; these are the values the API accepts.
type CaseStatus string

const (
	CaseOpen    CaseStatus = "open"
	CaseClosed  CaseStatus = "closed"
	CasePending CaseStatus = "pending"
	// CaseActive is the default of the client-linked creation path.
	CaseActive CaseStatus = "active"
)

// ClientStatus defines whether a client is currently engaged.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

/* =============================== Entities =============================== */

// Lawyer is a practitioner who can be assigned clients, cases and appointments.
type Lawyer struct {
	ID                     uint             `gorm:"primaryKey" json:"id"`
	FirstName              string           `gorm:"size:100;not null" json:"firstName"`
	LastName               string           `gorm:"size:100;not null" json:"lastName"`
	Mobile                 string           `gorm:"size:20;not null" json:"mobile"`
	Email                  string           `gorm:"size:255;not null" json:"email"`
	Country                string           `gorm:"size:100;not null" json:"country"`
	YearsOfExperience      int              `gorm:"not null" json:"yearsOfExperience"`
	Languages              codec.StringList `gorm:"not null" json:"languages"`
	LawyerType             string           `gorm:"size:100;not null" json:"lawyerType"`
	About                  *string          `gorm:"type:text" json:"about"`
	PracticeAreas          codec.StringList `gorm:"not null" json:"practiceAreas"`
	ConsultantAvailability codec.StringList `gorm:"not null" json:"consultantAvailability"`
	Timing                 codec.StringList `gorm:"not null" json:"timing"`
	CreatedAt              time.Time        `json:"createdAt"`
	UpdatedAt              time.Time        `json:"updatedAt"`
}

// Client is a customer of the practice. Deleting the assigned lawyer deletes the client.
type Client struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	ClientType       string       `gorm:"size:100;not null" json:"clientType"`
	FirstName        string       `gorm:"size:100;not null" json:"firstName"`
	LastName         string       `gorm:"size:100;not null" json:"lastName"`
	Email            string       `gorm:"size:255;not null" json:"email"`
	PhoneNumber      string       `gorm:"size:20;not null" json:"phoneNumber"`
	AltPhoneNumber   *string      `gorm:"size:20" json:"altPhoneNumber"`
	Website          *string      `gorm:"size:255" json:"website"`
	StreetAddress    string       `gorm:"size:255;not null" json:"streetAddress"`
	City             string       `gorm:"size:100;not null" json:"city"`
	State            string       `gorm:"size:100;not null" json:"state"`
	ZipCode          string       `gorm:"size:20;not null" json:"zipCode"`
	Country          string       `gorm:"size:100;not null" json:"country"`
	AssignedLawyerID uint         `gorm:"column:assigned_lawyer;not null;index" json:"assignedLawyer"`
	Priority         string       `gorm:"size:10;not null" json:"priority"`
	Billed           bool         `gorm:"not null" json:"billed"`
	Notes            *string      `gorm:"type:text" json:"notes"`
	Status           ClientStatus `gorm:"size:10;not null;default:active" json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`

	AssignedLawyer *Lawyer `gorm:"foreignKey:AssignedLawyerID;constraint:OnDelete:CASCADE" json:"-"`
}

// Case is the aggregate root. ClientID (linked mode) and the Client* snapshot
// columns share one nullable row shape; which one is meaningful is decided at
// creation time, not by the schema.
type Case struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CaseTitle          string         `gorm:"size:255;not null" json:"caseTitle"`
	CaseNumber         string         `gorm:"size:100;not null;uniqueIndex" json:"caseNumber"`
	CaseType           string         `gorm:"size:100;not null" json:"caseType"`
	Jurisdiction       string         `gorm:"size:255;not null" json:"jurisdiction"`
	Priority           string         `gorm:"size:50;not null" json:"priority"`
	FillingDate        datatypes.Date `gorm:"not null" json:"fillingDate"`
	CaseDescription    *string        `gorm:"type:text" json:"caseDescription"`
	ClientID           *uint          `gorm:"index" json:"clientId"`
	ClientName         *string        `gorm:"size:255" json:"clientName"`
	ClientCompany      *string        `gorm:"size:255" json:"clientCompany"`
	ClientEmail        *string        `gorm:"size:255" json:"clientEmail"`
	ClientPhone        *string        `gorm:"size:50" json:"clientPhone"`
	ClientAddress      *string        `gorm:"type:text" json:"clientAddress"`
	OpposingParty      *string        `gorm:"size:255" json:"opposingParty"`
	OpposingCounsel    *string        `gorm:"size:255" json:"opposingCounsel"`
	EstimatedCaseValue *float64       `gorm:"type:decimal(15,2)" json:"estimatedCaseValue"`
	Status             CaseStatus     `gorm:"size:50;default:open" json:"status"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`

	// A deleted client leaves the case in place with a NULL reference.
	Client *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"-"`
}

// CaseLawyer is one team membership. (case_id, lawyer_id) is unique.
type CaseLawyer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CaseID   uint `gorm:"not null;uniqueIndex:idx_case_lawyer" json:"caseId"`
	LawyerID uint `gorm:"not null;uniqueIndex:idx_case_lawyer;index" json:"lawyerId"`

	Case   *Case   `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"-"`
	Lawyer *Lawyer `gorm:"foreignKey:LawyerID;constraint:OnDelete:CASCADE" json:"-"`
}

// CaseComment is an append-only remark on a case.
type CaseComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CaseID    uint      `gorm:"not null;index" json:"caseId"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`

	Case *Case `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"-"`
}

// CaseNote is a titled note on a case.
type CaseNote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CaseID      uint      `gorm:"not null;index" json:"caseId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`

	Case *Case `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"-"`
}

// CaseFile records an uploaded document and where the blob lives.
type CaseFile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CaseID     uint      `gorm:"not null;index" json:"caseId"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	FileURL    string    `gorm:"column:file_url;size:255;not null" json:"fileUrl"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploadedAt"`

	Case *Case `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"-"`
}

// Appointment is a booked consultation slot with a lawyer.
type Appointment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ClientName string    `gorm:"size:255;not null" json:"clientName"`
	Duration   string    `gorm:"size:50;not null" json:"duration"`
	DateTime   time.Time `gorm:"not null" json:"dateTime"`
	BookedOn   time.Time `gorm:"not null" json:"bookedOn"`
	LawyerID   uint      `gorm:"column:lawyer_id;not null;index" json:"lawyer_id"`

	Lawyer *Lawyer `gorm:"foreignKey:LawyerID;constraint:OnDelete:CASCADE" json:"-"`
}

// Blog is a public article. Brief holds sanitized HTML.
type Blog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Image     string    `gorm:"size:255;not null" json:"image"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	LawType   string    `gorm:"column:law_type;size:255;not null" json:"law_type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Brief     string    `gorm:"type:text;not null" json:"brief"`
	CreatedOn time.Time `gorm:"not null" json:"createdOn"`
	IsPosted  bool      `gorm:"not null;default:false" json:"isPosted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// All lists every persisted model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Lawyer{}, &Client{}, &Case{}, &CaseLawyer{},
		&CaseComment{}, &CaseNote{}, &CaseFile{},
		&Appointment{}, &Blog{},
	}
}
