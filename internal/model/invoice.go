package model

import (
	"time"
)

// InvoiceStatus is the state of an invoice in the approval workflow.
type InvoiceStatus string

const (
	StatusCreated                        InvoiceStatus = "CREATED"
	StatusWaitForSalesManagerApproval    InvoiceStatus = "WAIT_FOR_SALES_MANAGER_APPROVAL"
	StatusWaitForAccountantApproval      InvoiceStatus = "WAIT_FOR_ACCOUNTANT_APPROVAL"
	StatusWaitForMarketDirectorApproval  InvoiceStatus = "WAIT_FOR_MARKET_DIRECTOR_APPROVAL"
	StatusWaitForAccountantIssuesInvoice InvoiceStatus = "WAIT_FOR_ACCOUNTANT_ISSUES_INVOICE"
	StatusWaitForSalesmanReceive         InvoiceStatus = "WAIT_FOR_SALESMAN_RECEIVE"
	StatusDone                           InvoiceStatus = "DONE"
	StatusAborted                        InvoiceStatus = "ABORTED"
)

// ParseInvoiceStatus maps a raw string onto the closed status set.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch InvoiceStatus(s) {
	case StatusCreated, StatusWaitForSalesManagerApproval, StatusWaitForAccountantApproval,
		StatusWaitForMarketDirectorApproval, StatusWaitForAccountantIssuesInvoice,
		StatusWaitForSalesmanReceive, StatusDone, StatusAborted:
		return InvoiceStatus(s), true
	}
	return "", false
}

// IsTerminal reports whether the status ends the workflow. Terminal invoices
// reject description edits and item additions.
func (s InvoiceStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusAborted
}

// Invoice is the central workflow entity. Author is immutable after
// creation; every status transition is recorded as an InvoiceComment.
type Invoice struct {
	ID                 int64            `gorm:"primaryKey" json:"id"`
	AuthorID           int64            `gorm:"not null;index" json:"author_id"`
	Author             *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	DisplayDescription string           `gorm:"type:text;not null" json:"display_description"`
	Status             InvoiceStatus    `gorm:"type:varchar(50);not null;index" json:"status"`
	Items              []InvoiceItem    `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Comments           []InvoiceComment `gorm:"foreignKey:InvoiceID" json:"comments,omitempty"`
	Deleted            bool             `gorm:"not null;default:false" json:"deleted"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// InvoiceItem is one line of an invoice. UnitPrice is snapshotted from the
// product at creation time and never recomputed afterward.
type InvoiceItem struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	InvoiceID int64     `gorm:"not null;index" json:"invoice_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Deleted   bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// InvoiceComment is an immutable audit record of one status transition.
// StatusBefore is the invoice status at the moment the comment was recorded;
// StatusAfter became the invoice status atomically with its creation.
type InvoiceComment struct {
	ID           int64         `gorm:"primaryKey" json:"id"`
	InvoiceID    int64         `gorm:"not null;index" json:"invoice_id"`
	UserID       int64         `gorm:"not null;index" json:"user_id"`
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comment      string        `gorm:"type:text;not null" json:"comment"`
	StatusBefore InvoiceStatus `gorm:"type:varchar(50);not null" json:"status_before"`
	StatusAfter  InvoiceStatus `gorm:"type:varchar(50);not null" json:"status_after"`
	Deleted      bool          `gorm:"not null;default:false" json:"deleted"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
