package record

// Patient is the primary entity. The id format is
// <YYYYMMDD>/<3-digit serial>, where the date component is the
// normalized catheter insertion date. Ids are immutable once assigned.
type Patient struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Age                   *int    `json:"age,omitempty"`
	Gender                string  `json:"gender"`
	Phone                 string  `json:"phone"`
	Address               string  `json:"address,omitempty"`
	BloodGroup            string  `json:"bloodGroup,omitempty"`
	Diagnosis             string  `json:"diagnosis,omitempty"`
	CatheterInsertionDate string  `json:"catheterInsertionDate"`
	IsDeleted             *int    `json:"isDeleted,omitempty"`
	DeletedAt             *string `json:"deletedAt,omitempty"`
}

func (p *Patient) RecordID() string { return p.ID }

func (p *Patient) DeletionFlag() *int { return p.IsDeleted }

func (p *Patient) SetDeletionFlag(v int) { p.IsDeleted = Flag(v) }

func (p *Patient) StampDeletedAt(ts string) { p.DeletedAt = &ts }

func (p *Patient) ClearDeletedAt() { p.DeletedAt = nil }
